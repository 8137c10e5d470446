package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akapkotel/monstyr-sandbox/internal/config"
)

func TestRunReportsDataDirFailure(t *testing.T) {
	// A regular file where the data directory should go makes MkdirAll
	// fail before the database ever opens.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := config.Default()
	cfg.DBPath = filepath.Join(blocker, "nested", "sandbox.db")

	err := run(cfg, false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "create data dir")
}
