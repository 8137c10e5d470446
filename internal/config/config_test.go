package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/other.db
seed: 99
world:
  width: 2000
  height: 1000
lords:
  clients: 500
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 2000.0, cfg.World.Width)
	assert.Equal(t, 500, cfg.Lords.Clients)

	// Untouched keys keep their defaults.
	def := Default()
	assert.Equal(t, def.NamesDir, cfg.NamesDir)
	assert.Equal(t, def.World.MaxRoadLength, cfg.World.MaxRoadLength)
	assert.Equal(t, def.Lords.Barons, cfg.Lords.Barons)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: ["), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -1 }},
		{"zero settlement radius", func(c *Config) { c.World.SettlementRadius = 0 }},
		{"zero forest radius", func(c *Config) { c.World.ForestRadius = 0 }},
		{"zero road length", func(c *Config) { c.World.MaxRoadLength = 0 }},
		{"town chance above one", func(c *Config) { c.World.TownChance = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
