// Package config loads the sandbox configuration from YAML. The config
// object is built once in main and threaded through constructors; no
// package-level state is loaded at import time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the sandbox.
type Config struct {
	DBPath   string `yaml:"db_path"`
	NamesDir string `yaml:"names_dir"`
	Seed     int64  `yaml:"seed"`

	World struct {
		Width            float64 `yaml:"width"`
		Height           float64 `yaml:"height"`
		SettlementRadius float64 `yaml:"settlement_radius"`
		SettlementCount  int     `yaml:"settlement_count"`
		TownChance       float64 `yaml:"town_chance"`
		MaxRoadLength    float64 `yaml:"max_road_length"`
		ForestRadius     float64 `yaml:"forest_radius"`
		ForestCount      int     `yaml:"forest_count"`
	} `yaml:"world"`

	Lords struct {
		Barons     int `yaml:"barons"`
		Baronets   int `yaml:"baronets"`
		Chevaliers int `yaml:"chevaliers"`
		Clients    int `yaml:"clients"`
	} `yaml:"lords"`
}

// Default returns the configuration of a fresh sandbox.
func Default() Config {
	var cfg Config
	cfg.DBPath = "data/sandbox.db"
	cfg.NamesDir = "names"
	cfg.Seed = 0
	cfg.World.Width = 4000
	cfg.World.Height = 3000
	cfg.World.SettlementRadius = 220
	cfg.World.SettlementCount = 120
	cfg.World.TownChance = 0.02
	cfg.World.MaxRoadLength = 500
	cfg.World.ForestRadius = 140
	cfg.World.ForestCount = 180
	cfg.Lords.Barons = 28
	cfg.Lords.Baronets = 160
	cfg.Lords.Chevaliers = 167
	cfg.Lords.Clients = 1192
	return cfg
}

// Load reads path over the defaults. An empty path returns defaults; a
// missing file is an error so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the generators cannot work with.
func (c Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %gx%g",
			c.World.Width, c.World.Height)
	case c.World.SettlementRadius <= 0:
		return fmt.Errorf("settlement radius must be positive, got %g",
			c.World.SettlementRadius)
	case c.World.ForestRadius <= 0:
		return fmt.Errorf("forest radius must be positive, got %g",
			c.World.ForestRadius)
	case c.World.MaxRoadLength <= 0:
		return fmt.Errorf("max road length must be positive, got %g",
			c.World.MaxRoadLength)
	case c.World.TownChance < 0 || c.World.TownChance > 1:
		return fmt.Errorf("town chance must be within [0, 1], got %g",
			c.World.TownChance)
	}
	return nil
}
