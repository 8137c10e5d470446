// Command sandbox generates or restores the Monastyr sandbox world: the
// noble registry, the feudal hierarchy and the map layout, persisted to
// a local SQLite database.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/akapkotel/monstyr-sandbox/internal/config"
	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/hierarchy"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/names"
	"github.com/akapkotel/monstyr-sandbox/internal/persistence"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
	"github.com/akapkotel/monstyr-sandbox/internal/worldmap"
)

func main() {
	var (
		cfgPath = flag.String("config", "sandbox.yaml", "path to a YAML config")
		seed    = flag.Int64("seed", 0, "override the config seed (0 keeps the config value)")
		fresh   = flag.Bool("fresh", false, "discard any saved world and generate a new one")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A missing sandbox.yaml is fine as long as the user did not ask for
	// it explicitly; built-in defaults apply.
	path := *cfgPath
	if path == "sandbox.yaml" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := run(cfg, *fresh); err != nil {
		slog.Error("sandbox failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, fresh bool) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	lists, err := names.LoadWordLists(cfg.NamesDir)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
		slog.Info("no seed configured, using a random one", "seed", seed)
	}

	reg, artifacts, err := loadOrGenerate(db, cfg, lists, seed, fresh)
	if err != nil {
		return err
	}

	if err := db.SaveWorld(reg, artifacts); err != nil {
		return fmt.Errorf("save world: %w", err)
	}

	worldID, err := db.WorldID()
	if err != nil {
		return fmt.Errorf("world id: %w", err)
	}

	fmt.Printf("\nWorld %s: %s lords across %s locations, %s roads.\n",
		worldID,
		humanize.Comma(int64(reg.LordCount())),
		humanize.Comma(int64(reg.LocationCount())),
		humanize.Comma(int64(len(artifacts.Roads))))
	return nil
}

func loadOrGenerate(db *persistence.DB, cfg config.Config, lists *names.WordLists, seed int64, fresh bool) (*registry.Registry, *worldmap.Artifacts, error) {
	if !fresh {
		reg, artifacts, err := db.LoadWorld()
		switch {
		case err == nil:
			slog.Info("world state restored",
				"lords", reg.LordCount(),
				"locations", reg.LocationCount(),
			)
			return reg, artifacts, nil
		case errors.Is(err, persistence.ErrNoWorldState):
			slog.Info("no saved state found, generating new world")
		default:
			return nil, nil, fmt.Errorf("load world: %w", err)
		}
	} else {
		slog.Info("fresh world requested, ignoring any saved state")
	}

	reg := registry.New()
	rng := rand.New(rand.NewSource(seed + 200))
	gen := names.NewGenerator(lists, rng)

	titleCounts := map[lords.Title]int{
		lords.TitleBaron:     cfg.Lords.Barons,
		lords.TitleBaronet:   cfg.Lords.Baronets,
		lords.TitleChevalier: cfg.Lords.Chevaliers,
		lords.TitleClient:    cfg.Lords.Clients,
	}
	if err := reg.CreateLordsSet(rng, gen, titleCounts); err != nil {
		return nil, nil, fmt.Errorf("create lords: %w", err)
	}
	slog.Info("lords created", "count", reg.LordCount())

	if err := hierarchy.Build(reg, rng, hierarchy.VassalQuotas); err != nil {
		return nil, nil, fmt.Errorf("build hierarchy: %w", err)
	}
	married := reg.MarryOff(rng, lists)
	slog.Info("hierarchy built", "married", married)

	wcfg := worldmap.Config{
		Bounds:           geom.Rect{Width: cfg.World.Width, Height: cfg.World.Height},
		SettlementRadius: cfg.World.SettlementRadius,
		SettlementCount:  cfg.World.SettlementCount,
		TownChance:       cfg.World.TownChance,
		MaxRoadLength:    cfg.World.MaxRoadLength,
		ForestRadius:     cfg.World.ForestRadius,
		ForestCount:      cfg.World.ForestCount,
		FertilityScale:   worldmap.DefaultConfig().FertilityScale,
		Seed:             seed,
	}
	builder := worldmap.NewBuilder(wcfg, names.NewGenerator(lists, rand.New(rand.NewSource(seed+300))))
	artifacts, err := builder.Build(reg, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build world map: %w", err)
	}
	slog.Info("world map built",
		"settlements", reg.LocationCount(),
		"roads", len(artifacts.Roads),
		"forests", len(artifacts.Forests),
	)
	return reg, artifacts, nil
}
