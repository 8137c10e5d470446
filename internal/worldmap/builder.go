// Package worldmap builds the physical layout of the sandbox: settlement
// placement, the road network, territory regions, and forests.
package worldmap

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/hierarchy"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/names"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
)

// Artifacts are the derived spatial products of a build, persisted next
// to the entities and reused on later runs.
type Artifacts struct {
	Roads   []geom.Road   `json:"roads"`
	Regions []geom.Region `json:"regions"`
	Forests []geom.Forest `json:"forests"`
}

// Config holds the world layout parameters.
type Config struct {
	Bounds geom.Rect

	SettlementRadius float64 // Min distance between settlements
	SettlementCount  int
	TownChance       float64 // Probability a settlement is a town
	MaxRoadLength    float64 // Roads longer than this are discarded

	ForestRadius float64 // Min distance between forest clusters
	ForestCount  int

	FertilityScale float64
	Seed           int64
}

// DefaultConfig returns the layout used for a fresh sandbox.
func DefaultConfig() Config {
	return Config{
		Bounds:           geom.Rect{Width: 4000, Height: 3000},
		SettlementRadius: 220,
		SettlementCount:  120,
		TownChance:       0.02,
		MaxRoadLength:    500,
		ForestRadius:     140,
		ForestCount:      180,
		FertilityScale:   1.0 / 300,
		Seed:             0,
	}
}

// Builder produces a consistent world layout, either fresh or re-derived
// from an already-populated registry.
type Builder struct {
	cfg       Config
	rng       *rand.Rand
	fertility *geom.Fertility
	gen       *names.Generator
}

// NewBuilder creates a builder. Sampling and population draws use their
// own seeded rng so the layout is deterministic in cfg.Seed.
func NewBuilder(cfg Config, gen *names.Generator) *Builder {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Builder{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed + 300)),
		fertility: geom.NewFertility(seed, cfg.FertilityScale),
		gen:       gen,
	}
}

// Build produces the world layout. When the registry already holds
// settlements the existing positions are kept and only the derived
// artifacts are re-computed; a prior artifact set, when supplied, is
// reused wholesale so positions stay stable across sessions.
func (b *Builder) Build(reg *registry.Registry, prior *Artifacts) (*Artifacts, error) {
	if prior != nil && len(prior.Roads) > 0 && len(prior.Regions) > 0 {
		slog.Info("reusing persisted world layout",
			"roads", len(prior.Roads), "regions", len(prior.Regions),
			"forests", len(prior.Forests))
		return prior, nil
	}

	settlements := b.settlements(reg)
	if len(settlements) == 0 {
		settlements = b.placeSettlements(reg)
	}

	points := make([]geom.Point, 0, len(settlements))
	byPoint := make(map[geom.Point]*lords.Location, len(settlements))
	for _, loc := range settlements {
		points = append(points, loc.Position)
		byPoint[loc.Position] = loc
	}

	roads, err := geom.BuildRoads(points, b.cfg.Bounds, b.cfg.MaxRoadLength)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	connectSettlements(byPoint, roads)
	regions := geom.BuildRegions(points, roads)

	var forests []geom.Forest
	if prior != nil && len(prior.Forests) > 0 {
		forests = prior.Forests
	} else {
		forests = geom.BuildForests(b.rng, b.cfg.Bounds, b.cfg.ForestRadius, b.cfg.ForestCount)
	}

	slog.Info("world layout built",
		"settlements", len(settlements), "roads", len(roads),
		"regions", len(regions), "forests", len(forests))
	return &Artifacts{Roads: roads, Regions: regions, Forests: forests}, nil
}

// settlements returns the registry's existing villages and towns.
func (b *Builder) settlements(reg *registry.Registry) []*lords.Location {
	var out []*lords.Location
	for _, loc := range reg.Locations() {
		if loc.Type == lords.LocVillage || loc.Type == lords.LocTown {
			out = append(out, loc)
		}
	}
	return out
}

// placeSettlements scatters fresh settlement locations and registers
// them, binding each to a random lord as a fief.
func (b *Builder) placeSettlements(reg *registry.Registry) []*lords.Location {
	points := geom.BlueNoise(b.rng, b.cfg.Bounds, b.cfg.SettlementRadius, b.cfg.SettlementCount)
	if len(points) < b.cfg.SettlementCount {
		slog.Warn("settlement sampling fell short",
			"requested", b.cfg.SettlementCount, "placed", len(points))
	}

	usedNames := make(map[string]struct{})
	out := make([]*lords.Location, 0, len(points))
	for _, p := range points {
		typ := lords.LocVillage
		if b.rng.Float64() < b.cfg.TownChance {
			typ = lords.LocTown
		}
		loc := lords.NewLocation(reg.NextLocationID(),
			b.gen.RandomVillageName(usedNames), typ, p)
		loc.Population = b.population(typ, p)
		loc.Soldiers = loc.Population / 20

		if owner := b.fiefOwner(reg); owner != nil {
			lords.OwnFief(owner, loc)
		}
		reg.AddLocation(loc)
		out = append(out, loc)
	}
	return out
}

// fiefOwner draws a random lord whose fief count is still under the
// customary range for his title. After a few saturated draws the range
// cap is waived so settlements still find owners, but never in favor of
// a client: clients hold no fiefs at any point.
func (b *Builder) fiefOwner(reg *registry.Registry) *lords.Nobleman {
	for i := 0; i < 8; i++ {
		owner := reg.RandomLord(b.rng)
		if owner == nil {
			return nil
		}
		limit, ok := hierarchy.FiefRanges[owner.Title]
		if !ok || owner.Fiefs.Len() < limit[1] {
			return owner
		}
	}
	for i := 0; i < 64; i++ {
		if owner := reg.RandomLord(b.rng); owner != nil && owner.Title != lords.TitleClient {
			return owner
		}
	}
	return nil
}

// population draws from the type range and scales by local fertility.
func (b *Builder) population(typ lords.LocationType, p geom.Point) int {
	var base, span int
	switch typ {
	case lords.LocTown:
		base, span = 1000, 2000
	default:
		base, span = 50, 350
	}
	fertile := 0.5 + b.fertility.At(p)
	return int(float64(base+b.rng.Intn(span)) * fertile)
}

// connectSettlements fills each settlement's RoadsTo set from the roads
// whose both endpoints are settlements. Roads anchored at world corners
// connect nothing.
func connectSettlements(byPoint map[geom.Point]*lords.Location, roads []geom.Road) {
	for _, road := range roads {
		a, okA := byPoint[road.A]
		bLoc, okB := byPoint[road.B]
		if !okA || !okB {
			continue
		}
		a.RoadsTo.Add(bLoc.ID)
		bLoc.RoadsTo.Add(a.ID)
	}
}
