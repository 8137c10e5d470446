package worldmap

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/names"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Bounds = geom.Rect{Width: 1500, Height: 1200}
	cfg.SettlementCount = 20
	cfg.SettlementRadius = 150
	cfg.ForestCount = 10
	cfg.ForestRadius = 200
	cfg.Seed = 77
	return cfg
}

func testGenerator(seed int64) *names.Generator {
	lists := &names.WordLists{
		MaleNames:    []string{"Konrad", "Stefan"},
		FemaleNames:  []string{"Helena"},
		Surnames:     []string{"Gryf", "Ostoja"},
		Prefixes:     []string{"de"},
		VillageNames: []string{"Bielice", "Tarnovo", "Rudniki"},
	}
	return names.NewGenerator(lists, rand.New(rand.NewSource(seed)))
}

func lordsRealm(t *testing.T, n int) *registry.Registry {
	t.Helper()
	reg := registry.New()
	gen := testGenerator(2)
	require.NoError(t, reg.CreateLordsSet(rand.New(rand.NewSource(2)), gen,
		map[lords.Title]int{lords.TitleBaron: 3}))
	require.GreaterOrEqual(t, reg.LordCount(), n)
	return reg
}

func TestBuildPlacesSettlements(t *testing.T) {
	cfg := testConfig()
	reg := lordsRealm(t, 3)
	builder := NewBuilder(cfg, testGenerator(cfg.Seed))

	art, err := builder.Build(reg, nil)
	require.NoError(t, err)
	require.NotNil(t, art)

	assert.Greater(t, reg.LocationCount(), 0)
	assert.NotEmpty(t, art.Roads)
	assert.Len(t, art.Regions, reg.LocationCount())

	for _, loc := range reg.Locations() {
		assert.Contains(t, []lords.LocationType{lords.LocVillage, lords.LocTown}, loc.Type)
		assert.True(t, cfg.Bounds.Contains(loc.Position))
		assert.Greater(t, loc.Population, 0)
		assert.Equal(t, loc.Population/20, loc.Soldiers)

		// Every settlement went to some lord as a fief.
		require.NotNil(t, loc.OwnerID)
		owner := reg.Lord(*loc.OwnerID)
		require.NotNil(t, owner)
		assert.True(t, owner.Fiefs.Has(loc.ID))
		assert.Equal(t, owner.Faction, loc.Faction)
	}

	for _, road := range art.Roads {
		assert.LessOrEqual(t, road.Length, cfg.MaxRoadLength)
	}
}

func TestBuildKeepsExistingSettlements(t *testing.T) {
	cfg := testConfig()
	reg := lordsRealm(t, 3)
	builder := NewBuilder(cfg, testGenerator(cfg.Seed))

	_, err := builder.Build(reg, nil)
	require.NoError(t, err)
	placed := reg.LocationCount()

	positions := make(map[lords.LocationID]geom.Point)
	for _, loc := range reg.Locations() {
		positions[loc.ID] = loc.Position
	}

	// A second build reuses the registered settlements as-is.
	_, err = NewBuilder(cfg, testGenerator(cfg.Seed)).Build(reg, nil)
	require.NoError(t, err)
	assert.Equal(t, placed, reg.LocationCount())
	for _, loc := range reg.Locations() {
		assert.Equal(t, positions[loc.ID], loc.Position)
	}
}

func TestBuildReusesPriorArtifacts(t *testing.T) {
	cfg := testConfig()
	reg := lordsRealm(t, 3)
	builder := NewBuilder(cfg, testGenerator(cfg.Seed))

	first, err := builder.Build(reg, nil)
	require.NoError(t, err)

	second, err := builder.Build(reg, first)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestBuildSameSeedSameWorld(t *testing.T) {
	type placed struct {
		Name     string
		Position geom.Point
		Owner    string
		Roads    []lords.LocationID
	}
	world := func() []placed {
		cfg := testConfig()
		reg := lordsRealm(t, 3)
		art, err := NewBuilder(cfg, testGenerator(cfg.Seed)).Build(reg, nil)
		require.NoError(t, err)
		require.NotNil(t, art)

		out := make([]placed, 0, reg.LocationCount())
		for _, loc := range reg.Locations() {
			p := placed{Name: loc.FullName(), Position: loc.Position, Roads: loc.RoadsTo.IDs()}
			if loc.OwnerID != nil {
				p.Owner = reg.Lord(*loc.OwnerID).FullName
			}
			out = append(out, p)
		}
		return out
	}

	first := world()
	second := world()
	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "same seed must build the same world")
}

func TestBuildNeverGrantsFiefsToClients(t *testing.T) {
	cfg := testConfig()

	// One chevalier among a crowd of clients saturates the fief caps
	// fast, so most settlements go through the fallback draw.
	reg := registry.New()
	holder := lords.NewNobleman(reg.NextLordID(), "Konrad de Gryf", 40,
		lords.NationalityRagada, lords.FactionNeutral, lords.TitleChevalier)
	reg.AddLord(holder)
	for i := 0; i < 40; i++ {
		reg.AddLord(lords.NewNobleman(reg.NextLordID(),
			fmt.Sprintf("Stefan%d de Ostoja", i), 30,
			lords.NationalityRagada, lords.FactionNeutral, lords.TitleClient))
	}

	_, err := NewBuilder(cfg, testGenerator(cfg.Seed)).Build(reg, nil)
	require.NoError(t, err)
	require.Greater(t, reg.LocationCount(), 0)

	for _, loc := range reg.Locations() {
		if loc.OwnerID == nil {
			continue
		}
		owner := reg.Lord(*loc.OwnerID)
		require.NotNil(t, owner)
		assert.NotEqual(t, lords.TitleClient, owner.Title,
			"settlement %s owned by client %s", loc.FullName(), owner.FullName)
	}

	clientTitle := lords.TitleClient
	for _, client := range reg.LordsOfTitle(&clientTitle) {
		assert.Zero(t, client.Fiefs.Len(), "client %s holds fiefs", client.FullName)
	}
}

func TestRoadsToLinksOnlySettlementEndpoints(t *testing.T) {
	cfg := testConfig()
	reg := lordsRealm(t, 3)
	builder := NewBuilder(cfg, testGenerator(cfg.Seed))

	art, err := builder.Build(reg, nil)
	require.NoError(t, err)

	byPoint := make(map[geom.Point]*lords.Location)
	for _, loc := range reg.Locations() {
		byPoint[loc.Position] = loc
	}

	for _, loc := range reg.Locations() {
		for _, id := range loc.RoadsTo.IDs() {
			other := reg.Location(id)
			require.NotNil(t, other)
			assert.True(t, other.RoadsTo.Has(loc.ID), "adjacency must be symmetric")

			found := false
			for _, road := range art.Roads {
				if road.Touches(loc.Position) && road.Touches(other.Position) {
					found = true
					break
				}
			}
			assert.True(t, found, "no surviving road between linked settlements")
		}
	}
}
