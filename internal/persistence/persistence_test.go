package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
	"github.com/akapkotel/monstyr-sandbox/internal/worldmap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sandbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleWorld(t *testing.T) (*registry.Registry, *worldmap.Artifacts) {
	t.Helper()
	reg := registry.New()

	count := lords.NewNobleman(reg.NextLordID(), "Giovanni di Castiliogne", 55,
		lords.NationalityRagada, lords.FactionRoyalists, lords.TitleCount)
	reg.AddLord(count)
	baron := lords.NewNobleman(reg.NextLordID(), "Konrad de Gryf", 40,
		lords.NationalityRagada, lords.FactionNationalists, lords.TitleBaron)
	baron.MilitaryRank = lords.MilitaryCaptain
	baron.Info = []string{"keeps falcons", "owes the crown 200 guilders"}
	reg.AddLord(baron)
	wife := lords.NewNobleman(reg.NextLordID(), "Helena de Gryf", 35,
		lords.NationalityRagada, lords.FactionNationalists, lords.TitleBaron)
	reg.AddLord(wife)

	require.NoError(t, lords.BindSpouses(baron, wife))
	reg.SetFeudalBond(count, baron)

	village := lords.NewLocation(reg.NextLocationID(), "Bielice",
		lords.LocVillage, geom.Point{X: 120, Y: 340})
	village.Population = 260
	village.Soldiers = 13
	lords.OwnFief(baron, village)
	reg.AddLocation(village)

	town := lords.NewLocation(reg.NextLocationID(), "Tarnovo",
		lords.LocTown, geom.Point{X: 600, Y: 300})
	town.Population = 1800
	town.Soldiers = 90
	reg.AddLocation(town)

	village.RoadsTo.Add(town.ID)
	town.RoadsTo.Add(village.ID)

	road := geom.Road{A: village.Position, B: town.Position,
		Centroid: geom.Midpoint(village.Position, town.Position),
		Length:   geom.Distance(village.Position, town.Position)}
	art := &worldmap.Artifacts{
		Roads:   []geom.Road{road},
		Regions: []geom.Region{{Center: village.Position, Vertices: []geom.Point{road.Centroid}}},
		Forests: []geom.Forest{{Anchor: geom.Point{X: 900, Y: 900}}},
	}
	return reg, art
}

func TestLoadWorldEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	assert.False(t, db.HasWorldState())
	_, _, err := db.LoadWorld()
	assert.ErrorIs(t, err, ErrNoWorldState)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	reg, art := sampleWorld(t)

	require.NoError(t, db.SaveWorld(reg, art))
	assert.True(t, db.HasWorldState())

	loaded, loadedArt, err := db.LoadWorld()
	require.NoError(t, err)

	assert.Equal(t, reg.LordCount(), loaded.LordCount())
	assert.Equal(t, reg.LocationCount(), loaded.LocationCount())

	for _, want := range reg.Lords() {
		got := loaded.Lord(want.ID)
		require.NotNil(t, got, "lord %d missing after load", want.ID)
		assert.Equal(t, want, got)
	}
	for _, want := range reg.Locations() {
		got := loaded.Location(want.ID)
		require.NotNil(t, got, "location %d missing after load", want.ID)
		assert.Equal(t, want, got)
	}

	require.NotNil(t, loadedArt)
	assert.Equal(t, art.Roads, loadedArt.Roads)
	assert.Equal(t, art.Regions, loadedArt.Regions)
	assert.Equal(t, art.Forests, loadedArt.Forests)

	saved, err := db.GetMeta("saved_lords")
	require.NoError(t, err)
	assert.Equal(t, "3", saved)
}

func TestSaveIsFullReplace(t *testing.T) {
	db := openTestDB(t)
	reg, art := sampleWorld(t)
	require.NoError(t, db.SaveWorld(reg, art))

	victim := reg.Lords()[0]
	reg.DiscardLord(victim.ID)
	require.NoError(t, db.SaveWorld(reg, art))
	assert.Empty(t, reg.DiscardedLords(), "save purges the discard log")

	loaded, _, err := db.LoadWorld()
	require.NoError(t, err)
	assert.Nil(t, loaded.Lord(victim.ID))
	assert.Equal(t, reg.LordCount(), loaded.LordCount())
}

func TestIDSequencesContinueAfterLoad(t *testing.T) {
	db := openTestDB(t)
	reg, art := sampleWorld(t)
	require.NoError(t, db.SaveWorld(reg, art))

	loaded, _, err := db.LoadWorld()
	require.NoError(t, err)

	var maxLord lords.LordID
	for _, n := range reg.Lords() {
		if n.ID > maxLord {
			maxLord = n.ID
		}
	}
	assert.Greater(t, loaded.NextLordID(), maxLord)
}

func TestWorldIDIsStable(t *testing.T) {
	db := openTestDB(t)

	first, err := db.WorldID()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := db.WorldID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetMeta("missing")
	assert.Error(t, err)

	require.NoError(t, db.SaveMeta("season", "harvest"))
	require.NoError(t, db.SaveMeta("season", "winter"))
	v, err := db.GetMeta("season")
	require.NoError(t, err)
	assert.Equal(t, "winter", v)
}
