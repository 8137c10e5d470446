package registry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
)

func addLord(t *testing.T, r *Registry, name string, age int, title lords.Title) *lords.Nobleman {
	t.Helper()
	n := lords.NewNobleman(r.NextLordID(), name, age, lords.NationalityRagada, lords.FactionNeutral, title)
	r.AddLord(n)
	return n
}

func addLocation(t *testing.T, r *Registry, name string, typ lords.LocationType) *lords.Location {
	t.Helper()
	loc := lords.NewLocation(r.NextLocationID(), name, typ, geom.Point{})
	r.AddLocation(loc)
	return loc
}

func TestAddAndLookup(t *testing.T) {
	r := New()
	lord := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	loc := addLocation(t, r, "Bielice", lords.LocVillage)

	assert.Same(t, lord, r.Lord(lord.ID))
	assert.Same(t, loc, r.Location(loc.ID))
	assert.Equal(t, 1, r.LordCount())
	assert.Equal(t, 1, r.LocationCount())
	assert.Nil(t, r.Lord(999))
}

func TestIDsNeverReused(t *testing.T) {
	r := New()
	a := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	b := addLord(t, r, "Stefan de Ostoja", 35, lords.TitleClient)
	require.NotEqual(t, a.ID, b.ID)

	r.DiscardLord(a.ID)
	c := addLord(t, r, "Viktor de Vasa", 30, lords.TitleClient)
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, b.ID, c.ID)
}

func TestDiscardIsLoggedAndDoesNotCascade(t *testing.T) {
	r := New()
	liege := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	vassal := addLord(t, r, "Stefan de Ostoja", 35, lords.TitleClient)
	r.SetFeudalBond(liege, vassal)

	r.DiscardLord(vassal.ID)

	assert.Nil(t, r.Lord(vassal.ID))
	assert.Equal(t, []lords.LordID{vassal.ID}, r.DiscardedLords())
	// No cascade: the liege still lists the discarded vassal.
	assert.True(t, liege.Vassals.Has(vassal.ID))

	r.ClearDiscarded()
	assert.Empty(t, r.DiscardedLords())
}

func TestClearLogsEverything(t *testing.T) {
	r := New()
	addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	addLocation(t, r, "Bielice", lords.LocVillage)

	r.Clear()

	assert.Zero(t, r.LordCount())
	assert.Zero(t, r.LocationCount())
	assert.Len(t, r.DiscardedLords(), 1)
	assert.Len(t, r.DiscardedLocations(), 1)
}

func TestRandomLordIsDeterministicInSeed(t *testing.T) {
	draws := func() []lords.LordID {
		r := New()
		addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
		addLord(t, r, "Stefan de Ostoja", 35, lords.TitleClient)
		addLord(t, r, "Viktor de Vasa", 30, lords.TitleChevalier)
		addLord(t, r, "Helena de Gryf", 25, lords.TitleClient)

		rng := rand.New(rand.NewSource(13))
		out := make([]lords.LordID, 0, 20)
		for i := 0; i < 20; i++ {
			out = append(out, r.RandomLord(rng).ID)
		}
		return out
	}

	assert.Equal(t, draws(), draws(), "same seed must draw the same lords")
}

func TestNameSearchIsSubstringOverTitledName(t *testing.T) {
	r := New()
	lord := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	loc := addLocation(t, r, "Bielice", lords.LocVillage)

	assert.Same(t, lord, r.LordByName("Gryf"))
	assert.Same(t, lord, r.LordByName("baron Konrad"))
	assert.Nil(t, r.LordByName("Ostoja"))

	assert.Same(t, loc, r.LocationByName("Bielice"))
	assert.Same(t, loc, r.LocationByName("Village Bie"))
	assert.Nil(t, r.LocationByName("Tarnovo"))
}

func TestQueries(t *testing.T) {
	r := New()
	baron := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	client := addLord(t, r, "Helena de Gryf", 25, lords.TitleClient)
	priest := addLord(t, r, "Stefan de Ostoja", 50, lords.TitleChevalier)
	priest.ChurchTitle = lords.ChurchPriest
	officer := addLord(t, r, "Viktor de Vasa", 45, lords.TitleChevalier)
	officer.MilitaryRank = lords.MilitaryCaptain

	assert.ElementsMatch(t, []*lords.Nobleman{baron, client}, r.LordsOfFamily("Gryf"))
	assert.ElementsMatch(t, []*lords.Nobleman{client}, r.LordsOfSex(lords.SexWoman))

	title := lords.TitleChevalier
	assert.ElementsMatch(t, []*lords.Nobleman{priest, officer}, r.LordsOfTitle(&title))
	assert.Len(t, r.LordsOfTitle(nil), 4)

	assert.ElementsMatch(t, []*lords.Nobleman{priest}, r.LordsOfChurchTitle(nil))
	assert.ElementsMatch(t, []*lords.Nobleman{officer}, r.LordsOfMilitaryRank(nil))

	rank := lords.MilitaryColonel
	assert.Empty(t, r.LordsOfMilitaryRank(&rank))
}

func TestLocationQueries(t *testing.T) {
	r := New()
	owner := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	village := addLocation(t, r, "Bielice", lords.LocVillage)
	town := addLocation(t, r, "Tarnovo", lords.LocTown)
	lords.OwnFief(owner, village)

	typ := lords.LocVillage
	assert.ElementsMatch(t, []*lords.Location{village}, r.LocationsOfType(&typ))
	assert.Len(t, r.LocationsOfType(nil), 2)
	assert.ElementsMatch(t, []*lords.Location{village}, r.LocationsOfOwner(owner.ID))

	townType := lords.LocTown
	assert.ElementsMatch(t, []*lords.Location{town}, r.LocationsOfType(&townType))

	lords.OwnFief(owner, town)
	assert.ElementsMatch(t, []*lords.Location{village}, r.FiefsOfType(owner, lords.LocVillage))
	assert.ElementsMatch(t, []*lords.Location{town}, r.FiefsOfType(owner, lords.LocTown))
	assert.Empty(t, r.FiefsOfType(owner, lords.LocCastle))
}

func TestFullDomainWalksVassalTree(t *testing.T) {
	r := New()
	count := addLord(t, r, "Giovanni di Castiliogne", 55, lords.TitleCount)
	baron := addLord(t, r, "Konrad de Gryf", 40, lords.TitleBaron)
	chevalier := addLord(t, r, "Stefan de Ostoja", 30, lords.TitleChevalier)

	countSeat := addLocation(t, r, "Tarnovo", lords.LocCastle)
	baronSeat := addLocation(t, r, "Bielice", lords.LocVillage)
	glebe := addLocation(t, r, "Rudniki", lords.LocVillage)
	lords.OwnFief(count, countSeat)
	lords.OwnFief(baron, baronSeat)
	lords.OwnFief(chevalier, glebe)

	r.SetFeudalBond(count, baron)
	r.SetFeudalBond(baron, chevalier)

	assert.ElementsMatch(t,
		[]*lords.Location{countSeat, baronSeat, glebe},
		r.FullDomain(count))
	assert.ElementsMatch(t,
		[]*lords.Location{baronSeat, glebe},
		r.FullDomain(baron))
}
