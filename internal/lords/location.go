package lords

import (
	"strings"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
)

// LocationID is a unique identifier for a location.
type LocationID uint64

// LocationType enumerates every kind of place that can appear on the map.
type LocationType uint8

const (
	LocVillage LocationType = iota
	LocTown
	LocCity
	LocPalace
	LocWindmill
	LocWatermill
	LocWinery
	LocBrewery
	LocMine
	LocQuarry
	LocChurch
	LocHideout
	LocMilitaryPost
	LocCastle
	LocFortress
	LocPrintingHouse
	LocHuntingManor
	LocVilla
	LocSawmill
	LocChapel
	LocForest
	LocManufacture
	LocAbbey
	LocInn
	LocManorHouse
	LocStable
	LocHospital
	LocFortifiedTower
	LocCastellum
	LocGrange
	LocPlantation
	LocShipyard
)

var locationTypeNames = [...]string{
	"village", "town", "city", "palace", "windmill", "watermill",
	"winery", "brewery", "mine", "quarry", "church", "hideout",
	"military post", "castle", "fortress", "printing house",
	"hunting manor", "villa", "sawmill", "chapel", "forest",
	"manufacture", "abbey", "inn", "manor house", "stable", "hospital",
	"fortified tower", "castellum", "grange", "plantation", "shipyard",
}

// LocationTypes lists every location type in declaration order.
var LocationTypes = func() []LocationType {
	types := make([]LocationType, len(locationTypeNames))
	for i := range types {
		types[i] = LocationType(i)
	}
	return types
}()

func (l LocationType) String() string {
	if int(l) < len(locationTypeNames) {
		return locationTypeNames[l]
	}
	return "unknown"
}

// Location is a place in the world. Its faction is derived from the
// owner: an ownerless location is neutral.
type Location struct {
	ID         LocationID   `json:"id"`
	Name       string       `json:"name"`
	Type       LocationType `json:"type"`
	Position   geom.Point   `json:"position"`
	OwnerID    *LordID      `json:"owner_id,omitempty"`
	Faction    Faction      `json:"faction"`
	Population int          `json:"population"`
	Soldiers   int          `json:"soldiers"`

	// RoadsTo holds ids of locations connected by a surviving road.
	RoadsTo LocationSet `json:"roads_to"`
}

// NewLocation creates an unowned, neutral location. An empty name falls
// back to the type name.
func NewLocation(id LocationID, name string, typ LocationType, pos geom.Point) *Location {
	if name == "" {
		name = typ.String()
	}
	return &Location{
		ID:       id,
		Name:     name,
		Type:     typ,
		Position: pos,
		Faction:  FactionNeutral,
		RoadsTo:  LocationSet{},
	}
}

// FullName renders the location the way it is listed: "Village Bielice",
// or just "Village" when the place carries no name of its own.
func (l *Location) FullName() string {
	typ := titleCase(l.Type.String())
	if l.Name == l.Type.String() {
		return typ
	}
	return typ + " " + l.Name
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
