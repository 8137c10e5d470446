// Package registry provides the id-indexed in-memory store for noblemen
// and locations. All cross-entity relations are kept as ids and resolved
// here at read time, so the in-memory form and the storage form agree.
package registry

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/akapkotel/monstyr-sandbox/internal/lords"
)

// Registry holds every nobleman and location of a world. Queries are
// full scans returning sets; populations are in the low thousands and
// reads are interactive, not hot-path.
type Registry struct {
	lordsByID     map[lords.LordID]*lords.Nobleman
	locationsByID map[lords.LocationID]*lords.Location

	// Ids removed since the last save. The store purges their rows.
	discardedLords     lords.LordSet
	discardedLocations lords.LocationSet

	nextLordID     lords.LordID
	nextLocationID lords.LocationID
}

// New creates an empty registry. Ids start at 1.
func New() *Registry {
	return &Registry{
		lordsByID:          make(map[lords.LordID]*lords.Nobleman),
		locationsByID:      make(map[lords.LocationID]*lords.Location),
		discardedLords:     lords.LordSet{},
		discardedLocations: lords.LocationSet{},
		nextLordID:         1,
		nextLocationID:     1,
	}
}

// NextLordID allocates a fresh lord id.
func (r *Registry) NextLordID() lords.LordID {
	id := r.nextLordID
	r.nextLordID++
	return id
}

// NextLocationID allocates a fresh location id.
func (r *Registry) NextLocationID() lords.LocationID {
	id := r.nextLocationID
	r.nextLocationID++
	return id
}

// AddLord registers n, bumping the id counter past its id.
func (r *Registry) AddLord(n *lords.Nobleman) {
	r.lordsByID[n.ID] = n
	if n.ID >= r.nextLordID {
		r.nextLordID = n.ID + 1
	}
	r.discardedLords.Discard(n.ID)
}

// AddLocation registers loc, bumping the id counter past its id.
func (r *Registry) AddLocation(loc *lords.Location) {
	r.locationsByID[loc.ID] = loc
	if loc.ID >= r.nextLocationID {
		r.nextLocationID = loc.ID + 1
	}
	r.discardedLocations.Discard(loc.ID)
}

// Lord resolves a lord id, nil when absent.
func (r *Registry) Lord(id lords.LordID) *lords.Nobleman {
	return r.lordsByID[id]
}

// Location resolves a location id, nil when absent.
func (r *Registry) Location(id lords.LocationID) *lords.Location {
	return r.locationsByID[id]
}

// DiscardLord removes the lord. Inverse references held by other
// entities are left untouched; callers break bonds first.
func (r *Registry) DiscardLord(id lords.LordID) {
	if _, ok := r.lordsByID[id]; !ok {
		return
	}
	delete(r.lordsByID, id)
	r.discardedLords.Add(id)
}

// DiscardLocation removes the location without cascading.
func (r *Registry) DiscardLocation(id lords.LocationID) {
	if _, ok := r.locationsByID[id]; !ok {
		return
	}
	delete(r.locationsByID, id)
	r.discardedLocations.Add(id)
}

// DiscardedLords returns ids discarded since the last save.
func (r *Registry) DiscardedLords() []lords.LordID {
	return r.discardedLords.IDs()
}

// DiscardedLocations returns ids discarded since the last save.
func (r *Registry) DiscardedLocations() []lords.LocationID {
	return r.discardedLocations.IDs()
}

// ClearDiscarded forgets the discard log, called after a save purge.
func (r *Registry) ClearDiscarded() {
	r.discardedLords = lords.LordSet{}
	r.discardedLocations = lords.LocationSet{}
}

// Clear discards everything.
func (r *Registry) Clear() {
	for id := range r.lordsByID {
		r.discardedLords.Add(id)
	}
	for id := range r.locationsByID {
		r.discardedLocations.Add(id)
	}
	r.lordsByID = make(map[lords.LordID]*lords.Nobleman)
	r.locationsByID = make(map[lords.LocationID]*lords.Location)
}

// LordCount returns the number of registered lords.
func (r *Registry) LordCount() int { return len(r.lordsByID) }

// LocationCount returns the number of registered locations.
func (r *Registry) LocationCount() int { return len(r.locationsByID) }

// Lords returns every registered nobleman in ascending id order. The
// order matters: generation draws seeded rng values while iterating, so
// walking the backing map directly would make the same seed produce
// different worlds.
func (r *Registry) Lords() []*lords.Nobleman {
	all := make([]*lords.Nobleman, 0, len(r.lordsByID))
	for _, n := range r.lordsByID {
		all = append(all, n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Locations returns every registered location in ascending id order.
func (r *Registry) Locations() []*lords.Location {
	all := make([]*lords.Location, 0, len(r.locationsByID))
	for _, loc := range r.locationsByID {
		all = append(all, loc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// RandomLord draws a uniformly random lord, nil when the registry is
// empty. The draw indexes the id-ordered slice so it is a pure function
// of the rng state.
func (r *Registry) RandomLord(rng *rand.Rand) *lords.Nobleman {
	if len(r.lordsByID) == 0 {
		return nil
	}
	all := r.Lords()
	return all[rng.Intn(len(all))]
}

// LordByName returns the lowest-id lord whose TitleAndName contains
// name.
func (r *Registry) LordByName(name string) *lords.Nobleman {
	for _, n := range r.Lords() {
		if strings.Contains(n.TitleAndName(), name) {
			return n
		}
	}
	return nil
}

// LocationByName returns the lowest-id location whose full name contains
// name.
func (r *Registry) LocationByName(name string) *lords.Location {
	for _, loc := range r.Locations() {
		if strings.Contains(loc.FullName(), name) {
			return loc
		}
	}
	return nil
}
