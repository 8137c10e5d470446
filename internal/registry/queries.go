package registry

import "github.com/akapkotel/monstyr-sandbox/internal/lords"

// Set queries. Each one is a full scan over the id-ordered entity
// slices, returning a duplicate-free result. Iterating in id order keeps
// rng draws made during generation loops deterministic in the seed.

// LordsOfFamily returns lords with exactly the given family name.
func (r *Registry) LordsOfFamily(family string) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if n.FamilyName() == family {
			out = append(out, n)
		}
	}
	return out
}

// LordsOfSex returns lords of the given sex.
func (r *Registry) LordsOfSex(sex lords.Sex) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if n.Sex == sex {
			out = append(out, n)
		}
	}
	return out
}

// LordsOfTitle returns lords of the given primary title; a nil filter
// returns everyone.
func (r *Registry) LordsOfTitle(title *lords.Title) []*lords.Nobleman {
	if title == nil {
		return r.Lords()
	}
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if n.Title == *title {
			out = append(out, n)
		}
	}
	return out
}

// LordsOfMilitaryRank returns lords of the given rank; a nil filter
// returns every officer.
func (r *Registry) LordsOfMilitaryRank(rank *lords.MilitaryRank) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if rank == nil {
			if n.MilitaryRank != lords.MilitaryNone {
				out = append(out, n)
			}
		} else if n.MilitaryRank == *rank {
			out = append(out, n)
		}
	}
	return out
}

// LordsOfChurchTitle returns lords of the given church title; a nil
// filter returns all clergy.
func (r *Registry) LordsOfChurchTitle(title *lords.ChurchTitle) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if title == nil {
			if n.ChurchTitle != lords.ChurchNone {
				out = append(out, n)
			}
		} else if n.ChurchTitle == *title {
			out = append(out, n)
		}
	}
	return out
}

// LordsOfFaction returns lords sworn to the given faction.
func (r *Registry) LordsOfFaction(faction lords.Faction) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if n.Faction == faction {
			out = append(out, n)
		}
	}
	return out
}

// LordsWithoutLiege returns lords who have sworn to no one.
func (r *Registry) LordsWithoutLiege() []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.Lords() {
		if n.LiegeID == nil {
			out = append(out, n)
		}
	}
	return out
}

// LocationsOfType returns locations of the given type; a nil filter
// returns everything.
func (r *Registry) LocationsOfType(typ *lords.LocationType) []*lords.Location {
	if typ == nil {
		return r.Locations()
	}
	var out []*lords.Location
	for _, loc := range r.Locations() {
		if loc.Type == *typ {
			out = append(out, loc)
		}
	}
	return out
}

// LocationsOfOwner returns the locations held by the given lord.
func (r *Registry) LocationsOfOwner(owner lords.LordID) []*lords.Location {
	var out []*lords.Location
	for _, loc := range r.Locations() {
		if loc.OwnerID != nil && *loc.OwnerID == owner {
			out = append(out, loc)
		}
	}
	return out
}

// FiefsOfType resolves the members of a lord's fief set of the given
// location type.
func (r *Registry) FiefsOfType(lord *lords.Nobleman, typ lords.LocationType) []*lords.Location {
	var out []*lords.Location
	for _, id := range lord.Fiefs.IDs() {
		if loc := r.locationsByID[id]; loc != nil && loc.Type == typ {
			out = append(out, loc)
		}
	}
	return out
}

// VassalsOfTitle resolves the members of a lord's vassal set holding the
// given primary title.
func (r *Registry) VassalsOfTitle(lord *lords.Nobleman, title lords.Title) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, id := range lord.Vassals.IDs() {
		if v := r.lordsByID[id]; v != nil && v.Title == title {
			out = append(out, v)
		}
	}
	return out
}

// FullDomain returns every location a lord holds directly or through his
// vassals, recursively.
func (r *Registry) FullDomain(lord *lords.Nobleman) []*lords.Location {
	seen := lords.LocationSet{}
	var out []*lords.Location
	var visit func(n *lords.Nobleman)
	visit = func(n *lords.Nobleman) {
		for _, id := range n.Fiefs.IDs() {
			if seen.Has(id) {
				continue
			}
			seen.Add(id)
			if loc := r.locationsByID[id]; loc != nil {
				out = append(out, loc)
			}
		}
		for _, id := range n.Vassals.IDs() {
			if v := r.lordsByID[id]; v != nil {
				visit(v)
			}
		}
	}
	visit(lord)
	return out
}
