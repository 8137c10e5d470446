package registry

import "github.com/akapkotel/monstyr-sandbox/internal/lords"

// SetFeudalBond makes lord the liege of vassal and keeps the inverse
// sets consistent: v ∈ lord.Vassals exactly when v.LiegeID == lord.ID.
// A vassal's previous bond is broken first. The bond is refused (no-op)
// unless the lord strictly outranks the vassal by primary title.
func (r *Registry) SetFeudalBond(lord, vassal *lords.Nobleman) {
	if !lords.Outranks(lord, vassal) {
		return
	}
	if vassal.LiegeID != nil {
		if old := r.lordsByID[*vassal.LiegeID]; old != nil {
			r.BreakFeudalBond(old, vassal)
		} else {
			vassal.LiegeID = nil
		}
	}
	lord.Vassals.Add(vassal.ID)
	liegeID := lord.ID
	vassal.LiegeID = &liegeID
}

// BreakFeudalBond dissolves the liege relation between lord and vassal.
func (r *Registry) BreakFeudalBond(lord, vassal *lords.Nobleman) {
	lord.Vassals.Discard(vassal.ID)
	vassal.LiegeID = nil
}

// PotentialVassals returns the pool a lord may recruit from: liege-less
// lords of strictly lower primary title, the lord himself excluded.
// Holding fiefs or vassals of one's own does not disqualify a candidate.
// An optional title narrows the pool to that rank.
func (r *Registry) PotentialVassals(lord *lords.Nobleman, title *lords.Title) []*lords.Nobleman {
	var out []*lords.Nobleman
	for _, n := range r.LordsWithoutLiege() {
		if n.ID == lord.ID || !lords.Outranks(lord, n) {
			continue
		}
		if title != nil && n.Title != *title {
			continue
		}
		out = append(out, n)
	}
	return out
}
