// Package hierarchy assigns vassals to lords according to the fixed
// quota table of the setting.
package hierarchy

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
)

// Quotas maps a lord's title to the number of vassals he must hold per
// subordinate title.
type Quotas map[lords.Title]map[lords.Title]int

// VassalQuotas is the quota table of the setting.
var VassalQuotas = Quotas{
	lords.TitleClient:    {},
	lords.TitleChevalier: {lords.TitleClient: 2},
	lords.TitleBaronet:   {lords.TitleClient: 4},
	lords.TitleBaron: {
		lords.TitleBaronet:   5,
		lords.TitleChevalier: 5,
		lords.TitleClient:    6,
	},
	lords.TitleCount: {
		lords.TitleBaron:     4,
		lords.TitleBaronet:   4,
		lords.TitleChevalier: 4,
		lords.TitleClient:    10,
	},
}

// FiefRanges maps a title to the minimum and maximum number of fiefs a
// lord of that rank is expected to hold.
var FiefRanges = map[lords.Title][2]int{
	lords.TitleClient:    {0, 0},
	lords.TitleChevalier: {1, 5},
	lords.TitleBaronet:   {2, 8},
	lords.TitleBaron:     {3, 10},
	lords.TitleVicecount: {4, 12},
	lords.TitleCount:     {5, 15},
	lords.TitleDuke:      {6, 18},
	lords.TitlePrince:    {8, 24},
	lords.TitleKing:      {10, 30},
}

// ShortfallError reports the first subordinate title whose population
// cannot cover the total demand implied by the quota table.
type ShortfallError struct {
	Title    lords.Title
	Required int
	Actual   int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("not enough lords of title %s: required %d, actual %d",
		e.Title, e.Required, e.Actual)
}

// EnoughLords simulates the quota table against the actual per-rank
// populations. It mutates nothing and returns a ShortfallError naming
// the first short rank, checked from the highest title down.
func EnoughLords(reg *registry.Registry, quotas Quotas) error {
	actual := make(map[lords.Title]int)
	for _, t := range lords.Titles {
		title := t
		actual[title] = len(reg.LordsOfTitle(&title))
	}

	demand := make(map[lords.Title]int)
	for lordTitle, subQuotas := range quotas {
		holders := actual[lordTitle]
		for subTitle, count := range subQuotas {
			demand[subTitle] += holders * count
		}
	}

	for i := len(lords.Titles) - 1; i >= 0; i-- {
		t := lords.Titles[i]
		if demand[t] > actual[t] {
			return &ShortfallError{Title: t, Required: demand[t], Actual: actual[t]}
		}
	}
	return nil
}

// Build assigns vassals for the whole realm. The precondition is checked
// first; on shortfall the registry is left unmodified and the error
// describes the missing rank. Otherwise lords are processed from the
// highest quota-holding title down, each drawing uniformly random
// candidates from the potential-vassal pool until his quota per
// subordinate rank is met. Selection is uniform; no balancing by fief
// count or geography. Re-running Build on an already-built registry
// never exceeds a quota.
func Build(reg *registry.Registry, rng *rand.Rand, quotas Quotas) error {
	if err := EnoughLords(reg, quotas); err != nil {
		return fmt.Errorf("build feudal hierarchy: %w", err)
	}

	bonds := 0
	for i := len(lords.Titles) - 1; i >= 0; i-- {
		title := lords.Titles[i]
		if len(quotas[title]) == 0 {
			continue
		}
		for _, lord := range reg.LordsOfTitle(&title) {
			for _, subTitle := range lords.Titles {
				quota, ok := quotas[lord.Title][subTitle]
				if !ok {
					continue
				}
				sub := subTitle
				pool := reg.PotentialVassals(lord, &sub)
				for len(reg.VassalsOfTitle(lord, sub)) < quota {
					if len(pool) == 0 {
						// Cannot happen when the precondition holds,
						// but a manually edited registry may get here.
						slog.Warn("vassal pool ran dry",
							"lord", lord.TitleAndName(), "title", sub.String())
						break
					}
					j := rng.Intn(len(pool))
					vassal := pool[j]
					pool[j] = pool[len(pool)-1]
					pool = pool[:len(pool)-1]
					reg.SetFeudalBond(lord, vassal)
					bonds++
				}
			}
		}
	}

	slog.Info("feudal hierarchy built", "bonds", bonds)
	return nil
}
