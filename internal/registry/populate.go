package registry

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/names"
)

// The five counts of the realm. Their names are fixed in the setting.
var countsRoster = []string{
	"Giovanni di Castiliogne",
	"Giovanni di Firenze",
	"Vittorio di Stravicii",
	"Amadeus da Orsini",
	"Agostino di Mozzenigo",
}

// DefaultTitleCounts is the lord population per title used for a fresh
// realm.
var DefaultTitleCounts = map[lords.Title]int{
	lords.TitleBaron:     28,
	lords.TitleBaronet:   160,
	lords.TitleChevalier: 167,
	lords.TitleClient:    1192,
}

// CreateLordsSet populates an empty registry with the fixed count roster
// plus the requested number of lords per title, each with a unique full
// name, a random age between 16 and 65, and a random faction.
func (r *Registry) CreateLordsSet(rng *rand.Rand, gen *names.Generator, titleCounts map[lords.Title]int) error {
	total := 0
	for _, c := range titleCounts {
		total += c
	}
	pool, err := gen.UniqueFullNames(total)
	if err != nil {
		return fmt.Errorf("create lords set: %w", err)
	}

	for _, name := range countsRoster {
		n := lords.NewNobleman(r.NextLordID(), name, 20,
			lords.NationalityRagada, randomFaction(rng), lords.TitleCount)
		r.AddLord(n)
	}

	// Fill titles from highest to lowest so id order mirrors rank.
	for i := len(lords.Titles) - 1; i >= 0; i-- {
		title := lords.Titles[i]
		count, ok := titleCounts[title]
		if !ok {
			continue
		}
		for j := 0; j < count; j++ {
			name := pool[len(pool)-1]
			pool = pool[:len(pool)-1]
			n := lords.NewNobleman(r.NextLordID(), name, 16+rng.Intn(50),
				lords.NationalityRagada, randomFaction(rng), title)
			r.AddLord(n)
		}
	}

	slog.Info("lords set created", "lords", r.LordCount())
	return nil
}

// MarryOff gives each unmarried lord above client rank a 75% chance of a
// spouse: opposite sex, bearing the lord's prefix and surname, the same
// title, and an age within ten years on the customary side.
func (r *Registry) MarryOff(rng *rand.Rand, lists *names.WordLists) int {
	married := 0
	for _, lord := range r.Lords() {
		if lord.Title == lords.TitleClient || lord.SpouseID != nil {
			continue
		}
		if rng.Float64() <= 0.25 {
			continue
		}
		sex := lords.SexWoman
		if lord.Sex == lords.SexWoman {
			sex = lords.SexMan
		}
		pool := lists.FirstNames(sex)
		first := pool[rng.Intn(len(pool))]

		parts := []string{first}
		if prefix := lord.Prefix(); prefix != "" {
			parts = append(parts, prefix)
		}
		parts = append(parts, lord.FamilyName())
		fullName := strings.Join(parts, " ")

		// Wives are up to ten years younger, husbands up to ten older.
		var age int
		if sex == lords.SexWoman {
			age = lord.Age - rng.Intn(11)
		} else {
			age = lord.Age + rng.Intn(11)
		}
		if age < 16 {
			age = 16
		}

		spouse := lords.NewNobleman(r.NextLordID(), fullName, age,
			lord.Nationality, lord.Faction, lord.Title)
		if err := lords.BindSpouses(lord, spouse); err != nil {
			// A first name defying the suffix rule; leave this lord be.
			continue
		}
		r.AddLord(spouse)
		married++
	}
	return married
}

func randomFaction(rng *rand.Rand) lords.Faction {
	return []lords.Faction{
		lords.FactionNeutral, lords.FactionRoyalists, lords.FactionNationalists,
	}[rng.Intn(3)]
}
