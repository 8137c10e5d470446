// Package names loads the word lists of the setting and generates
// unique noble full names in the form "<first> <prefix> <surname>".
package names

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akapkotel/monstyr-sandbox/internal/lords"
)

// ErrPoolExhausted is returned when more unique names are requested than
// the word lists can combine. Without this check the generator would
// retry forever.
var ErrPoolExhausted = errors.New("name pool exhausted")

// Word-list file names inside the configured directory. Each file holds
// a single comma-separated line of tokens.
const (
	MaleNamesFile    = "m_names.txt"
	FemaleNamesFile  = "f_names.txt"
	SurnamesFile     = "surnames.txt"
	PrefixesFile     = "prefixes.txt"
	VillageNamesFile = "villages_names.txt"
)

// WordLists holds every word pool, loaded once at startup and threaded
// through constructors.
type WordLists struct {
	MaleNames    []string
	FemaleNames  []string
	Surnames     []string
	Prefixes     []string
	VillageNames []string
}

// LoadWordLists reads all word-list files from dir.
func LoadWordLists(dir string) (*WordLists, error) {
	lists := &WordLists{}
	for _, f := range []struct {
		file string
		dst  *[]string
	}{
		{MaleNamesFile, &lists.MaleNames},
		{FemaleNamesFile, &lists.FemaleNames},
		{SurnamesFile, &lists.Surnames},
		{PrefixesFile, &lists.Prefixes},
		{VillageNamesFile, &lists.VillageNames},
	} {
		words, err := loadWords(filepath.Join(dir, f.file))
		if err != nil {
			return nil, err
		}
		*f.dst = words
	}
	return lists, nil
}

// loadWords reads one comma-separated line of tokens and sorts them.
func loadWords(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	line, _, _ := strings.Cut(string(raw), "\n")
	var words []string
	for _, w := range strings.Split(line, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("load word list: %s holds no words", path)
	}
	sort.Strings(words)
	return words, nil
}

// FirstNames returns the name pool matching the given sex.
func (w *WordLists) FirstNames(sex lords.Sex) []string {
	if sex == lords.SexWoman {
		return w.FemaleNames
	}
	return w.MaleNames
}

// Capacity is the number of distinct full names the lists can produce.
func (w *WordLists) Capacity() int {
	return (len(w.MaleNames) + len(w.FemaleNames)) * len(w.Prefixes) * len(w.Surnames)
}

// Generator draws names from the word lists with a private rng.
type Generator struct {
	lists *WordLists
	rng   *rand.Rand
}

// NewGenerator creates a generator over the given lists.
func NewGenerator(lists *WordLists, rng *rand.Rand) *Generator {
	return &Generator{lists: lists, rng: rng}
}

// RandomSex draws a sex with the population skew of the setting: three
// lords in four are men.
func (g *Generator) RandomSex() lords.Sex {
	if g.rng.Float64() < 0.75 {
		return lords.SexMan
	}
	return lords.SexWoman
}

// RandomFullName draws "<first> <prefix> <surname>" fitting the sex.
func (g *Generator) RandomFullName(sex lords.Sex) string {
	pool := g.lists.FirstNames(sex)
	first := pool[g.rng.Intn(len(pool))]
	prefix := g.lists.Prefixes[g.rng.Intn(len(g.lists.Prefixes))]
	surname := g.lists.Surnames[g.rng.Intn(len(g.lists.Surnames))]
	return first + " " + prefix + " " + surname
}

// UniqueFullNames returns exactly n distinct full names, retrying on
// collision. Returns ErrPoolExhausted when the lists cannot combine n
// distinct names.
func (g *Generator) UniqueFullNames(n int) ([]string, error) {
	if n > g.lists.Capacity() {
		return nil, fmt.Errorf("%w: %d names requested, %d combinations possible",
			ErrPoolExhausted, n, g.lists.Capacity())
	}
	used := make(map[string]struct{}, n)
	result := make([]string, 0, n)
	for len(result) < n {
		name := g.RandomFullName(g.RandomSex())
		if _, ok := used[name]; ok {
			continue
		}
		used[name] = struct{}{}
		result = append(result, name)
	}
	return result, nil
}

// RandomVillageName draws an unused village name, marking it used. When
// the list runs dry it falls back to procedural two-part compounds.
func (g *Generator) RandomVillageName(used map[string]struct{}) string {
	var free []string
	for _, name := range g.lists.VillageNames {
		if _, ok := used[name]; !ok {
			free = append(free, name)
		}
	}
	if len(free) > 0 {
		name := free[g.rng.Intn(len(free))]
		used[name] = struct{}{}
		return name
	}
	for {
		name := villagePrefixes[g.rng.Intn(len(villagePrefixes))] +
			villageSuffixes[g.rng.Intn(len(villageSuffixes))]
		if _, ok := used[name]; !ok {
			used[name] = struct{}{}
			return name
		}
	}
}

// Fallback syllables for village names once the word list is spent.
var (
	villagePrefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "High", "Low", "Old", "New", "Far",
		"Deep", "Long", "Broad", "Gold", "Frost", "Thorn", "Elm", "Oak",
	}
	villageSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "stead",
		"wood", "field", "dale", "vale", "bury", "marsh", "well",
		"brook", "moor", "ridge", "fall", "rest",
	}
)
