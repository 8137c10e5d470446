// Package lords provides the nobleman and location data model: rank
// enumerations, name helpers, and pairwise relationship binding.
package lords

import "strings"

// Sex of a nobleman, derived from the first name when not set explicitly.
type Sex uint8

const (
	SexMan Sex = iota
	SexWoman
)

func (s Sex) String() string {
	if s == SexWoman {
		return "woman"
	}
	return "man"
}

// SexOf applies the lexical rule of the setting: first names ending in
// "a" belong to women, everything else to men.
func SexOf(firstName string) Sex {
	if strings.HasSuffix(firstName, "a") {
		return SexWoman
	}
	return SexMan
}

// Title is the primary noble rank. Declaration order is the total order:
// client < chevalier < ... < king.
type Title uint8

const (
	TitleClient Title = iota
	TitleChevalier
	TitleBaronet
	TitleBaron
	TitleVicecount
	TitleCount
	TitleDuke
	TitlePrince
	TitleKing
)

// Titles lists all primary titles in ascending rank order.
var Titles = [...]Title{
	TitleClient, TitleChevalier, TitleBaronet, TitleBaron, TitleVicecount,
	TitleCount, TitleDuke, TitlePrince, TitleKing,
}

var titleNames = [...]string{
	"client", "chevalier", "baronet", "baron", "vicecount",
	"count", "duke", "prince", "king",
}

func (t Title) String() string {
	if int(t) < len(titleNames) {
		return titleNames[t]
	}
	return "unknown"
}

// ChurchTitle is the clerical rank ladder.
type ChurchTitle uint8

const (
	ChurchNone ChurchTitle = iota
	ChurchPriest
	ChurchDecanus
	ChurchPrelate
	ChurchCanonicus
	ChurchBishop
)

var churchNames = [...]string{
	"", "priest", "decanus", "prelate", "canonicus", "bishop",
}

func (c ChurchTitle) String() string {
	if int(c) < len(churchNames) {
		return churchNames[c]
	}
	return "unknown"
}

// AbbeyRank is the monastic rank ladder.
type AbbeyRank uint8

const (
	AbbeyNone AbbeyRank = iota
	AbbeyMonk
	AbbeyPrior
	AbbeyAbbot
)

var abbeyNames = [...]string{"", "monk", "prior", "abbot"}

func (a AbbeyRank) String() string {
	if int(a) < len(abbeyNames) {
		return abbeyNames[a]
	}
	return "unknown"
}

// MilitaryRank is the officer rank ladder.
type MilitaryRank uint8

const (
	MilitaryNone MilitaryRank = iota
	MilitarySergeant
	MilitaryCaptain
	MilitaryColonel
	MilitaryGeneral
	MilitaryMarshal
)

var militaryNames = [...]string{
	"", "sergeant", "captain", "colonel", "general", "marshal",
}

func (m MilitaryRank) String() string {
	if int(m) < len(militaryNames) {
		return militaryNames[m]
	}
	return "unknown"
}

// Faction is the political allegiance of a nobleman or location.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionRoyalists
	FactionNationalists
)

var factionNames = [...]string{"neutral", "royalists", "nationalists"}

func (f Faction) String() string {
	if int(f) < len(factionNames) {
		return factionNames[f]
	}
	return "unknown"
}

// Nationality of a nobleman. Ragada is the home realm of the setting.
type Nationality uint8

const (
	NationalityRagada Nationality = iota
	NationalityVarden
	NationalityOkseta
)

var nationalityNames = [...]string{"ragada", "varden", "okseta"}

func (n Nationality) String() string {
	if int(n) < len(nationalityNames) {
		return nationalityNames[n]
	}
	return "unknown"
}

// CompareByTitle orders two noblemen by their primary title alone,
// ignoring church, abbey and military ranks. This is the policy used for
// all feudal eligibility decisions; a marshal who is a mere chevalier
// still cannot take vassals from a baron. Returns -1, 0 or 1. See
// CompareByHighestRank for the all-ladders view ProperTitle takes.
func CompareByTitle(a, b *Nobleman) int {
	switch {
	case a.Title < b.Title:
		return -1
	case a.Title > b.Title:
		return 1
	default:
		return 0
	}
}

// CompareByHighestRank orders two noblemen by the highest position each
// holds on any of the four rank ladders, the same view ProperTitle takes.
// Provided as an explicit alternative policy; not used for vassalage.
func CompareByHighestRank(a, b *Nobleman) int {
	ra, rb := a.highestRank(), b.highestRank()
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// Outranks reports whether a is the feudal superior of b under the
// primary-title policy.
func Outranks(a, b *Nobleman) bool {
	return CompareByTitle(a, b) > 0
}
