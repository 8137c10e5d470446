package lords

import (
	"errors"
	"strings"
)

// LordID is a unique identifier for a nobleman, stable for the whole
// lifetime of the object and of its saved form.
type LordID uint64

var (
	// ErrSameSexSpouses is returned when a marriage between two
	// noblemen of the same sex is attempted. Marriages in the setting
	// are strictly opposite-sex; this is documented domain behavior.
	ErrSameSexSpouses = errors.New("spouses must be of opposite sex")

	// ErrAlreadyMarried is returned when either party has a spouse.
	ErrAlreadyMarried = errors.New("nobleman is already married")

	// ErrSelfBond is returned when a nobleman is bound to themselves.
	ErrSelfBond = errors.New("cannot bind a nobleman to themselves")

	// ErrChildTooOld is returned when the parent-child age gap is 12
	// years or less.
	ErrChildTooOld = errors.New("parent must be more than 12 years older than child")
)

// Nobleman is an entity holding noble, clerical, monastic or military
// rank. All relations are stored as ids and resolved through the
// registry; a Nobleman never holds a pointer to another Nobleman.
type Nobleman struct {
	ID       LordID `json:"id"`
	FullName string `json:"full_name"`

	Sex         Sex         `json:"sex"`
	Age         int         `json:"age"`
	Nationality Nationality `json:"nationality"`
	Faction     Faction     `json:"faction"`

	// Rank ladders. Title drives all feudal eligibility; the other
	// three only contribute to ProperTitle.
	Title        Title        `json:"title"`
	ChurchTitle  ChurchTitle  `json:"church_title"`
	AbbeyRank    AbbeyRank    `json:"abbey_rank"`
	MilitaryRank MilitaryRank `json:"military_rank"`

	// Family
	SpouseID *LordID `json:"spouse_id,omitempty"`
	Siblings LordSet `json:"siblings"`
	Children LordSet `json:"children"`

	// Feudal
	LiegeID *LordID     `json:"liege_id,omitempty"`
	Vassals LordSet     `json:"vassals"`
	Fiefs   LocationSet `json:"fiefs"`

	// Free-form notes kept by the editor.
	Info []string `json:"info,omitempty"`
}

// NewNobleman creates a nobleman with empty relation sets. Sex is derived
// from the first name.
func NewNobleman(id LordID, fullName string, age int, nat Nationality, fac Faction, title Title) *Nobleman {
	n := &Nobleman{
		ID:          id,
		FullName:    fullName,
		Age:         age,
		Nationality: nat,
		Faction:     fac,
		Title:       title,
		Siblings:    LordSet{},
		Children:    LordSet{},
		Vassals:     LordSet{},
		Fiefs:       LocationSet{},
	}
	n.Sex = SexOf(n.FirstName())
	return n
}

// FirstName returns the leading word of the full name.
func (n *Nobleman) FirstName() string {
	name, _, _ := strings.Cut(n.FullName, " ")
	return name
}

// Prefix returns the nobiliary particle between first and family name.
// A particle may span two words ("de la").
func (n *Nobleman) Prefix() string {
	parts := strings.Fields(n.FullName)
	if len(parts) <= 2 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], " ")
}

// FamilyName returns the trailing word of the full name.
func (n *Nobleman) FamilyName() string {
	parts := strings.Fields(n.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// highestRank is the best position this nobleman holds on any of the
// four ladders. Ladders tie-break in declaration order: title first.
func (n *Nobleman) highestRank() int {
	best := int(n.Title)
	for _, r := range []int{int(n.ChurchTitle), int(n.AbbeyRank), int(n.MilitaryRank)} {
		if r > best {
			best = r
		}
	}
	return best
}

// ProperTitle returns the spoken form of the highest rank the nobleman
// holds across all four ladders. A chevalier who is also a colonel is
// addressed as colonel.
func (n *Nobleman) ProperTitle() string {
	best := n.Title.String()
	highest := int(n.Title)
	if r := int(n.ChurchTitle); r > highest {
		highest, best = r, n.ChurchTitle.String()
	}
	if r := int(n.AbbeyRank); r > highest {
		highest, best = r, n.AbbeyRank.String()
	}
	if r := int(n.MilitaryRank); r > highest {
		highest, best = r, n.MilitaryRank.String()
	}
	return best
}

// TitleAndName is the listing form: "<proper title> <full name>".
func (n *Nobleman) TitleAndName() string {
	return n.ProperTitle() + " " + n.FullName
}

// BindSpouses marries a and b. Both parties must be unmarried and of
// opposite sex. Re-binding an existing couple is a no-op.
func BindSpouses(a, b *Nobleman) error {
	if a.ID == b.ID {
		return ErrSelfBond
	}
	if a.Sex == b.Sex {
		return ErrSameSexSpouses
	}
	if a.SpouseID != nil && *a.SpouseID == b.ID && b.SpouseID != nil && *b.SpouseID == a.ID {
		return nil
	}
	if a.SpouseID != nil || b.SpouseID != nil {
		return ErrAlreadyMarried
	}
	aID, bID := a.ID, b.ID
	a.SpouseID = &bID
	b.SpouseID = &aID
	return nil
}

// BindSiblings records a symmetric sibling relation. Idempotent.
func BindSiblings(a, b *Nobleman) error {
	if a.ID == b.ID {
		return ErrSelfBond
	}
	a.Siblings.Add(b.ID)
	b.Siblings.Add(a.ID)
	return nil
}

// AddChild records child as offspring of parent. The parent must be more
// than 12 years older.
func AddChild(parent, child *Nobleman) error {
	if parent.ID == child.ID {
		return ErrSelfBond
	}
	if parent.Age-child.Age <= 12 {
		return ErrChildTooOld
	}
	parent.Children.Add(child.ID)
	return nil
}

// OwnFief records loc as a fief of n and derives the location's faction
// from its new owner.
func OwnFief(n *Nobleman, loc *Location) {
	n.Fiefs.Add(loc.ID)
	id := n.ID
	loc.OwnerID = &id
	loc.Faction = n.Faction
}
