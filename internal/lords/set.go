package lords

import (
	"encoding/json"
	"sort"
)

// LordSet is an unordered set of lord ids. The zero value is not usable;
// construct with LordSet{} or NewLordSet.
type LordSet map[LordID]struct{}

// NewLordSet builds a set from the given ids.
func NewLordSet(ids ...LordID) LordSet {
	s := make(LordSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s LordSet) Add(id LordID)      { s[id] = struct{}{} }
func (s LordSet) Discard(id LordID)  { delete(s, id) }
func (s LordSet) Has(id LordID) bool { _, ok := s[id]; return ok }
func (s LordSet) Len() int           { return len(s) }

// IDs returns the members in ascending order.
func (s LordSet) IDs() []LordID {
	ids := make([]LordID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON encodes the set as a sorted id array, keeping the storage
// form stable across saves.
func (s LordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *LordSet) UnmarshalJSON(data []byte) error {
	var ids []LordID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewLordSet(ids...)
	return nil
}

// LocationSet is an unordered set of location ids.
type LocationSet map[LocationID]struct{}

// NewLocationSet builds a set from the given ids.
func NewLocationSet(ids ...LocationID) LocationSet {
	s := make(LocationSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s LocationSet) Add(id LocationID)      { s[id] = struct{}{} }
func (s LocationSet) Discard(id LocationID)  { delete(s, id) }
func (s LocationSet) Has(id LocationID) bool { _, ok := s[id]; return ok }
func (s LocationSet) Len() int               { return len(s) }

// IDs returns the members in ascending order.
func (s LocationSet) IDs() []LocationID {
	ids := make([]LocationID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s LocationSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *LocationSet) UnmarshalJSON(data []byte) error {
	var ids []LocationID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewLocationSet(ids...)
	return nil
}
