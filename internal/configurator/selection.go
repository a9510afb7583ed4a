package configurator

import (
	"sort"
	"unicode/utf8"
)

const (
	// MinQuantity is the smallest orderable quantity.
	MinQuantity = 1
	// MaxNoteLength is measured in characters, not bytes.
	MaxNoteLength = 500
)

// Selection is the in-progress configuration of one order line. Values are
// treated as immutable: every mutation returns a new Selection.
type Selection struct {
	Quantity int
	Chosen   map[string]map[string]struct{}
	Note     string
}

// NewSelection returns the initial state: quantity 1 and nothing chosen.
func NewSelection() Selection {
	return Selection{Quantity: MinQuantity, Chosen: map[string]map[string]struct{}{}}
}

// Clone returns a deep copy of s.
func (s Selection) Clone() Selection {
	out := Selection{Quantity: s.Quantity, Note: s.Note, Chosen: make(map[string]map[string]struct{}, len(s.Chosen))}
	for typeID, set := range s.Chosen {
		cp := make(map[string]struct{}, len(set))
		for id := range set {
			cp[id] = struct{}{}
		}
		out.Chosen[typeID] = cp
	}
	return out
}

// ToggleOption applies a click on optionID within typeID.
//
// For single-select types the set is replaced by {optionID}, so clicking the
// current choice again keeps it selected. For multi-select types membership is
// flipped. A type whose set ends up empty is removed from the map.
func ToggleOption(s Selection, typeID, optionID string, allowsMultiple bool) Selection {
	out := s.Clone()
	if !allowsMultiple {
		out.Chosen[typeID] = map[string]struct{}{optionID: {}}
		return out
	}
	set, ok := out.Chosen[typeID]
	if !ok {
		set = map[string]struct{}{}
		out.Chosen[typeID] = set
	}
	if _, selected := set[optionID]; selected {
		delete(set, optionID)
	} else {
		set[optionID] = struct{}{}
	}
	if len(set) == 0 {
		delete(out.Chosen, typeID)
	}
	return out
}

// WithQuantity returns a copy of s with the quantity replaced. Range checks
// happen in Validate.
func (s Selection) WithQuantity(q int) Selection {
	out := s.Clone()
	out.Quantity = q
	return out
}

// WithNote returns a copy of s with the note replaced.
func (s Selection) WithNote(note string) Selection {
	out := s.Clone()
	out.Note = note
	return out
}

func (s Selection) IsSelected(typeID, optionID string) bool {
	_, ok := s.Chosen[typeID][optionID]
	return ok
}

// Options returns the chosen option ids for typeID, sorted.
func (s Selection) Options(typeID string) []string {
	set := s.Chosen[typeID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count is the total number of chosen options across all types.
func (s Selection) Count() int {
	n := 0
	for _, set := range s.Chosen {
		n += len(set)
	}
	return n
}

func noteLength(note string) int {
	return utf8.RuneCountInString(note)
}
