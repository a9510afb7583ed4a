package configurator

import (
	"fmt"
	"sort"
)

// CartSubmission is the payload sent to add a configured item to a cart.
// Options is flat: type membership is re-derived from the catalog.
type CartSubmission struct {
	MenuItemID string   `json:"menuItemId"`
	Quantity   int      `json:"quantity"`
	Options    []string `json:"options"`
	Note       string   `json:"note"`
}

// ToSubmission flattens sel into a CartSubmission. Options are listed in menu
// order; ids the catalog does not know are appended, sorted, so the receiver
// can reject them.
func ToSubmission(c *Catalog, sel Selection) CartSubmission {
	options := make([]string, 0, sel.Count())
	seen := map[string]struct{}{}
	for _, t := range c.Types() {
		set := sel.Chosen[t.ID]
		for _, o := range t.Options {
			if _, ok := set[o.ID]; !ok {
				continue
			}
			options = append(options, o.ID)
			seen[t.ID+"\x00"+o.ID] = struct{}{}
		}
	}
	var stale []string
	for typeID, set := range sel.Chosen {
		for id := range set {
			if _, ok := seen[typeID+"\x00"+id]; !ok {
				stale = append(stale, id)
			}
		}
	}
	sort.Strings(stale)
	options = append(options, stale...)

	return CartSubmission{
		MenuItemID: c.Item().ID,
		Quantity:   sel.Quantity,
		Options:    options,
		Note:       sel.Note,
	}
}

// Resolution is the result of re-deriving a Selection from a flat submission.
type Resolution struct {
	Selection Selection
	Unknown   []string
	Inactive  []string
	Conflicts []string
}

// Clean reports whether every submitted id was attributed to exactly one
// active option without breaking single-select exclusivity.
func (r Resolution) Clean() bool {
	return len(r.Unknown) == 0 && len(r.Inactive) == 0 && len(r.Conflicts) == 0
}

// Err converts the resolution problems into a *ValidationError, or nil.
func (r Resolution) Err() error {
	if r.Clean() {
		return nil
	}
	e := &ValidationError{}
	for _, id := range r.Unknown {
		e.Problems = append(e.Problems, fmt.Sprintf("unknown option %q", id))
	}
	for _, name := range r.Inactive {
		e.Problems = append(e.Problems, fmt.Sprintf("option %q is not available", name))
	}
	for _, title := range r.Conflicts {
		e.Problems = append(e.Problems, fmt.Sprintf("only one option may be chosen for %q", title))
	}
	return e
}

// Resolve rebuilds a Selection from sub using the catalog. Duplicate ids are
// collapsed. For a single-select type the first submitted id wins and the type
// is reported as a conflict.
func Resolve(c *Catalog, sub CartSubmission) Resolution {
	sel := NewSelection()
	sel.Quantity = sub.Quantity
	sel.Note = sub.Note

	var res Resolution
	conflicted := map[string]struct{}{}
	for _, optionID := range sub.Options {
		typeID, ok := c.TypeOfOption(optionID)
		if !ok {
			res.Unknown = append(res.Unknown, optionID)
			continue
		}
		t, _ := c.Type(typeID)
		o, _ := c.Option(typeID, optionID)
		if !o.IsActive {
			res.Inactive = append(res.Inactive, o.Name)
			continue
		}
		if sel.IsSelected(typeID, optionID) {
			continue
		}
		if !t.AllowsMultipleOptions && len(sel.Chosen[typeID]) > 0 {
			if _, seen := conflicted[typeID]; !seen {
				conflicted[typeID] = struct{}{}
				res.Conflicts = append(res.Conflicts, t.Title)
			}
			continue
		}
		sel = ToggleOption(sel, typeID, optionID, t.AllowsMultipleOptions)
	}
	res.Selection = sel
	return res
}
