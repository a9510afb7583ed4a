package configurator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel every *ValidationError unwraps to.
var ErrValidation = errors.New("invalid selection")

// ValidationResult is the outcome of Validate. All violations are collected in
// one pass.
type ValidationResult struct {
	MissingRequired []string
	InvalidQuantity bool
	NoteTooLong     bool
}

func (r ValidationResult) Valid() bool {
	return len(r.MissingRequired) == 0 && !r.InvalidQuantity && !r.NoteTooLong
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	e := &ValidationError{MissingRequired: r.MissingRequired}
	if r.InvalidQuantity {
		e.Problems = append(e.Problems, fmt.Sprintf("quantity must be at least %d", MinQuantity))
	}
	if r.NoteTooLong {
		e.Problems = append(e.Problems, fmt.Sprintf("note must be at most %d characters", MaxNoteLength))
	}
	return e
}

// ValidationError reports a selection that cannot be submitted. It is always
// recoverable by changing the selection.
type ValidationError struct {
	MissingRequired []string
	Problems        []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems)+1)
	if len(e.MissingRequired) > 0 {
		parts = append(parts, "missing required selection: "+strings.Join(e.MissingRequired, ", "))
	}
	parts = append(parts, e.Problems...)
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks sel against the required addon types of the catalog item.
// Missing titles are reported in menu order. Single-select exclusivity is not
// re-checked here: ToggleOption and Resolve are the only writers of Chosen and
// both enforce it.
func Validate(c *Catalog, sel Selection) ValidationResult {
	var res ValidationResult
	for _, t := range c.Types() {
		if !t.IsSelectionRequired {
			continue
		}
		if len(sel.Chosen[t.ID]) == 0 {
			res.MissingRequired = append(res.MissingRequired, t.Title)
		}
	}
	if sel.Quantity < MinQuantity {
		res.InvalidQuantity = true
	}
	if noteLength(sel.Note) > MaxNoteLength {
		res.NoteTooLong = true
	}
	return res
}
