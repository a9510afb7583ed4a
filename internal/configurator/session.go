package configurator

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle position of a configuration session.
type State int

const (
	StateEmpty State = iota
	StatePartiallyConfigured
	StateValid
	StateSubmitting
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartiallyConfigured:
		return "partially_configured"
	case StateValid:
		return "valid"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrSubmissionInFlight is returned while a previous Submit has not returned.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrSessionClosed is returned once the selection was committed.
	ErrSessionClosed = errors.New("configuration session is closed")
	// ErrUnknownOption is returned when toggling an id the catalog does not contain.
	ErrUnknownOption = errors.New("unknown addon option")
	// ErrOptionUnavailable is returned when toggling an inactive option.
	ErrOptionUnavailable = errors.New("addon option is not available")
	// ErrInvalidQuantity is returned for quantities below MinQuantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// SubmissionError wraps a failure reported by the Submitter. The session keeps
// its selection so the caller can retry.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit selection: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

// Submitter delivers a finished selection, typically as a cart-add request.
type Submitter interface {
	Submit(ctx context.Context, sub CartSubmission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, sub CartSubmission) error

func (f SubmitterFunc) Submit(ctx context.Context, sub CartSubmission) error {
	return f(ctx, sub)
}

// Session owns the Selection for one item from opening until commit or
// abandonment. At most one Submit runs at a time.
type Session struct {
	catalog *Catalog

	mu        sync.Mutex
	sel       Selection
	inFlight  bool
	committed bool
	lastErr   error
}

// NewSession starts an empty session for the catalog item.
func NewSession(c *Catalog) *Session {
	return &Session{catalog: c, sel: NewSelection()}
}

func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clone()
}

// LastError is the most recent submission failure, cleared by any mutation.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.committed:
		return StateCommitted
	case s.inFlight:
		return StateSubmitting
	case s.lastErr != nil:
		return StateFailed
	}
	return s.configState()
}

func (s *Session) configState() State {
	res := Validate(s.catalog, s.sel)
	if res.Valid() {
		return StateValid
	}
	satisfied := 0
	for _, t := range s.catalog.Types() {
		if t.IsSelectionRequired && len(s.sel.Chosen[t.ID]) > 0 {
			satisfied++
		}
	}
	if satisfied == 0 && len(res.MissingRequired) > 0 {
		return StateEmpty
	}
	return StatePartiallyConfigured
}

// Toggle applies a click on an option, using the owning type's
// multi-select flag. Inactive options cannot be selected, only cleared.
func (s *Session) Toggle(typeID, optionID string) error {
	t, ok := s.catalog.Type(typeID)
	if !ok {
		return fmt.Errorf("%w: type %q", ErrUnknownOption, typeID)
	}
	o, ok := s.catalog.Option(typeID, optionID)
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrUnknownOption, optionID, t.Title)
	}
	return s.mutate(func(sel Selection) (Selection, error) {
		if !o.IsActive && !sel.IsSelected(typeID, optionID) {
			return sel, fmt.Errorf("%w: %q", ErrOptionUnavailable, o.Name)
		}
		return ToggleOption(sel, typeID, optionID, t.AllowsMultipleOptions), nil
	})
}

func (s *Session) SetQuantity(q int) error {
	if q < MinQuantity {
		return ErrInvalidQuantity
	}
	return s.mutate(func(sel Selection) (Selection, error) { return sel.WithQuantity(q), nil })
}

func (s *Session) SetNote(note string) error {
	return s.mutate(func(sel Selection) (Selection, error) { return sel.WithNote(note), nil })
}

func (s *Session) mutate(fn func(Selection) (Selection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return ErrSessionClosed
	}
	if s.inFlight {
		return ErrSubmissionInFlight
	}
	next, err := fn(s.sel)
	if err != nil {
		return err
	}
	s.sel = next
	s.lastErr = nil
	return nil
}

// Submit validates locally and, when valid, hands the flattened selection to
// sub. Validation failures return a *ValidationError without calling sub.
// Submitter failures return a *SubmissionError and leave the selection intact.
func (s *Session) Submit(ctx context.Context, sub Submitter) error {
	s.mu.Lock()
	if s.committed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := Validate(s.catalog, s.sel).Err(); err != nil {
		s.mu.Unlock()
		return err
	}
	payload := ToSubmission(s.catalog, s.sel)
	s.inFlight = true
	s.lastErr = nil
	s.mu.Unlock()

	err := sub.Submit(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.lastErr = &SubmissionError{Cause: err}
		return s.lastErr
	}
	s.committed = true
	return nil
}
