package cli

import (
	"fmt"
	"strings"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
)

type selectionFlags struct {
	Options  []string
	Quantity int
	Note     string
}

// buildSession replays the requested options onto a fresh session, the same
// way a user would click them.
func buildSession(item domain.MenuItem, f selectionFlags) (*configurator.Session, error) {
	c := configurator.NewCatalog(item)
	s := configurator.NewSession(c)
	for _, ref := range f.Options {
		typeID, optionID, err := resolveOption(c, ref)
		if err != nil {
			return nil, err
		}
		if s.Selection().IsSelected(typeID, optionID) {
			continue
		}
		if err := s.Toggle(typeID, optionID); err != nil {
			return nil, fmt.Errorf("option %q: %w", ref, err)
		}
	}
	if f.Quantity != 0 {
		if err := s.SetQuantity(f.Quantity); err != nil {
			return nil, err
		}
	}
	if f.Note != "" {
		if err := s.SetNote(f.Note); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// resolveOption accepts "type=option" or a bare "option". Types and options
// match by id or case-insensitive name. A bare option must be unambiguous.
func resolveOption(c *configurator.Catalog, ref string) (string, string, error) {
	typeRef, optionRef, scoped := strings.Cut(ref, "=")
	if !scoped {
		optionRef, typeRef = typeRef, ""
	}
	typeRef = strings.TrimSpace(typeRef)
	optionRef = strings.TrimSpace(optionRef)
	if optionRef == "" {
		return "", "", fmt.Errorf("option %q: empty option", ref)
	}

	var matches [][2]string
	for _, t := range c.Types() {
		if scoped && !matchRef(t.ID, t.Title, typeRef) {
			continue
		}
		for _, o := range t.Options {
			if matchRef(o.ID, o.Name, optionRef) {
				matches = append(matches, [2]string{t.ID, o.ID})
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("option %q: %w", ref, configurator.ErrUnknownOption)
	case 1:
		return matches[0][0], matches[0][1], nil
	default:
		return "", "", fmt.Errorf("option %q is ambiguous, use type=option", ref)
	}
}

func matchRef(id, name, ref string) bool {
	return id == ref || strings.EqualFold(name, ref)
}
