// Package configurator holds the product configuration engine: addon
// selection state, required-option validation and price computation for a
// single menu item.
package configurator

import "restaurant-ordering/internal/domain"

// Catalog indexes one menu item's addon types and options by id. Build it once
// per fetched item and pass it to Validate, ComputeTotal and Resolve.
type Catalog struct {
	item    domain.MenuItem
	types   map[string]domain.AddonType
	options map[string]map[string]domain.AddonOption
	owners  map[string]string
	shared  map[string]struct{}
}

// NewCatalog builds the lookup tables for item.
func NewCatalog(item domain.MenuItem) *Catalog {
	c := &Catalog{
		item:    item,
		types:   make(map[string]domain.AddonType, len(item.AddonTypes)),
		options: make(map[string]map[string]domain.AddonOption, len(item.AddonTypes)),
		owners:  map[string]string{},
		shared:  map[string]struct{}{},
	}
	for _, t := range item.AddonTypes {
		c.types[t.ID] = t
		byID := make(map[string]domain.AddonOption, len(t.Options))
		for _, o := range t.Options {
			byID[o.ID] = o
			if owner, ok := c.owners[o.ID]; ok && owner != t.ID {
				c.shared[o.ID] = struct{}{}
				continue
			}
			c.owners[o.ID] = t.ID
		}
		c.options[t.ID] = byID
	}
	return c
}

// Item returns the menu item the catalog was built from.
func (c *Catalog) Item() domain.MenuItem {
	return c.item
}

// Types returns the addon types in menu order.
func (c *Catalog) Types() []domain.AddonType {
	return c.item.AddonTypes
}

func (c *Catalog) Type(id string) (domain.AddonType, bool) {
	t, ok := c.types[id]
	return t, ok
}

func (c *Catalog) Option(typeID, optionID string) (domain.AddonOption, bool) {
	o, ok := c.options[typeID][optionID]
	return o, ok
}

// TypeOfOption returns the addon type that owns optionID. Ids that appear
// under more than one type cannot be attributed and report false.
func (c *Catalog) TypeOfOption(optionID string) (string, bool) {
	if _, ok := c.shared[optionID]; ok {
		return "", false
	}
	id, ok := c.owners[optionID]
	return id, ok
}
