package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is an orderable dish together with its addon configuration.
type MenuItem struct {
	ID                    string          `json:"id"`
	CategoryID            string          `json:"categoryId"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	ImageURL              string          `json:"imageUrl,omitempty"`
	BasePrice             decimal.Decimal `json:"basePrice"`
	IsPriceBasedOnRequest bool            `json:"isPriceBasedOnRequest"`
	IsActive              bool            `json:"isActive"`
	IsAvailable           bool            `json:"isAvailable"`
	AddonTypes            []AddonType     `json:"addonTypes"`
	Offer                 *Offer          `json:"offer,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// Orderable reports whether the item can be put into a cart. Category state
// is owned elsewhere and passed in by the caller.
func (m MenuItem) Orderable(categoryActive bool) bool {
	return m.IsActive && m.IsAvailable && categoryActive
}

// AddonType returns the addon type with the given id.
func (m MenuItem) AddonType(id string) (AddonType, bool) {
	for _, t := range m.AddonTypes {
		if t.ID == id {
			return t, true
		}
	}
	return AddonType{}, false
}
