package domain

import "github.com/shopspring/decimal"

// AddonOption is a single selectable choice inside an AddonType.
type AddonOption struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
	IsActive   bool            `json:"isActive"`
}

// AddonType groups options and carries the selection constraints for them.
type AddonType struct {
	ID                    string        `json:"id"`
	Title                 string        `json:"title"`
	AllowsMultipleOptions bool          `json:"allowsMultipleOptions"`
	IsSelectionRequired   bool          `json:"isSelectionRequired"`
	Options               []AddonOption `json:"options"`
}

// Option returns the option with the given id.
func (t AddonType) Option(id string) (AddonOption, bool) {
	for _, o := range t.Options {
		if o.ID == id {
			return o, true
		}
	}
	return AddonOption{}, false
}
