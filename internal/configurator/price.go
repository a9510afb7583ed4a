package configurator

import (
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
)

// UnitBase is the per-unit price before addons: zero for price-on-request
// items, the offer price when an offer is enabled, the base price otherwise.
func UnitBase(item domain.MenuItem) decimal.Decimal {
	if item.IsPriceBasedOnRequest {
		return decimal.Zero
	}
	if item.Offer != nil && item.Offer.IsEnabled {
		return item.Offer.FinalUnitPrice(item.BasePrice)
	}
	return item.BasePrice
}

// AddonUnitSum adds the price deltas of every chosen option. Ids that no longer
// resolve in the catalog contribute zero.
func AddonUnitSum(c *Catalog, sel Selection) decimal.Decimal {
	sum := decimal.Zero
	for typeID, set := range sel.Chosen {
		for optionID := range set {
			o, ok := c.Option(typeID, optionID)
			if !ok {
				continue
			}
			sum = sum.Add(o.PriceDelta)
		}
	}
	return sum
}

// UnitPrice is UnitBase plus AddonUnitSum, clamped at zero.
func UnitPrice(c *Catalog, sel Selection) decimal.Decimal {
	unit := UnitBase(c.Item()).Add(AddonUnitSum(c, sel))
	if unit.IsNegative() {
		return decimal.Zero
	}
	return unit
}

// ComputeTotal returns (unit base + addons) * quantity. It does not depend on
// validity and never returns a negative amount.
func ComputeTotal(c *Catalog, sel Selection) decimal.Decimal {
	if sel.Quantity <= 0 {
		return decimal.Zero
	}
	return UnitPrice(c, sel).Mul(decimal.NewFromInt(int64(sel.Quantity)))
}

// Quote is a price breakdown for live display.
type Quote struct {
	UnitBase     decimal.Decimal
	AddonUnitSum decimal.Decimal
	UnitPrice    decimal.Decimal
	Quantity     int
	Total        decimal.Decimal
	Validation   ValidationResult
}

// NewQuote computes the price breakdown and validation for sel.
func NewQuote(c *Catalog, sel Selection) Quote {
	return Quote{
		UnitBase:     UnitBase(c.Item()),
		AddonUnitSum: AddonUnitSum(c, sel),
		UnitPrice:    UnitPrice(c, sel),
		Quantity:     sel.Quantity,
		Total:        ComputeTotal(c, sel),
		Validation:   Validate(c, sel),
	}
}
