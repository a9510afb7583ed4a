package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Offer is an optional discount attached to a menu item.
type Offer struct {
	IsEnabled     bool            `json:"isEnabled"`
	IsPercentage  bool            `json:"isPercentage"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// FinalUnitPrice applies the offer to base. The result is never negative.
func (o Offer) FinalUnitPrice(base decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	if o.IsPercentage {
		out = base.Mul(hundred.Sub(o.DiscountValue)).Div(hundred)
	} else {
		out = base.Sub(o.DiscountValue)
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
