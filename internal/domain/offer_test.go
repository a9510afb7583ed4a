package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOfferFinalUnitPrice(t *testing.T) {
	cases := []struct {
		name  string
		offer Offer
		base  string
		want  string
	}{
		{name: "percentage", offer: Offer{IsEnabled: true, IsPercentage: true, DiscountValue: decimal.NewFromInt(20)}, base: "100", want: "80"},
		{name: "flat", offer: Offer{IsEnabled: true, DiscountValue: decimal.RequireFromString("2.50")}, base: "10", want: "7.5"},
		{name: "flat clamps at zero", offer: Offer{IsEnabled: true, DiscountValue: decimal.NewFromInt(15)}, base: "10", want: "0"},
		{name: "percentage over 100 clamps", offer: Offer{IsEnabled: true, IsPercentage: true, DiscountValue: decimal.NewFromInt(120)}, base: "10", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.offer.FinalUnitPrice(decimal.RequireFromString(tc.base))
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMenuItemOrderable(t *testing.T) {
	item := MenuItem{IsActive: true, IsAvailable: true}
	if !item.Orderable(true) {
		t.Fatalf("expected orderable")
	}
	if item.Orderable(false) {
		t.Fatalf("inactive category must block ordering")
	}
	item.IsAvailable = false
	if item.Orderable(true) {
		t.Fatalf("unavailable item must block ordering")
	}
}
