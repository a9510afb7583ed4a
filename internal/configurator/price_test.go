package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-ordering/internal/domain"
)

func TestComputeTotalScenarioLargeTimesTwo(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := ToggleOption(NewSelection(), "size", "large", false).WithQuantity(2)

	assert.True(t, ComputeTotal(c, sel).Equal(dec("120")))
	assert.True(t, Validate(c, sel).Valid())
}

func TestComputeTotalIndependentOfValidity(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := NewSelection().WithQuantity(2)

	assert.True(t, ComputeTotal(c, sel).Equal(dec("100")))
	assert.Equal(t, []string{"Size"}, Validate(c, sel).MissingRequired)
}

func TestComputeTotalPriceOnRequestIgnoresBase(t *testing.T) {
	c := NewCatalog(customItem())
	sel := NewSelection()
	sel = ToggleOption(sel, "toppings", "cheese", true)
	sel = ToggleOption(sel, "toppings", "olives", true)
	sel = ToggleOption(sel, "crust", "thin", false)

	assert.True(t, ComputeTotal(c, sel).Equal(dec("8")))
	assert.True(t, Validate(c, sel).Valid())
}

func TestComputeTotalPercentageOffer(t *testing.T) {
	item := domain.MenuItem{
		ID:        "lemonade",
		BasePrice: dec("100"),
		Offer:     &domain.Offer{IsEnabled: true, IsPercentage: true, DiscountValue: dec("20")},
	}
	c := NewCatalog(item)

	assert.True(t, UnitBase(item).Equal(dec("80")))
	assert.True(t, ComputeTotal(c, NewSelection().WithQuantity(3)).Equal(dec("240")))
}

func TestComputeTotalDisabledOfferIgnored(t *testing.T) {
	item := domain.MenuItem{
		BasePrice: dec("10"),
		Offer:     &domain.Offer{IsEnabled: false, DiscountValue: dec("4")},
	}
	assert.True(t, ComputeTotal(NewCatalog(item), NewSelection()).Equal(dec("10")))
}

func TestComputeTotalFlatOfferClampsAtZero(t *testing.T) {
	item := domain.MenuItem{
		BasePrice: dec("5"),
		Offer:     &domain.Offer{IsEnabled: true, DiscountValue: dec("8")},
	}
	total := ComputeTotal(NewCatalog(item), NewSelection().WithQuantity(4))
	assert.True(t, total.IsZero())
}

func TestComputeTotalStaleOptionContributesZero(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := ToggleOption(NewSelection(), "size", "large", false)
	sel = ToggleOption(sel, "extras", "gone", true)
	sel = ToggleOption(sel, "vanished-type", "x", true)

	assert.True(t, ComputeTotal(c, sel).Equal(dec("60")))
}

func TestComputeTotalMonotonicInQuantity(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := ToggleOption(NewSelection(), "size", "large", false)

	prev := ComputeTotal(c, sel.WithQuantity(1))
	for q := 2; q <= 10; q++ {
		cur := ComputeTotal(c, sel.WithQuantity(q))
		assert.True(t, cur.GreaterThanOrEqual(prev), "q=%d", q)
		prev = cur
	}
}

func TestComputeTotalMonotonicInMultiSelectAdds(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := ToggleOption(NewSelection(), "size", "small", false)

	prev := ComputeTotal(c, sel)
	for _, id := range []string{"basil", "chili", "truffle"} {
		sel = ToggleOption(sel, "extras", id, true)
		cur := ComputeTotal(c, sel)
		assert.True(t, cur.GreaterThanOrEqual(prev), "after %s", id)
		prev = cur
	}
}

func TestComputeTotalNonPositiveQuantity(t *testing.T) {
	c := NewCatalog(pizzaItem())
	assert.True(t, ComputeTotal(c, NewSelection().WithQuantity(0)).IsZero())
	assert.True(t, ComputeTotal(c, NewSelection().WithQuantity(-2)).IsZero())
}

func TestNewQuoteBreakdown(t *testing.T) {
	c := NewCatalog(pizzaItem())
	sel := ToggleOption(NewSelection(), "size", "large", false)
	sel = ToggleOption(sel, "extras", "basil", true).WithQuantity(2)

	q := NewQuote(c, sel)
	assert.True(t, q.UnitBase.Equal(dec("50")))
	assert.True(t, q.AddonUnitSum.Equal(dec("11.5")))
	assert.True(t, q.UnitPrice.Equal(dec("61.5")))
	assert.True(t, q.Total.Equal(dec("123")))
	assert.Equal(t, 2, q.Quantity)
	assert.True(t, q.Validation.Valid())
}
