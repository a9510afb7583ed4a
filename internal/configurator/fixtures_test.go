package configurator

import (
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// pizzaItem: base 50, required single-select Size, optional multi-select Extras.
func pizzaItem() domain.MenuItem {
	return domain.MenuItem{
		ID:          "pizza",
		Name:        "Margherita",
		BasePrice:   dec("50"),
		IsActive:    true,
		IsAvailable: true,
		AddonTypes: []domain.AddonType{
			{
				ID:                  "size",
				Title:               "Size",
				IsSelectionRequired: true,
				Options: []domain.AddonOption{
					{ID: "small", Name: "Small", PriceDelta: dec("0"), IsActive: true},
					{ID: "large", Name: "Large", PriceDelta: dec("10"), IsActive: true},
				},
			},
			{
				ID:                    "extras",
				Title:                 "Extras",
				AllowsMultipleOptions: true,
				Options: []domain.AddonOption{
					{ID: "basil", Name: "Basil", PriceDelta: dec("1.5"), IsActive: true},
					{ID: "chili", Name: "Chili", PriceDelta: dec("0.75"), IsActive: true},
					{ID: "truffle", Name: "Truffle", PriceDelta: dec("12"), IsActive: false},
				},
			},
		},
	}
}

// customItem: price on request, required multi-select Toppings.
func customItem() domain.MenuItem {
	return domain.MenuItem{
		ID:                    "custom",
		Name:                  "Build your own",
		BasePrice:             dec("99"),
		IsPriceBasedOnRequest: true,
		IsActive:              true,
		IsAvailable:           true,
		AddonTypes: []domain.AddonType{
			{
				ID:                    "toppings",
				Title:                 "Toppings",
				AllowsMultipleOptions: true,
				IsSelectionRequired:   true,
				Options: []domain.AddonOption{
					{ID: "cheese", Name: "Cheese", PriceDelta: dec("5"), IsActive: true},
					{ID: "olives", Name: "Olives", PriceDelta: dec("3"), IsActive: true},
				},
			},
			{
				ID:                  "crust",
				Title:               "Crust",
				IsSelectionRequired: true,
				Options: []domain.AddonOption{
					{ID: "thin", Name: "Thin", PriceDelta: dec("0"), IsActive: true},
				},
			},
		},
	}
}
