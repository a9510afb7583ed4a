package contract

import (
	"time"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
)

// CartSubmission is the cart-add request body.
type CartSubmission = configurator.CartSubmission

type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Currency   string     `json:"currency"`
	State      string     `json:"cartState"`
	Total      Money      `json:"totalPrice"`
	LineItems  []CartLine `json:"lineItems"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CartLine struct {
	ID         string                 `json:"id"`
	MenuItemID string                 `json:"menuItemId"`
	Name       string                 `json:"name,omitempty"`
	Quantity   int                    `json:"quantity"`
	UnitPrice  Money                  `json:"unitPrice"`
	Total      Money                  `json:"totalPrice"`
	Options    []string               `json:"options"`
	Note       string                 `json:"note,omitempty"`
	Snapshot   map[string]interface{} `json:"snapshot,omitempty"`
}

func FromCart(c domain.Cart) Cart {
	out := Cart{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Currency:   c.Currency,
		State:      c.State,
		Total:      NewMoney(c.Total),
		LineItems:  make([]CartLine, 0, len(c.Lines)),
		CreatedAt:  c.CreatedAt,
	}
	for _, l := range c.Lines {
		name, _ := l.Snapshot["menuItemName"].(string)
		options := l.Options
		if options == nil {
			options = []string{}
		}
		out.LineItems = append(out.LineItems, CartLine{
			ID:         l.ID,
			MenuItemID: l.MenuItemID,
			Name:       name,
			Quantity:   l.Quantity,
			UnitPrice:  NewMoney(l.UnitPrice),
			Total:      NewMoney(l.Total),
			Options:    options,
			Note:       l.Note,
			Snapshot:   l.Snapshot,
		})
	}
	return out
}

// Quote is the price breakdown returned for a configuration.
type Quote struct {
	MenuItemID      string   `json:"menuItemId"`
	UnitBase        Money    `json:"unitBase"`
	AddonUnitSum    Money    `json:"addonUnitSum"`
	UnitPrice       Money    `json:"unitPrice"`
	Quantity        int      `json:"quantity"`
	Total           Money    `json:"total"`
	Valid           bool     `json:"valid"`
	Orderable       bool     `json:"orderable"`
	MissingRequired []string `json:"missingRequired"`
	Problems        []string `json:"problems"`
}

func FromQuote(itemID string, q configurator.Quote, res configurator.Resolution, orderable bool) Quote {
	out := Quote{
		MenuItemID:      itemID,
		UnitBase:        NewMoney(q.UnitBase),
		AddonUnitSum:    NewMoney(q.AddonUnitSum),
		UnitPrice:       NewMoney(q.UnitPrice),
		Quantity:        q.Quantity,
		Total:           NewMoney(q.Total),
		Orderable:       orderable,
		MissingRequired: []string{},
		Problems:        []string{},
	}
	if q.Validation.MissingRequired != nil {
		out.MissingRequired = q.Validation.MissingRequired
	}
	if err, ok := res.Err().(*configurator.ValidationError); ok {
		out.Problems = append(out.Problems, err.Problems...)
	}
	if verr, ok := q.Validation.Err().(*configurator.ValidationError); ok {
		out.Problems = append(out.Problems, verr.Problems...)
	}
	out.Valid = len(out.MissingRequired) == 0 && len(out.Problems) == 0
	return out
}

// Error is the body of every non-2xx response.
type Error struct {
	Error           string   `json:"error"`
	MissingRequired []string `json:"missingRequired,omitempty"`
	Problems        []string `json:"problems,omitempty"`
}
