package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CartStateActive  = "active"
	CartStateOrdered = "ordered"
	CartStateDeleted = "deleted"
)

type Cart struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
	State      string          `json:"state"`
	CreatedAt  time.Time       `json:"createdAt"`
	Lines      []CartLine      `json:"lineItems,omitempty"`
}

type CartLine struct {
	ID         string                 `json:"id"`
	CartID     string                 `json:"cartId"`
	MenuItemID string                 `json:"menuItemId"`
	Quantity   int                    `json:"quantity"`
	UnitPrice  decimal.Decimal        `json:"unitPrice"`
	Total      decimal.Decimal        `json:"total"`
	Options    []string               `json:"options"`
	Note       string                 `json:"note,omitempty"`
	Snapshot   map[string]interface{} `json:"snapshot,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
