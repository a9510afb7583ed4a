package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
)

type CreateCartInput struct {
	CustomerID string
	Currency   string
}

// NewLine is a priced, validated cart line ready to be stored. Lines with the
// same item, options and note are merged by summing quantities.
type NewLine struct {
	MenuItemID string
	Quantity   int
	UnitPrice  decimal.Decimal
	Options    []string
	Note       string
	Snapshot   map[string]interface{}
}

type Repository interface {
	Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID string, line NewLine) (*domain.CartLine, error)
	ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) error
	SetState(ctx context.Context, cartID, state string) error
}
