package customer

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// Repository persists and fetches customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// AddAddress appends addr. A default address clears IsDefault on the others.
	AddAddress(ctx context.Context, customerID string, addr domain.CustomerAddress) (*domain.Customer, error)
}
