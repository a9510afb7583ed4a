package menu

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// ListFilter narrows List. Zero value lists every item.
type ListFilter struct {
	CategoryID string
	ActiveOnly bool
}

// Repository persists menu items with their addon types, options and offer.
type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	UpdateImage(ctx context.Context, id, imageURL string) error
	SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error)
	SetOptionActive(ctx context.Context, itemID, optionID string, active bool) error
}
