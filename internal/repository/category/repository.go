package category

import (
	"context"

	"restaurant-ordering/internal/domain"
)

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByKey(ctx context.Context, key string) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Category, error)
}
