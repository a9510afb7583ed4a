package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/db/dbtest"
	"restaurant-ordering/internal/domain"
)

func sampleItem(categoryID string) domain.MenuItem {
	return domain.MenuItem{
		CategoryID:  categoryID,
		Name:        "Margherita",
		BasePrice:   decimal.RequireFromString("50"),
		IsActive:    true,
		IsAvailable: true,
		AddonTypes: []domain.AddonType{
			{
				Title:               "Size",
				IsSelectionRequired: true,
				Options: []domain.AddonOption{
					{Name: "Small", PriceDelta: decimal.Zero, IsActive: true},
					{Name: "Large", PriceDelta: decimal.RequireFromString("10"), IsActive: true},
				},
			},
			{
				Title:                 "Extras",
				AllowsMultipleOptions: true,
				Options: []domain.AddonOption{
					{Name: "Basil", PriceDelta: decimal.RequireFromString("1.50"), IsActive: true},
				},
			},
		},
		Offer: &domain.Offer{IsEnabled: true, IsPercentage: true, DiscountValue: decimal.RequireFromString("20")},
	}
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	categoryID := dbtest.Category(t, pool, "pizza")

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleItem(categoryID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.AddonTypes[0].ID == "" || created.AddonTypes[0].Options[1].ID == "" {
		t.Fatalf("expected generated ids, got %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.AddonTypes) != 2 || got.AddonTypes[0].Title != "Size" || got.AddonTypes[1].Title != "Extras" {
		t.Fatalf("addon types out of menu order: %+v", got.AddonTypes)
	}
	if names := []string{got.AddonTypes[0].Options[0].Name, got.AddonTypes[0].Options[1].Name}; names[0] != "Small" || names[1] != "Large" {
		t.Fatalf("options out of menu order: %v", names)
	}
	if !got.AddonTypes[1].Options[0].PriceDelta.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected price delta %s", got.AddonTypes[1].Options[0].PriceDelta)
	}
	if got.Offer == nil || !got.Offer.IsPercentage || !got.Offer.DiscountValue.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected offer %+v", got.Offer)
	}
}

func TestPostgres_ListByCategory(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	pizza := dbtest.Category(t, pool, "pizza")
	drinks := dbtest.Category(t, pool, "drinks")

	repo := NewPostgres(pool, nil)
	if _, err := repo.Create(ctx, sampleItem(pizza)); err != nil {
		t.Fatalf("create pizza: %v", err)
	}
	water := domain.MenuItem{CategoryID: drinks, Name: "Water", BasePrice: decimal.RequireFromString("2"), IsActive: true, IsAvailable: true}
	if _, err := repo.Create(ctx, water); err != nil {
		t.Fatalf("create water: %v", err)
	}

	list, err := repo.List(ctx, ListFilter{CategoryID: drinks})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Water" || len(list[0].AddonTypes) != 0 || list[0].Offer != nil {
		t.Fatalf("unexpected list %+v", list)
	}

	all, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}
}

func TestPostgres_SetAvailabilityAndOption(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	categoryID := dbtest.Category(t, pool, "pizza")

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleItem(categoryID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.SetAvailability(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}
	if updated.IsAvailable {
		t.Fatalf("expected unavailable item")
	}

	basil := created.AddonTypes[1].Options[0].ID
	if err := repo.SetOptionActive(ctx, created.ID, basil, false); err != nil {
		t.Fatalf("set option active: %v", err)
	}
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AddonTypes[1].Options[0].IsActive {
		t.Fatalf("expected inactive option")
	}

	if err := repo.UpdateImage(ctx, created.ID, "https://cdn.example.com/menu/x.jpg"); err != nil {
		t.Fatalf("update image: %v", err)
	}
}

func TestPostgres_CreateUnknownCategory(t *testing.T) {
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool, nil)

	_, err := repo.Create(context.Background(), sampleItem("6f1c2d7e-0000-4000-8000-000000000000"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
