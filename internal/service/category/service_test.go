package category

import (
	"context"
	"testing"

	"restaurant-ordering/internal/domain"
)

type stubRepo struct {
	lastUpsert domain.Category
	lastActive bool
}

func (s *stubRepo) List(context.Context, bool) ([]domain.Category, error) { return nil, nil }
func (s *stubRepo) GetByID(context.Context, string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}
func (s *stubRepo) GetByKey(context.Context, string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.lastUpsert = c
	c.ID = "cat-1"
	return &c, nil
}

func (s *stubRepo) SetActive(_ context.Context, id string, active bool) (*domain.Category, error) {
	s.lastActive = active
	return &domain.Category{ID: id, IsActive: active}, nil
}

func TestUpsert_NormalizesKeyAndDefaultsActive(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	cat, err := svc.Upsert(context.Background(), UpsertInput{Key: " Pizza ", Name: "Pizza"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if cat.Key != "pizza" || !repo.lastUpsert.IsActive {
		t.Fatalf("unexpected category %+v", repo.lastUpsert)
	}
}

func TestUpsert_RejectsBadInput(t *testing.T) {
	svc := New(&stubRepo{})
	cases := []UpsertInput{
		{Key: "", Name: "x"},
		{Key: "with space", Name: "x"},
		{Key: "ok", Name: "  "},
	}
	for _, in := range cases {
		if _, err := svc.Upsert(context.Background(), in); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestUpsert_HonoursExplicitInactive(t *testing.T) {
	repo := &stubRepo{}
	inactive := false
	if _, err := New(repo).Upsert(context.Background(), UpsertInput{Key: "late-night", Name: "Late night", IsActive: &inactive}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if repo.lastUpsert.IsActive {
		t.Fatalf("expected inactive category")
	}
}
