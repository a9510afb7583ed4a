package category

import (
	"context"
	"regexp"
	"strings"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/repository/category"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// List returns categories. Customers only see active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// UpsertInput is the admin payload for creating or renaming a category.
type UpsertInput struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive"`
}

func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.Category, error) {
	key := strings.ToLower(strings.TrimSpace(in.Key))
	if !keyPattern.MatchString(key) {
		return nil, domain.Invalidf("key must be lowercase letters, digits and dashes")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalidf("name required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.repo.Upsert(ctx, domain.Category{Key: key, Name: name, IsActive: active})
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*domain.Category, error) {
	return s.repo.SetActive(ctx, id, active)
}
