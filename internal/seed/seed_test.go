package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
	customersvc "restaurant-ordering/internal/service/customer"
)

type memoryStore struct {
	categories map[string]domain.Category
	items      map[string]domain.MenuItem
	admins     map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: map[string]domain.Category{},
		items:      map[string]domain.MenuItem{},
		admins:     map[string]bool{},
	}
}

func (m *memoryStore) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	if existing, ok := m.categories[c.Key]; ok {
		return &existing, nil
	}
	c.ID = uuid.NewString()
	m.categories[c.Key] = c
	return &c, nil
}

func (m *memoryStore) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (m *memoryStore) Create(_ context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	m.items[item.ID] = item
	return &item, nil
}

func (m *memoryStore) CreateAdmin(_ context.Context, in customersvc.SignupInput) (*domain.Customer, error) {
	if m.admins[in.Email] {
		return nil, domain.ErrAlreadyExists
	}
	m.admins[in.Email] = true
	return &domain.Customer{Email: in.Email, Role: domain.RoleAdmin}, nil
}

func TestApply_Idempotent(t *testing.T) {
	store := newMemoryStore()
	s := New(store, store, store, nil)
	ctx := context.Background()
	opts := Options{AdminEmail: "admin@example.com", AdminPassword: "change-me-please"}

	first, err := s.Apply(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Created)
	assert.Equal(t, 0, first.Skipped)
	assert.True(t, first.Admin)

	second, err := s.Apply(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 4, second.Skipped)
	assert.False(t, second.Admin)
	assert.Len(t, store.items, 4)
}

func TestApply_AssignsCategory(t *testing.T) {
	store := newMemoryStore()
	_, err := New(store, store, nil, nil).Apply(context.Background(), Options{})
	require.NoError(t, err)

	for _, item := range store.items {
		assert.NotEmpty(t, item.CategoryID, item.Name)
	}
}

func TestDemoMenu_Deterministic(t *testing.T) {
	a, b := DemoMenu(), DemoMenu()
	require.Equal(t, len(a), len(b))
	for i := range a {
		for j := range a[i].Items {
			assert.Equal(t, a[i].Items[j].ID, b[i].Items[j].ID)
			assert.Equal(t, a[i].Items[j].Description, b[i].Items[j].Description)
			assert.NoError(t, uuid.Validate(a[i].Items[j].ID))
		}
	}
}

func TestDemoMenu_PricesMatchExamples(t *testing.T) {
	items := map[string]domain.MenuItem{}
	for _, cs := range DemoMenu() {
		for _, item := range cs.Items {
			items[item.Name] = item
			if item.IsPriceBasedOnRequest {
				assert.True(t, hasRequiredType(item), "%s needs a required addon type", item.Name)
			}
		}
	}

	pizza := configurator.NewCatalog(items["Margherita"])
	sel := configurator.NewSelection().WithQuantity(2)
	sel = configurator.ToggleOption(sel, pizza.Types()[0].ID, pizza.Types()[0].Options[1].ID, false)
	assert.Equal(t, "120", configurator.ComputeTotal(pizza, sel).String())

	bowl := configurator.NewCatalog(items["Salad bowl"])
	toppings := bowl.Types()[0]
	sel = configurator.NewSelection()
	sel = configurator.ToggleOption(sel, toppings.ID, toppings.Options[0].ID, true)
	sel = configurator.ToggleOption(sel, toppings.ID, toppings.Options[1].ID, true)
	assert.Equal(t, "8", configurator.ComputeTotal(bowl, sel).String())

	box := configurator.NewCatalog(items["Family box"])
	assert.Equal(t, "240", configurator.ComputeTotal(box, configurator.NewSelection().WithQuantity(3)).String())
}

func hasRequiredType(item domain.MenuItem) bool {
	for _, t := range item.AddonTypes {
		if t.IsSelectionRequired {
			return true
		}
	}
	return false
}
