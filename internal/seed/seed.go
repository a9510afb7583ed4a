// Package seed loads a small demo menu and an admin account for manual
// testing. Running it twice leaves the database unchanged.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
	customersvc "restaurant-ordering/internal/service/customer"
)

// fakerSeed keeps generated descriptions stable between runs.
const fakerSeed = 42

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("restaurant-ordering/seed"))

type categoryStore interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type menuStore interface {
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

type adminCreator interface {
	CreateAdmin(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
}

// Options controls the admin account. It is skipped when AdminEmail is empty.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Result counts what Apply wrote.
type Result struct {
	Categories int
	Created    int
	Skipped    int
	Admin      bool
}

type Seeder struct {
	categories categoryStore
	menu       menuStore
	customers  adminCreator
	logger     *log.Logger
}

func New(categories categoryStore, menu menuStore, customers adminCreator, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Seeder{categories: categories, menu: menu, customers: customers, logger: logger}
}

// Apply upserts the demo categories and creates missing demo items.
func (s *Seeder) Apply(ctx context.Context, opts Options) (Result, error) {
	var res Result
	for _, cs := range DemoMenu() {
		cat, err := s.categories.Upsert(ctx, domain.Category{Key: cs.Key, Name: cs.Name, IsActive: true})
		if err != nil {
			return res, fmt.Errorf("upsert category %s: %w", cs.Key, err)
		}
		res.Categories++

		for _, item := range cs.Items {
			item.CategoryID = cat.ID
			_, err := s.menu.GetByID(ctx, item.ID)
			switch {
			case err == nil:
				res.Skipped++
				continue
			case !errors.Is(err, domain.ErrNotFound):
				return res, fmt.Errorf("lookup %s: %w", item.Name, err)
			}
			if _, err := s.menu.Create(ctx, item); err != nil {
				return res, fmt.Errorf("create %s: %w", item.Name, err)
			}
			s.logger.Printf("seed: created item=%s id=%s", item.Name, item.ID)
			res.Created++
		}
	}

	if opts.AdminEmail != "" && s.customers != nil {
		_, err := s.customers.CreateAdmin(ctx, customersvc.SignupInput{
			Email:     opts.AdminEmail,
			Password:  opts.AdminPassword,
			FirstName: "Admin",
		})
		switch {
		case err == nil:
			res.Admin = true
			s.logger.Printf("seed: created admin email=%s", opts.AdminEmail)
		case errors.Is(err, domain.ErrAlreadyExists):
		default:
			return res, fmt.Errorf("create admin: %w", err)
		}
	}
	return res, nil
}

// CategorySeed is one demo category with its items.
type CategorySeed struct {
	Key   string
	Name  string
	Items []domain.MenuItem
}

// DemoMenu returns the demo catalog with stable ids.
func DemoMenu() []CategorySeed {
	fake := faker.NewWithSeed(rand.NewSource(fakerSeed))
	describe := func() string { return fake.Lorem().Sentence(8) }

	return []CategorySeed{
		{
			Key:  "pizza",
			Name: "Pizza",
			Items: []domain.MenuItem{
				item("pizza/margherita", "Margherita", describe(), "50", false, nil,
					addonType("Size", true, false, opt("Small", "0"), opt("Large", "10")),
					addonType("Extras", false, true, opt("Basil", "1.50"), opt("Chili", "0.75"), opt("Buffalo mozzarella", "4"))),
				item("pizza/diavola", "Diavola", describe(), "58", false,
					&domain.Offer{IsEnabled: true, IsPercentage: false, DiscountValue: decimal.NewFromInt(5)},
					addonType("Size", true, false, opt("Small", "0"), opt("Large", "10"))),
			},
		},
		{
			Key:  "build-your-own",
			Name: "Build your own",
			Items: []domain.MenuItem{
				item("build-your-own/bowl", "Salad bowl", describe(), "0", true, nil,
					addonType("Toppings", true, true, opt("Cheese", "5"), opt("Olives", "3"), opt("Chicken", "7"))),
			},
		},
		{
			Key:  "deals",
			Name: "Deals",
			Items: []domain.MenuItem{
				item("deals/family-box", "Family box", describe(), "100", false,
					&domain.Offer{IsEnabled: true, IsPercentage: true, DiscountValue: decimal.NewFromInt(20)}),
			},
		},
	}
}

func item(key, name, description, base string, onRequest bool, offer *domain.Offer, types ...domain.AddonType) domain.MenuItem {
	id := stableID("item", key)
	for ti := range types {
		types[ti].ID = stableID("type", key, types[ti].Title)
		for oi := range types[ti].Options {
			types[ti].Options[oi].ID = stableID("option", key, types[ti].Title, types[ti].Options[oi].Name)
		}
	}
	return domain.MenuItem{
		ID:                    id,
		Name:                  name,
		Description:           description,
		BasePrice:             decimal.RequireFromString(base),
		IsPriceBasedOnRequest: onRequest,
		IsActive:              true,
		IsAvailable:           true,
		AddonTypes:            types,
		Offer:                 offer,
	}
}

func addonType(title string, required, multiple bool, options ...domain.AddonOption) domain.AddonType {
	return domain.AddonType{
		Title:                 title,
		IsSelectionRequired:   required,
		AllowsMultipleOptions: multiple,
		Options:               options,
	}
}

func opt(name, delta string) domain.AddonOption {
	return domain.AddonOption{Name: name, PriceDelta: decimal.RequireFromString(delta), IsActive: true}
}

func stableID(parts ...string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "/"))).String()
}
