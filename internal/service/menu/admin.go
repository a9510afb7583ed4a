package menu

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CreateInput is the admin payload for a new menu item.
type CreateInput struct {
	CategoryID            string           `json:"categoryId"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	BasePrice             decimal.Decimal  `json:"basePrice"`
	IsPriceBasedOnRequest bool             `json:"isPriceBasedOnRequest"`
	IsActive              *bool            `json:"isActive"`
	IsAvailable           *bool            `json:"isAvailable"`
	AddonTypes            []AddonTypeInput `json:"addonTypes"`
	Offer                 *OfferInput      `json:"offer"`
}

type AddonTypeInput struct {
	Title                 string             `json:"title"`
	AllowsMultipleOptions bool               `json:"allowsMultipleOptions"`
	IsSelectionRequired   bool               `json:"isSelectionRequired"`
	Options               []AddonOptionInput `json:"options"`
}

type AddonOptionInput struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
	IsActive   *bool           `json:"isActive"`
}

type OfferInput struct {
	IsEnabled     bool            `json:"isEnabled"`
	IsPercentage  bool            `json:"isPercentage"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// Create validates in and stores the item with its addon configuration.
// A price-on-request item must have at least one required addon type.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.MenuItem, error) {
	item, err := buildItem(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, item.CategoryID); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("menu service: created id=%s name=%s", created.ID, created.Name)
	return created, nil
}

func buildItem(in CreateInput) (domain.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.MenuItem{}, domain.Invalidf("name required")
	}
	if uuid.Validate(in.CategoryID) != nil {
		return domain.MenuItem{}, domain.Invalidf("categoryId must be a valid id")
	}
	if in.BasePrice.IsNegative() {
		return domain.MenuItem{}, domain.Invalidf("basePrice must not be negative")
	}

	item := domain.MenuItem{
		CategoryID:            in.CategoryID,
		Name:                  name,
		Description:           strings.TrimSpace(in.Description),
		BasePrice:             in.BasePrice,
		IsPriceBasedOnRequest: in.IsPriceBasedOnRequest,
		IsActive:              boolOr(in.IsActive, true),
		IsAvailable:           boolOr(in.IsAvailable, true),
		AddonTypes:            make([]domain.AddonType, 0, len(in.AddonTypes)),
	}

	titles := map[string]struct{}{}
	hasRequired := false
	for i, t := range in.AddonTypes {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			return domain.MenuItem{}, domain.Invalidf("addonTypes[%d]: title required", i)
		}
		if _, dup := titles[strings.ToLower(title)]; dup {
			return domain.MenuItem{}, domain.Invalidf("addon type %q appears twice", title)
		}
		titles[strings.ToLower(title)] = struct{}{}
		if len(t.Options) == 0 {
			return domain.MenuItem{}, domain.Invalidf("addon type %q has no options", title)
		}

		addonType := domain.AddonType{
			Title:                 title,
			AllowsMultipleOptions: t.AllowsMultipleOptions,
			IsSelectionRequired:   t.IsSelectionRequired,
			Options:               make([]domain.AddonOption, 0, len(t.Options)),
		}
		names := map[string]struct{}{}
		anyActive := false
		for _, o := range t.Options {
			optName := strings.TrimSpace(o.Name)
			if optName == "" {
				return domain.MenuItem{}, domain.Invalidf("addon type %q: option name required", title)
			}
			if _, dup := names[strings.ToLower(optName)]; dup {
				return domain.MenuItem{}, domain.Invalidf("addon type %q: option %q appears twice", title, optName)
			}
			names[strings.ToLower(optName)] = struct{}{}
			if o.PriceDelta.IsNegative() {
				return domain.MenuItem{}, domain.Invalidf("option %q: priceDelta must not be negative", optName)
			}
			active := boolOr(o.IsActive, true)
			anyActive = anyActive || active
			addonType.Options = append(addonType.Options, domain.AddonOption{
				Name:       optName,
				PriceDelta: o.PriceDelta,
				IsActive:   active,
			})
		}
		if t.IsSelectionRequired {
			if !anyActive {
				return domain.MenuItem{}, domain.Invalidf("required addon type %q has no active option", title)
			}
			hasRequired = true
		}
		item.AddonTypes = append(item.AddonTypes, addonType)
	}

	if item.IsPriceBasedOnRequest && !hasRequired {
		return domain.MenuItem{}, domain.Invalidf("price-on-request items need at least one required addon type")
	}

	if in.Offer != nil {
		v := in.Offer.DiscountValue
		if v.IsNegative() {
			return domain.MenuItem{}, domain.Invalidf("offer discountValue must not be negative")
		}
		if in.Offer.IsPercentage && v.GreaterThan(hundred) {
			return domain.MenuItem{}, domain.Invalidf("percentage offer must be between 0 and 100")
		}
		item.Offer = &domain.Offer{
			IsEnabled:     in.Offer.IsEnabled,
			IsPercentage:  in.Offer.IsPercentage,
			DiscountValue: v,
		}
	}
	return item, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
