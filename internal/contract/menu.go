// Package contract holds the JSON shapes exchanged with API clients. The menu
// item shape follows the backend contract (typesWithOptions, menuItemOptions,
// itemOffer) so the same types serve the HTTP server and the Go client.
package contract

import (
	"restaurant-ordering/internal/domain"
)

type MenuItem struct {
	ID                    string      `json:"id"`
	CategoryID            string      `json:"categoryId,omitempty"`
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	ImageURL              string      `json:"imageUrl"`
	BasePrice             Money       `json:"basePrice"`
	IsPriceBasedOnRequest *bool       `json:"isPriceBasedOnRequest,omitempty"`
	IsActive              bool        `json:"isActive"`
	IsAvailable           *bool       `json:"isAvailable,omitempty"`
	TypesWithOptions      []AddonType `json:"typesWithOptions"`
	ItemOffer             *Offer      `json:"itemOffer,omitempty"`
}

type AddonType struct {
	ID                       string        `json:"id"`
	Name                     string        `json:"name"`
	CanSelectMultipleOptions bool          `json:"canSelectMultipleOptions"`
	IsSelectionRequired      bool          `json:"isSelectionRequired"`
	MenuItemOptions          []AddonOption `json:"menuItemOptions"`
}

type AddonOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type Offer struct {
	IsEnabled     bool  `json:"isEnabled"`
	IsPercentage  bool  `json:"isPercentage"`
	DiscountValue Money `json:"discountValue"`
}

// Category carries the active state consulted for orderability.
type Category struct {
	ID       string `json:"id"`
	Key      string `json:"key,omitempty"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `json:"isActive"`
}

func FromCategory(c domain.Category) Category {
	return Category{ID: c.ID, Key: c.Key, Name: c.Name, IsActive: c.IsActive}
}

func FromMenuItem(m domain.MenuItem) MenuItem {
	onRequest := m.IsPriceBasedOnRequest
	available := m.IsAvailable
	out := MenuItem{
		ID:                    m.ID,
		CategoryID:            m.CategoryID,
		Name:                  m.Name,
		Description:           m.Description,
		ImageURL:              m.ImageURL,
		BasePrice:             NewMoney(m.BasePrice),
		IsPriceBasedOnRequest: &onRequest,
		IsActive:              m.IsActive,
		IsAvailable:           &available,
		TypesWithOptions:      make([]AddonType, 0, len(m.AddonTypes)),
	}
	for _, t := range m.AddonTypes {
		wt := AddonType{
			ID:                       t.ID,
			Name:                     t.Title,
			CanSelectMultipleOptions: t.AllowsMultipleOptions,
			IsSelectionRequired:      t.IsSelectionRequired,
			MenuItemOptions:          make([]AddonOption, 0, len(t.Options)),
		}
		for _, o := range t.Options {
			active := o.IsActive
			wt.MenuItemOptions = append(wt.MenuItemOptions, AddonOption{
				ID:       o.ID,
				Name:     o.Name,
				Price:    NewMoney(o.PriceDelta),
				IsActive: &active,
			})
		}
		out.TypesWithOptions = append(out.TypesWithOptions, wt)
	}
	if m.Offer != nil {
		out.ItemOffer = &Offer{
			IsEnabled:     m.Offer.IsEnabled,
			IsPercentage:  m.Offer.IsPercentage,
			DiscountValue: NewMoney(m.Offer.DiscountValue),
		}
	}
	return out
}

// ToDomain converts a fetched item. Fields older backends omit get fixed
// defaults here, once: a missing isActive on an option means active, a
// missing isAvailable means available, and a missing isPriceBasedOnRequest is
// taken from a zero basePrice.
func (m MenuItem) ToDomain() domain.MenuItem {
	out := domain.MenuItem{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		BasePrice:   m.BasePrice.Decimal,
		IsActive:    m.IsActive,
		IsAvailable: m.IsAvailable == nil || *m.IsAvailable,
		AddonTypes:  make([]domain.AddonType, 0, len(m.TypesWithOptions)),
	}
	if m.IsPriceBasedOnRequest != nil {
		out.IsPriceBasedOnRequest = *m.IsPriceBasedOnRequest
	} else {
		out.IsPriceBasedOnRequest = m.BasePrice.IsZero()
	}
	for _, t := range m.TypesWithOptions {
		dt := domain.AddonType{
			ID:                    t.ID,
			Title:                 t.Name,
			AllowsMultipleOptions: t.CanSelectMultipleOptions,
			IsSelectionRequired:   t.IsSelectionRequired,
			Options:               make([]domain.AddonOption, 0, len(t.MenuItemOptions)),
		}
		for _, o := range t.MenuItemOptions {
			dt.Options = append(dt.Options, domain.AddonOption{
				ID:         o.ID,
				Name:       o.Name,
				PriceDelta: o.Price.Decimal,
				IsActive:   o.IsActive == nil || *o.IsActive,
			})
		}
		out.AddonTypes = append(out.AddonTypes, dt)
	}
	if m.ItemOffer != nil {
		out.Offer = &domain.Offer{
			IsEnabled:     m.ItemOffer.IsEnabled,
			IsPercentage:  m.ItemOffer.IsPercentage,
			DiscountValue: m.ItemOffer.DiscountValue.Decimal,
		}
	}
	return out
}
