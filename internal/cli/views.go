package cli

import (
	"fmt"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
)

type optionView struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Price  string `json:"price" yaml:"price"`
	Active bool   `json:"active" yaml:"active"`
}

type typeView struct {
	ID       string       `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Required bool         `json:"required" yaml:"required"`
	Multiple bool         `json:"multiple" yaml:"multiple"`
	Options  []optionView `json:"options" yaml:"options"`
}

type itemView struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	BasePrice      string     `json:"basePrice" yaml:"basePrice"`
	PriceOnRequest bool       `json:"priceOnRequest" yaml:"priceOnRequest"`
	Active         bool       `json:"active" yaml:"active"`
	Available      bool       `json:"available" yaml:"available"`
	Orderable      bool       `json:"orderable" yaml:"orderable"`
	Offer          string     `json:"offer,omitempty" yaml:"offer,omitempty"`
	AddonTypes     []typeView `json:"addonTypes" yaml:"addonTypes"`
}

func toItemView(item domain.MenuItem, orderable bool) itemView {
	v := itemView{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		BasePrice:      item.BasePrice.StringFixed(2),
		PriceOnRequest: item.IsPriceBasedOnRequest,
		Active:         item.IsActive,
		Available:      item.IsAvailable,
		Orderable:      orderable,
		Offer:          describeOffer(item.Offer),
		AddonTypes:     make([]typeView, 0, len(item.AddonTypes)),
	}
	for _, t := range item.AddonTypes {
		tv := typeView{
			ID:       t.ID,
			Title:    t.Title,
			Required: t.IsSelectionRequired,
			Multiple: t.AllowsMultipleOptions,
			Options:  make([]optionView, 0, len(t.Options)),
		}
		for _, o := range t.Options {
			tv.Options = append(tv.Options, optionView{
				ID:     o.ID,
				Name:   o.Name,
				Price:  o.PriceDelta.StringFixed(2),
				Active: o.IsActive,
			})
		}
		v.AddonTypes = append(v.AddonTypes, tv)
	}
	return v
}

func describeOffer(o *domain.Offer) string {
	if o == nil || !o.IsEnabled {
		return ""
	}
	if o.IsPercentage {
		return fmt.Sprintf("-%s%%", o.DiscountValue.String())
	}
	return "-" + o.DiscountValue.StringFixed(2)
}

type quoteView struct {
	MenuItemID      string   `json:"menuItemId" yaml:"menuItemId"`
	Name            string   `json:"name" yaml:"name"`
	Options         []string `json:"options" yaml:"options"`
	Quantity        int      `json:"quantity" yaml:"quantity"`
	UnitBase        string   `json:"unitBase" yaml:"unitBase"`
	AddonUnitSum    string   `json:"addonUnitSum" yaml:"addonUnitSum"`
	UnitPrice       string   `json:"unitPrice" yaml:"unitPrice"`
	Total           string   `json:"total" yaml:"total"`
	Note            string   `json:"note,omitempty" yaml:"note,omitempty"`
	State           string   `json:"state" yaml:"state"`
	Orderable       bool     `json:"orderable" yaml:"orderable"`
	MissingRequired []string `json:"missingRequired" yaml:"missingRequired"`
}

func toQuoteView(s *configurator.Session, orderable bool) quoteView {
	c := s.Catalog()
	sel := s.Selection()
	q := configurator.NewQuote(c, sel)
	v := quoteView{
		MenuItemID:      c.Item().ID,
		Name:            c.Item().Name,
		Options:         selectedNames(c, sel),
		Quantity:        q.Quantity,
		UnitBase:        q.UnitBase.StringFixed(2),
		AddonUnitSum:    q.AddonUnitSum.StringFixed(2),
		UnitPrice:       q.UnitPrice.StringFixed(2),
		Total:           q.Total.StringFixed(2),
		Note:            sel.Note,
		State:           s.State().String(),
		Orderable:       orderable,
		MissingRequired: q.Validation.MissingRequired,
	}
	if v.MissingRequired == nil {
		v.MissingRequired = []string{}
	}
	return v
}

func selectedNames(c *configurator.Catalog, sel configurator.Selection) []string {
	names := []string{}
	for _, t := range c.Types() {
		for _, o := range t.Options {
			if sel.IsSelected(t.ID, o.ID) {
				names = append(names, t.Title+": "+o.Name)
			}
		}
	}
	return names
}

type lineView struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Quantity  int      `json:"quantity" yaml:"quantity"`
	UnitPrice string   `json:"unitPrice" yaml:"unitPrice"`
	Total     string   `json:"total" yaml:"total"`
	Options   []string `json:"options" yaml:"options"`
	Note      string   `json:"note,omitempty" yaml:"note,omitempty"`
}

type cartView struct {
	ID       string     `json:"id" yaml:"id"`
	State    string     `json:"state" yaml:"state"`
	Currency string     `json:"currency" yaml:"currency"`
	Total    string     `json:"total" yaml:"total"`
	Lines    []lineView `json:"lines" yaml:"lines"`
}

func toCartView(c contract.Cart) cartView {
	v := cartView{
		ID:       c.ID,
		State:    c.State,
		Currency: c.Currency,
		Total:    c.Total.StringFixed(2),
		Lines:    make([]lineView, 0, len(c.LineItems)),
	}
	for _, l := range c.LineItems {
		name := l.Name
		if name == "" {
			name = l.MenuItemID
		}
		v.Lines = append(v.Lines, lineView{
			ID:        l.ID,
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Total:     l.Total.StringFixed(2),
			Options:   l.Options,
			Note:      l.Note,
		})
	}
	return v
}
