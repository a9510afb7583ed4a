package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/events"
	cartrepo "restaurant-ordering/internal/repository/cart"
)

type Service struct {
	repo     cartRepo
	items    itemSource
	events   events.Publisher
	currency string
	logger   *log.Logger
}

type cartRepo interface {
	Create(ctx context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID string, line cartrepo.NewLine) (*domain.CartLine, error)
	ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) error
	SetState(ctx context.Context, cartID, state string) error
}

// itemSource returns an item only when it can be ordered.
type itemSource interface {
	GetOrderable(ctx context.Context, id string) (*domain.MenuItem, error)
}

func New(repo cartrepo.Repository, items itemSource, publisher events.Publisher, currency string, logger *log.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, items: items, events: publisher, currency: currency, logger: logger}
}

type CreateInput struct {
	Currency string `json:"currency"`
}

type ChangeQuantityInput struct {
	Quantity int `json:"quantity"`
}

// LineAdded is the payload of the cart.line_added event.
type LineAdded struct {
	CartID     string          `json:"cartId"`
	LineID     string          `json:"lineId"`
	CustomerID string          `json:"customerId"`
	MenuItemID string          `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Options    []string        `json:"options"`
	Note       string          `json:"note,omitempty"`
}

func (s *Service) Create(ctx context.Context, customerID string, in CreateInput) (*domain.Cart, error) {
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.currency
	}
	if len(currency) != 3 {
		return nil, domain.Invalidf("currency must be a 3-letter code")
	}
	return s.repo.Create(ctx, cartrepo.CreateCartInput{CustomerID: customerID, Currency: currency})
}

// Get returns the cart when it belongs to customerID.
func (s *Service) Get(ctx context.Context, customerID, id string) (*domain.Cart, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	cart, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	return cart, nil
}

func (s *Service) GetActive(ctx context.Context, customerID string) (*domain.Cart, error) {
	return s.repo.GetActiveByCustomer(ctx, customerID)
}

// AddItem re-derives the selection from the flat submission, rejects ids the
// current catalog does not know, validates it and stores a priced line.
func (s *Service) AddItem(ctx context.Context, customerID, cartID string, sub configurator.CartSubmission) (*domain.Cart, error) {
	cart, err := s.activeCart(ctx, customerID, cartID)
	if err != nil {
		return nil, err
	}
	if sub.Quantity == 0 {
		sub.Quantity = configurator.MinQuantity
	}

	item, err := s.items.GetOrderable(ctx, sub.MenuItemID)
	if err != nil {
		return nil, err
	}
	catalog := configurator.NewCatalog(*item)
	res := configurator.Resolve(catalog, sub)
	if err := res.Err(); err != nil {
		return nil, err
	}
	sel := res.Selection
	if err := configurator.Validate(catalog, sel).Err(); err != nil {
		return nil, err
	}

	flat := configurator.ToSubmission(catalog, sel)
	unit := configurator.UnitPrice(catalog, sel)
	line, err := s.repo.AddLineItem(ctx, cart.ID, cartrepo.NewLine{
		MenuItemID: item.ID,
		Quantity:   sel.Quantity,
		UnitPrice:  unit,
		Options:    flat.Options,
		Note:       sel.Note,
		Snapshot:   snapshotFromItem(catalog, sel),
	})
	if err != nil {
		return nil, err
	}

	s.publishLineAdded(ctx, LineAdded{
		CartID:     cart.ID,
		LineID:     line.ID,
		CustomerID: customerID,
		MenuItemID: item.ID,
		Quantity:   sel.Quantity,
		UnitPrice:  unit,
		Options:    flat.Options,
		Note:       sel.Note,
	})
	return s.repo.GetByID(ctx, cart.ID)
}

// ChangeQuantity sets a line's quantity. Zero removes the line.
func (s *Service) ChangeQuantity(ctx context.Context, customerID, cartID, lineID string, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, domain.Invalidf("quantity must not be negative")
	}
	if uuid.Validate(lineID) != nil {
		return nil, domain.ErrNotFound
	}
	cart, err := s.activeCart(ctx, customerID, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeLineItemQuantity(ctx, cart.ID, lineID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

func (s *Service) Delete(ctx context.Context, customerID, cartID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, customerID, cartID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetState(ctx, cart.ID, domain.CartStateDeleted); err != nil {
		return nil, err
	}
	cart.State = domain.CartStateDeleted
	return cart, nil
}

func (s *Service) activeCart(ctx context.Context, customerID, cartID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, customerID, cartID)
	if err != nil {
		return nil, err
	}
	if cart.State != domain.CartStateActive {
		return nil, domain.ErrCartNotActive
	}
	return cart, nil
}

// publishLineAdded reports the event. The line is already stored, so a bus
// failure is logged and not returned.
func (s *Service) publishLineAdded(ctx context.Context, payload LineAdded) {
	e, err := events.New(events.TypeCartLineAdded, payload.CartID, payload)
	if err == nil {
		err = s.events.Publish(ctx, e)
	}
	if err != nil {
		s.logger.Printf("cart service: publish line added cart_id=%s error=%v", payload.CartID, err)
	}
}

func snapshotFromItem(c *configurator.Catalog, sel configurator.Selection) map[string]interface{} {
	item := c.Item()
	var chosen []map[string]interface{}
	for _, t := range c.Types() {
		for _, o := range t.Options {
			if !sel.IsSelected(t.ID, o.ID) {
				continue
			}
			chosen = append(chosen, map[string]interface{}{
				"type":       t.Title,
				"option":     o.Name,
				"priceDelta": o.PriceDelta.String(),
			})
		}
	}
	snap := map[string]interface{}{
		"menuItemName":          item.Name,
		"basePrice":             item.BasePrice.String(),
		"isPriceBasedOnRequest": item.IsPriceBasedOnRequest,
		"unitBase":              configurator.UnitBase(item).String(),
		"options":               chosen,
	}
	if item.ImageURL != "" {
		snap["imageUrl"] = item.ImageURL
	}
	return snap
}

// Submitter adds configured items to one customer's cart in-process. It lets
// a configurator.Session commit directly against the service.
type Submitter struct {
	Service    *Service
	CustomerID string
	CartID     string
}

func (s Submitter) Submit(ctx context.Context, sub configurator.CartSubmission) error {
	if s.Service == nil {
		return errors.New("cart submitter has no service")
	}
	_, err := s.Service.AddItem(ctx, s.CustomerID, s.CartID, sub)
	return err
}
