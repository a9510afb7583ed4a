package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
	menurepo "restaurant-ordering/internal/repository/menu"
	"restaurant-ordering/internal/storage"
)

type categoryGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}

type Service struct {
	repo       menurepo.Repository
	categories categoryGetter
	images     storage.Uploader
	logger     *log.Logger
}

func New(repo menurepo.Repository, categories categoryGetter, images storage.Uploader, logger *log.Logger) *Service {
	if images == nil {
		images = storage.Disabled{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, categories: categories, images: images, logger: logger}
}

// List returns the items of a category, or all items when categoryID is empty.
func (s *Service) List(ctx context.Context, categoryID string, includeInactive bool) ([]domain.MenuItem, error) {
	if categoryID != "" && uuid.Validate(categoryID) != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.List(ctx, menurepo.ListFilter{CategoryID: categoryID, ActiveOnly: !includeInactive})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Orderability reports whether item can be added to a cart right now, which
// also depends on its category being active.
func (s *Service) Orderability(ctx context.Context, item domain.MenuItem) (bool, error) {
	if !item.IsActive || !item.IsAvailable {
		return false, nil
	}
	cat, err := s.categories.GetByID(ctx, item.CategoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return item.Orderable(cat.IsActive), nil
}

// GetOrderable loads an item and fails with domain.ErrNotOrderable when it
// cannot be ordered.
func (s *Service) GetOrderable(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.Orderability(ctx, *item)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", item.Name, domain.ErrNotOrderable)
	}
	return item, nil
}

// QuoteResult is the server-side price breakdown for a submitted configuration.
type QuoteResult struct {
	Quote      configurator.Quote
	Resolution configurator.Resolution
	Orderable  bool
}

// Quote prices a submission without persisting anything. Unknown or
// unavailable option ids are reported on the resolution, not as an error.
func (s *Service) Quote(ctx context.Context, id string, sub configurator.CartSubmission) (*QuoteResult, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orderable, err := s.Orderability(ctx, *item)
	if err != nil {
		return nil, err
	}
	if sub.Quantity == 0 {
		sub.Quantity = configurator.MinQuantity
	}
	catalog := configurator.NewCatalog(*item)
	res := configurator.Resolve(catalog, sub)
	return &QuoteResult{
		Quote:      configurator.NewQuote(catalog, res.Selection),
		Resolution: res,
		Orderable:  orderable,
	}, nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error) {
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *Service) SetOptionActive(ctx context.Context, itemID, optionID string, active bool) error {
	if uuid.Validate(itemID) != nil || uuid.Validate(optionID) != nil {
		return domain.ErrNotFound
	}
	return s.repo.SetOptionActive(ctx, itemID, optionID, active)
}

// UploadImage stores the image and points the item at its public URL.
func (s *Service) UploadImage(ctx context.Context, id, filename, contentType string, body io.Reader) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.Invalidf("content type %q is not an image", contentType)
	}
	url, err := s.images.Upload(ctx, storage.MenuImageKey(id, filename), contentType, body)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateImage(ctx, id, url); err != nil {
		return "", err
	}
	s.logger.Printf("menu service: image updated id=%s url=%s", id, url)
	return url, nil
}
