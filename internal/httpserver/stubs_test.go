package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
	cartsvc "restaurant-ordering/internal/service/cart"
	categorysvc "restaurant-ordering/internal/service/category"
	customersvc "restaurant-ordering/internal/service/customer"
	menusvc "restaurant-ordering/internal/service/menu"
)

const (
	customerToken = "customer-token"
	adminToken    = "admin-token"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCustomerService struct {
	customer *domain.Customer
	loginErr error
	signErr  error
	getErr   error
	gotID    string
}

func (s *stubCustomerService) Signup(_ context.Context, _ customersvc.SignupInput) (*domain.Customer, error) {
	return s.customer, s.signErr
}

func (s *stubCustomerService) Login(_ context.Context, _, _ string) (*domain.Customer, string, error) {
	return s.customer, "signed", s.loginErr
}

func (s *stubCustomerService) ParseToken(token string) (*customersvc.Claims, error) {
	switch token {
	case customerToken:
		return &customersvc.Claims{Role: domain.RoleCustomer, RegisteredClaims: jwt.RegisteredClaims{Subject: "cust-1"}}, nil
	case adminToken:
		return &customersvc.Claims{Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"}}, nil
	}
	return nil, customersvc.ErrInvalidToken
}

func (s *stubCustomerService) Get(_ context.Context, id string) (*domain.Customer, error) {
	s.gotID = id
	return s.customer, s.getErr
}

func (s *stubCustomerService) AddAddress(_ context.Context, id string, _ customersvc.AddressInput) (*domain.Customer, error) {
	s.gotID = id
	return s.customer, s.getErr
}

func (s *stubCustomerService) AccessTTLSeconds() int {
	return 3600
}

type stubCategoryService struct {
	categories []domain.Category
	activeOnly bool
	err        error
}

func (s *stubCategoryService) List(_ context.Context, activeOnly bool) ([]domain.Category, error) {
	s.activeOnly = activeOnly
	return s.categories, s.err
}

func (s *stubCategoryService) Get(_ context.Context, id string) (*domain.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryService) Upsert(_ context.Context, in categorysvc.UpsertInput) (*domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Category{ID: "cat-new", Key: in.Key, Name: in.Name, IsActive: true}, nil
}

func (s *stubCategoryService) SetActive(ctx context.Context, id string, active bool) (*domain.Category, error) {
	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.IsActive = active
	return cat, nil
}

type stubMenuService struct {
	item      *domain.MenuItem
	err       error
	orderable bool
	created   *menusvc.CreateInput
	upload    string
}

func (s *stubMenuService) List(_ context.Context, _ string, _ bool) ([]domain.MenuItem, error) {
	if s.item == nil {
		return nil, s.err
	}
	return []domain.MenuItem{*s.item}, s.err
}

func (s *stubMenuService) Get(_ context.Context, id string) (*domain.MenuItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.item == nil || s.item.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.item, nil
}

func (s *stubMenuService) Quote(ctx context.Context, id string, sub configurator.CartSubmission) (*menusvc.QuoteResult, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Quantity == 0 {
		sub.Quantity = 1
	}
	catalog := configurator.NewCatalog(*item)
	res := configurator.Resolve(catalog, sub)
	return &menusvc.QuoteResult{
		Quote:      configurator.NewQuote(catalog, res.Selection),
		Resolution: res,
		Orderable:  s.orderable,
	}, nil
}

func (s *stubMenuService) Create(_ context.Context, in menusvc.CreateInput) (*domain.MenuItem, error) {
	s.created = &in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.MenuItem{ID: "new-item", Name: in.Name, BasePrice: in.BasePrice, IsActive: true, IsAvailable: true}, nil
}

func (s *stubMenuService) SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsAvailable = available
	return item, nil
}

func (s *stubMenuService) SetOptionActive(_ context.Context, _, _ string, _ bool) error {
	return s.err
}

func (s *stubMenuService) UploadImage(_ context.Context, id, filename, _ string, body io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, _ := io.ReadAll(body)
	s.upload = string(data)
	return "https://cdn.example.com/menu-items/" + id + "/" + filename, nil
}

type stubCartService struct {
	cart       *domain.Cart
	err        error
	customerID string
	submission configurator.CartSubmission
	quantity   int
}

func (s *stubCartService) Create(_ context.Context, customerID string, _ cartsvc.CreateInput) (*domain.Cart, error) {
	s.customerID = customerID
	return s.cart, s.err
}

func (s *stubCartService) Get(_ context.Context, customerID, _ string) (*domain.Cart, error) {
	s.customerID = customerID
	return s.cart, s.err
}

func (s *stubCartService) GetActive(_ context.Context, customerID string) (*domain.Cart, error) {
	s.customerID = customerID
	return s.cart, s.err
}

func (s *stubCartService) AddItem(_ context.Context, customerID, _ string, sub configurator.CartSubmission) (*domain.Cart, error) {
	s.customerID = customerID
	s.submission = sub
	return s.cart, s.err
}

func (s *stubCartService) ChangeQuantity(_ context.Context, customerID, _, _ string, quantity int) (*domain.Cart, error) {
	s.customerID = customerID
	s.quantity = quantity
	return s.cart, s.err
}

func (s *stubCartService) Delete(_ context.Context, customerID, _ string) (*domain.Cart, error) {
	s.customerID = customerID
	return s.cart, s.err
}

type testDeps struct {
	customers  *stubCustomerService
	categories *stubCategoryService
	menu       *stubMenuService
	carts      *stubCartService
}

func newTestDeps() *testDeps {
	return &testDeps{
		customers:  &stubCustomerService{},
		categories: &stubCategoryService{},
		menu:       &stubMenuService{},
		carts:      &stubCartService{},
	}
}

func (d *testDeps) router(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, Deps{
		CustomerSvc: d.customers,
		CategorySvc: d.categories,
		MenuSvc:     d.menu,
		CartSvc:     d.carts,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
