package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/domain"
	cartsvc "restaurant-ordering/internal/service/cart"
	categorysvc "restaurant-ordering/internal/service/category"
	customersvc "restaurant-ordering/internal/service/customer"
	menusvc "restaurant-ordering/internal/service/menu"
)

type customerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, error)
	ParseToken(token string) (*customersvc.Claims, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	AddAddress(ctx context.Context, customerID string, in customersvc.AddressInput) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type categoryService interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Upsert(ctx context.Context, in categorysvc.UpsertInput) (*domain.Category, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Category, error)
}

type menuService interface {
	List(ctx context.Context, categoryID string, includeInactive bool) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Quote(ctx context.Context, id string, sub configurator.CartSubmission) (*menusvc.QuoteResult, error)
	Create(ctx context.Context, in menusvc.CreateInput) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error)
	SetOptionActive(ctx context.Context, itemID, optionID string, active bool) error
	UploadImage(ctx context.Context, id, filename, contentType string, body io.Reader) (string, error)
}

type cartService interface {
	Create(ctx context.Context, customerID string, in cartsvc.CreateInput) (*domain.Cart, error)
	Get(ctx context.Context, customerID, id string) (*domain.Cart, error)
	GetActive(ctx context.Context, customerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID, cartID string, sub configurator.CartSubmission) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, customerID, cartID, lineID string, quantity int) (*domain.Cart, error)
	Delete(ctx context.Context, customerID, cartID string) (*domain.Cart, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	CustomerSvc    customerService
	CategorySvc    categoryService
	MenuSvc        menuService
	CartSvc        cartService
	AllowedOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.CustomerSvc == nil:
		return errors.New("httpserver: customer service is required")
	case d.CategorySvc == nil:
		return errors.New("httpserver: category service is required")
	case d.MenuSvc == nil:
		return errors.New("httpserver: menu service is required")
	case d.CartSvc == nil:
		return errors.New("httpserver: cart service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := &handlers{
		logger:     logger,
		customers:  deps.CustomerSvc,
		categories: deps.CategorySvc,
		menu:       deps.MenuSvc,
		carts:      deps.CartSvc,
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := router.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/login", h.login)

	me := router.Group("/me", authMiddleware(deps.CustomerSvc))
	me.GET("", h.me)
	me.POST("/addresses", h.addAddress)

	router.GET("/categories", h.listCategories)
	router.GET("/categories/:id", h.getCategory)
	router.GET("/menu-items", h.listMenuItems)
	router.GET("/menu-items/:id", h.getMenuItem)
	router.POST("/menu-items/:id/quote", h.quoteMenuItem)

	carts := router.Group("/carts", authMiddleware(deps.CustomerSvc))
	carts.POST("", h.createCart)
	carts.GET("/active", h.activeCart)
	carts.GET("/:id", h.getCart)
	carts.DELETE("/:id", h.deleteCart)
	carts.POST("/:id/line-items", h.addLineItem)
	carts.PATCH("/:id/line-items/:lineId", h.changeLineItem)

	admin := router.Group("/admin", authMiddleware(deps.CustomerSvc), requireRole(domain.RoleAdmin))
	admin.POST("/categories", h.upsertCategory)
	admin.PATCH("/categories/:id", h.setCategoryActive)
	admin.POST("/menu-items", h.createMenuItem)
	admin.PATCH("/menu-items/:id/availability", h.setAvailability)
	admin.PATCH("/menu-items/:id/options/:optionId", h.setOptionActive)
	admin.POST("/menu-items/:id/image", h.uploadImage)

	return router, nil
}

type handlers struct {
	logger     *log.Logger
	customers  customerService
	categories categoryService
	menu       menuService
	carts      cartService
}
