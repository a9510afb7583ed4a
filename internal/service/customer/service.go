package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"restaurant-ordering/internal/domain"
	custrepo "restaurant-ordering/internal/repository/customer"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles customer signup, login and address book flows.
type Service struct {
	repo        custrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service. Access tokens are HS256 JWTs signed with secret.
func New(repo custrepo.Repository, secret string, accessTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager([]byte(secret)),
		accessTTL:   accessTTL,
		passwordMin: 8,
	}
}

// AddressInput mirrors incoming address payloads.
type AddressInput struct {
	Label      string `json:"label"`
	StreetName string `json:"streetName"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"isDefault"`
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Addresses []AddressInput `json:"addresses"`
}

// Signup registers a new customer.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	return s.register(ctx, in, domain.RoleCustomer)
}

// CreateAdmin registers a staff account allowed to manage the menu.
func (s *Service) CreateAdmin(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *Service) register(ctx context.Context, in SignupInput, role string) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalidf("valid email required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.CustomerAddress, 0, len(in.Addresses))
	for i, a := range in.Addresses {
		addr, err := toAddress(a)
		if err != nil {
			return nil, domain.Invalidf("address %d: %v", i, err)
		}
		addresses = append(addresses, addr)
	}
	normalizeDefault(addresses)

	return s.repo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		Addresses:    addresses,
	})
}

// Login validates credentials and returns a signed access token plus the customer.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	password = strings.TrimSpace(password)
	c, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(c.ID, c.Email, c.Role, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return c, access, nil
}

// ParseToken verifies an access token without touching the database.
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// LookupByToken returns the customer bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Customer, error) {
	claims, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// AddAddress appends an address to the customer's address book.
func (s *Service) AddAddress(ctx context.Context, customerID string, in AddressInput) (*domain.Customer, error) {
	addr, err := toAddress(in)
	if err != nil {
		return nil, domain.Invalidf("%v", err)
	}
	return s.repo.AddAddress(ctx, customerID, addr)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func toAddress(a AddressInput) (domain.CustomerAddress, error) {
	street := strings.TrimSpace(a.StreetName)
	city := strings.TrimSpace(a.City)
	if street == "" {
		return domain.CustomerAddress{}, errors.New("streetName required")
	}
	if city == "" {
		return domain.CustomerAddress{}, errors.New("city required")
	}
	return domain.CustomerAddress{
		ID:         uuid.NewString(),
		Label:      strings.TrimSpace(a.Label),
		StreetName: street,
		PostalCode: strings.TrimSpace(a.PostalCode),
		City:       city,
		Country:    strings.ToUpper(strings.TrimSpace(a.Country)),
		Phone:      strings.TrimSpace(a.Phone),
		IsDefault:  a.IsDefault,
	}, nil
}

// normalizeDefault leaves exactly one default address: the last one flagged,
// or the first one when none is.
func normalizeDefault(addresses []domain.CustomerAddress) {
	if len(addresses) == 0 {
		return
	}
	idx := 0
	for i, a := range addresses {
		if a.IsDefault {
			idx = i
		}
	}
	for i := range addresses {
		addresses[i].IsDefault = i == idx
	}
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
