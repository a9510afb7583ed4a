package customer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant-ordering/internal/domain"
)

// memoryRepo is a lightweight in-memory customer repository for tests.
type memoryRepo struct {
	byEmail map[string]domain.Customer
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.Customer)}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, exists := r.byEmail[c.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	clone := c
	if clone.ID == "" {
		clone.ID = "cust-" + c.Email
	}
	r.byEmail[clone.Email] = clone
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if c, ok := r.byEmail[strings.ToLower(email)]; ok {
		clone := c
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) AddAddress(_ context.Context, customerID string, addr domain.CustomerAddress) (*domain.Customer, error) {
	for email, c := range r.byEmail {
		if c.ID != customerID {
			continue
		}
		c.Addresses = append(c.Addresses, addr)
		r.byEmail[email] = c
		clone := c
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func TestSignupAndLogin_SucceedsWithTrimmedPassword(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, "test-secret", time.Hour)

	ctx := context.Background()
	rawPassword := " Abcdefg1 " // includes whitespace

	customer, err := svc.Signup(ctx, SignupInput{
		Email:     "User@Example.com",
		Password:  rawPassword,
		FirstName: "T",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if customer == nil || customer.Email != "user@example.com" || customer.Role != domain.RoleCustomer {
		t.Fatalf("unexpected customer %+v", customer)
	}

	_, token, err := svc.Login(ctx, "user@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("login failed with trimmed password: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != customer.ID || claims.Role != domain.RoleCustomer || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	found, err := svc.LookupByToken(ctx, token)
	if err != nil || found.ID != customer.ID {
		t.Fatalf("lookup by token: %+v err=%v", found, err)
	}
}

func TestValidatePassword_FailsOnWeakValues(t *testing.T) {
	cases := []struct {
		name string
		pass string
	}{
		{"too short", "Abc1"},
		{"no upper", "abcdefg1"},
		{"no lower", "ABCDEFG1"},
		{"no digit", "Abcdefgh"},
	}
	for _, tc := range cases {
		if err := validatePassword(tc.pass, 8); err == nil {
			t.Fatalf("expected error for case %s", tc.name)
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{
		Email:     "user@example.com",
		Password:  "Abcdefg1",
		FirstName: "T",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.Login(ctx, "user@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "missing@example.com", "Abcdefg1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing user, got %v", err)
	}
}

func TestParseToken_RejectsForeignAndExpired(t *testing.T) {
	svc := New(newMemoryRepo(), "test-secret", time.Hour)
	other := New(newMemoryRepo(), "other-secret", time.Hour)

	token, err := other.tokens.Issue("cust-1", "a@example.com", domain.RoleCustomer, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}

	svc.tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.tokens.Issue("cust-1", "a@example.com", domain.RoleCustomer, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.tokens.now = time.Now
	if _, err := svc.ParseToken(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCreateAdmin_SetsRole(t *testing.T) {
	svc := New(newMemoryRepo(), "test-secret", time.Hour)
	admin, err := svc.CreateAdmin(context.Background(), SignupInput{Email: "chef@example.com", Password: "Kitchen123"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}
}

func TestSignup_NormalizesDefaultAddress(t *testing.T) {
	svc := New(newMemoryRepo(), "test-secret", time.Hour)
	c, err := svc.Signup(context.Background(), SignupInput{
		Email:    "addr@example.com",
		Password: "Abcdefg1",
		Addresses: []AddressInput{
			{StreetName: "Main 1", City: "Riga"},
			{StreetName: "Dock 7", City: "Riga", IsDefault: true},
		},
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if c.Addresses[0].IsDefault || !c.Addresses[1].IsDefault {
		t.Fatalf("unexpected defaults %+v", c.Addresses)
	}
	if c.Addresses[0].ID == "" || c.Addresses[0].ID == c.Addresses[1].ID {
		t.Fatalf("expected unique address ids")
	}

	if _, err := svc.AddAddress(context.Background(), c.ID, AddressInput{City: "Riga"}); err == nil {
		t.Fatalf("expected error for missing street")
	}
}
