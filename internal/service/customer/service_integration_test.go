package customer

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"restaurant-ordering/internal/db/dbtest"
	customerrepo "restaurant-ordering/internal/repository/customer"
)

func TestSignupAndLogin_Integration(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)

	repo := customerrepo.NewPostgres(pool, log.New(os.Stdout, "[test] ", log.LstdFlags))
	svc := New(repo, "integration-secret", time.Hour)

	password := "Abcdefg1"
	cust, err := svc.Signup(ctx, SignupInput{
		Email:     "integration@example.com",
		Password:  password,
		FirstName: "Int",
		LastName:  "User",
		Addresses: []AddressInput{
			{Country: "lv", StreetName: "Main", PostalCode: "LV-1050", City: "Riga"},
		},
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if cust == nil || cust.ID == "" || len(cust.Addresses) != 1 || cust.Addresses[0].Country != "LV" {
		t.Fatalf("expected created customer, got %+v", cust)
	}

	_, access, err := svc.Login(ctx, "integration@example.com", password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	found, err := svc.LookupByToken(ctx, access)
	if err != nil || found.ID != cust.ID {
		t.Fatalf("lookup: %+v err=%v", found, err)
	}
}
