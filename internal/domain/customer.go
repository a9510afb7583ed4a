package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// CustomerAddress stores a delivery address.
type CustomerAddress struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"`
	StreetName string `json:"streetName"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
	IsDefault  bool   `json:"isDefault"`
}

// Customer represents a registered user. Admins share the table and differ by Role.
type Customer struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"`
	FirstName    string            `json:"firstName,omitempty"`
	LastName     string            `json:"lastName,omitempty"`
	Role         string            `json:"role"`
	Addresses    []CustomerAddress `json:"addresses"`
	CreatedAt    time.Time         `json:"createdAt"`
}
