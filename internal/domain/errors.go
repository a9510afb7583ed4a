package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotOrderable is returned when an item, or its category, is switched off.
	ErrNotOrderable = errors.New("menu item is not orderable")
	// ErrCartNotActive is returned when modifying an ordered or deleted cart.
	ErrCartNotActive = errors.New("cart is not active")
	// ErrInvalidInput marks request data the caller can correct.
	ErrInvalidInput = errors.New("invalid input")
)

// Invalidf returns an error wrapping ErrInvalidInput with a readable message.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
