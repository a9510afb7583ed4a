package cli

import (
	"context"
	"fmt"
	"io"

	"restaurant-ordering/internal/configurator"
	"restaurant-ordering/internal/contract"
	"restaurant-ordering/internal/domain"
)

// API is the subset of the ordering client the commands use.
type API interface {
	FetchMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	Orderable(ctx context.Context, item domain.MenuItem) (bool, error)
	AddToCart(ctx context.Context, cartID string, sub configurator.CartSubmission) (*contract.Cart, error)
	ActiveCart(ctx context.Context) (*contract.Cart, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Dependencies wires runtime services.
type Dependencies struct {
	NewAPI  func(baseURL, token string) API
	Version string
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
