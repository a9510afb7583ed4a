// Package dbtest provides a migrated Postgres pool for integration tests.
// Tests are skipped when TEST_DB_DSN is not set.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-ordering/internal/migrate"
)

// Pool connects to TEST_DB_DSN, applies migrations and truncates every table.
// The pool is closed when the test finishes.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	Reset(t, pool)
	return pool
}

func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE cart_lines, carts, customers, item_offers, addon_options, addon_types, menu_items, categories RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// Category inserts an active category and returns its id.
func Category(t *testing.T, pool *pgxpool.Pool, key string) string {
	t.Helper()
	var id string
	if err := pool.QueryRow(context.Background(), `INSERT INTO categories (key, name) VALUES ($1, $1) RETURNING id::text`, key).Scan(&id); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	return id
}

// Customer inserts a customer with a placeholder hash and returns its id.
func Customer(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	if err := pool.QueryRow(context.Background(), `INSERT INTO customers (email, password_hash) VALUES ($1, 'x') RETURNING id::text`, email).Scan(&id); err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return id
}
