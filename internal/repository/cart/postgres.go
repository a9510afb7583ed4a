package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const cartColumns = `id::text, customer_id::text, currency, total::text, state, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateCartInput) (*domain.Cart, error) {
	q := `
INSERT INTO carts (customer_id, currency, total, state)
VALUES ($1, $2, 0, 'active')
RETURNING ` + cartColumns
	cart, err := scanCart(r.pool.QueryRow(ctx, q, in.CustomerID, in.Currency))
	if err != nil {
		r.logger.Printf("cart repo: create customer_id=%s error=%v", in.CustomerID, err)
		return nil, err
	}
	cart.Lines = []domain.CartLine{}
	r.logger.Printf("cart repo: created id=%s customer_id=%s", cart.ID, cart.CustomerID)
	return cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *postgresRepo) GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE customer_id = $1 AND state = 'active'
ORDER BY created_at DESC
LIMIT 1
`, customerID)
}

func (r *postgresRepo) AddLineItem(ctx context.Context, cartID string, line NewLine) (*domain.CartLine, error) {
	options := append([]string(nil), line.Options...)
	sort.Strings(options)
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var state string
	if err := tx.QueryRow(ctx, `SELECT state FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if state != domain.CartStateActive {
		return nil, fmt.Errorf("cart %s is %s: %w", cartID, state, domain.ErrCartNotActive)
	}

	var lineID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_lines
WHERE cart_id = $1 AND menu_item_id = $2 AND options = $3::jsonb AND note = $4
`, cartID, line.MenuItemID, optionsJSON, line.Note).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	unit := line.UnitPrice.StringFixed(2)
	if err == nil {
		newQty := existingQty + line.Quantity
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1, unit_price = $2::numeric, total = $2::numeric * $1, snapshot = $3
WHERE id = $4
`, newQty, unit, line.Snapshot, lineID); err != nil {
			return nil, err
		}
		r.logger.Printf("cart repo: merged line cart_id=%s line_id=%s quantity=%d", cartID, lineID, newQty)
	} else {
		if err := tx.QueryRow(ctx, `
INSERT INTO cart_lines (cart_id, menu_item_id, quantity, unit_price, total, options, note, snapshot)
VALUES ($1, $2, $3, $4::numeric, $4::numeric * $3, $5::jsonb, $6, $7)
RETURNING id::text
`, cartID, line.MenuItemID, line.Quantity, unit, optionsJSON, line.Note, line.Snapshot).Scan(&lineID); err != nil {
			return nil, err
		}
		r.logger.Printf("cart repo: added line cart_id=%s line_id=%s item=%s", cartID, lineID, line.MenuItemID)
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}

	stored, err := scanLine(tx.QueryRow(ctx, `SELECT `+lineColumns+` FROM cart_lines WHERE id = $1`, lineID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *postgresRepo) ChangeLineItemQuantity(ctx context.Context, cartID, lineItemID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var cmdRows int64
	if quantity <= 0 {
		cmd, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND cart_id = $2
`, lineItemID, cartID)
		if err != nil {
			return err
		}
		cmdRows = cmd.RowsAffected()
	} else {
		cmd, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1, total = unit_price * $1
WHERE id = $2 AND cart_id = $3
`, quantity, lineItemID, cartID)
		if err != nil {
			return err
		}
		cmdRows = cmd.RowsAffected()
	}
	if cmdRows == 0 {
		return domain.ErrNotFound
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}
	r.logger.Printf("cart repo: change quantity cart_id=%s line_id=%s quantity=%d", cartID, lineItemID, quantity)
	return tx.Commit(ctx)
}

func (r *postgresRepo) SetState(ctx context.Context, cartID, state string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE carts SET state = $2 WHERE id = $1`, cartID, state)
	if err != nil {
		r.logger.Printf("cart repo: set state cart_id=%s error=%v", cartID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchCart(ctx context.Context, cartQuery string, args ...interface{}) (*domain.Cart, error) {
	cart, err := scanCart(r.pool.QueryRow(ctx, cartQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+lineColumns+` FROM cart_lines WHERE cart_id = $1 ORDER BY created_at ASC`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Lines = []domain.CartLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

const lineColumns = `id::text, cart_id::text, menu_item_id::text, quantity, unit_price::text, total::text, options, note, snapshot, created_at`

func scanCart(row pgx.Row) (*domain.Cart, error) {
	var (
		cart  domain.Cart
		total string
	)
	if err := row.Scan(&cart.ID, &cart.CustomerID, &cart.Currency, &total, &cart.State, &cart.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if cart.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("cart %s total: %w", cart.ID, err)
	}
	return &cart, nil
}

func scanLine(row pgx.Row) (*domain.CartLine, error) {
	var (
		line        domain.CartLine
		unit, total string
		optionsJSON []byte
	)
	if err := row.Scan(&line.ID, &line.CartID, &line.MenuItemID, &line.Quantity, &unit, &total,
		&optionsJSON, &line.Note, &line.Snapshot, &line.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if line.UnitPrice, err = decimal.NewFromString(unit); err != nil {
		return nil, err
	}
	if line.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	line.Options = []string{}
	if len(optionsJSON) > 0 {
		if err := json.Unmarshal(optionsJSON, &line.Options); err != nil {
			return nil, err
		}
	}
	return &line, nil
}

func updateCartTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total = COALESCE((
	SELECT SUM(total)
	FROM cart_lines
	WHERE cart_id = $1
), 0)
WHERE id = $1
`, cartID)
	return err
}
