package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const itemColumns = `id::text, category_id::text, name, COALESCE(description, ''), COALESCE(image_url, ''),
       base_price::text, is_price_based_on_request, is_active, is_available, created_at`

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.MenuItem, error) {
	q := `SELECT ` + itemColumns + ` FROM menu_items WHERE ($1 = '' OR category_id::text = $1)`
	if f.ActiveOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, q, f.CategoryID)
	if err != nil {
		r.logger.Printf("menu repo: list category_id=%s error=%v", f.CategoryID, err)
		return nil, err
	}
	items, err := collectItems(rows)
	if err != nil {
		r.logger.Printf("menu repo: list rows category_id=%s error=%v", f.CategoryID, err)
		return nil, err
	}
	if err := r.loadDetails(ctx, items); err != nil {
		return nil, err
	}
	r.logger.Printf("menu repo: list category_id=%s count=%d", f.CategoryID, len(items))
	return items, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("menu repo: get id=%s error=%v", id, err)
		return nil, err
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		r.logger.Printf("menu repo: get id=%s not found", id)
		return nil, domain.ErrNotFound
	}
	if err := r.loadDetails(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func collectItems(rows pgx.Rows) ([]domain.MenuItem, error) {
	defer rows.Close()
	var items []domain.MenuItem
	for rows.Next() {
		var (
			m     domain.MenuItem
			price string
		)
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.ImageURL,
			&price, &m.IsPriceBasedOnRequest, &m.IsActive, &m.IsAvailable, &m.CreatedAt); err != nil {
			return nil, err
		}
		var err error
		if m.BasePrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("menu item %s base price: %w", m.ID, err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// loadDetails attaches addon types, options and offers to items in three
// queries regardless of the number of items.
func (r *postgresRepo) loadDetails(ctx context.Context, items []domain.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	index := make(map[string]int, len(items))
	for i, m := range items {
		ids[i] = m.ID
		index[m.ID] = i
		items[i].AddonTypes = []domain.AddonType{}
	}

	typeRows, err := r.pool.Query(ctx, `
SELECT id::text, menu_item_id::text, title, allows_multiple_options, is_selection_required
FROM addon_types
WHERE menu_item_id::text = ANY($1)
ORDER BY position ASC, title ASC
`, ids)
	if err != nil {
		r.logger.Printf("menu repo: load addon types error=%v", err)
		return err
	}
	typeOwner := map[string]string{}
	typeRowsErr := func() error {
		defer typeRows.Close()
		for typeRows.Next() {
			var (
				t      domain.AddonType
				itemID string
			)
			if err := typeRows.Scan(&t.ID, &itemID, &t.Title, &t.AllowsMultipleOptions, &t.IsSelectionRequired); err != nil {
				return err
			}
			t.Options = []domain.AddonOption{}
			i := index[itemID]
			items[i].AddonTypes = append(items[i].AddonTypes, t)
			typeOwner[t.ID] = itemID
		}
		return typeRows.Err()
	}()
	if typeRowsErr != nil {
		return typeRowsErr
	}

	if len(typeOwner) > 0 {
		typeIDs := make([]string, 0, len(typeOwner))
		for id := range typeOwner {
			typeIDs = append(typeIDs, id)
		}
		optRows, err := r.pool.Query(ctx, `
SELECT id::text, addon_type_id::text, name, price_delta::text, is_active
FROM addon_options
WHERE addon_type_id::text = ANY($1)
ORDER BY position ASC, name ASC
`, typeIDs)
		if err != nil {
			r.logger.Printf("menu repo: load addon options error=%v", err)
			return err
		}
		err = func() error {
			defer optRows.Close()
			for optRows.Next() {
				var (
					o      domain.AddonOption
					typeID string
					delta  string
				)
				if err := optRows.Scan(&o.ID, &typeID, &o.Name, &delta, &o.IsActive); err != nil {
					return err
				}
				if o.PriceDelta, err = decimal.NewFromString(delta); err != nil {
					return fmt.Errorf("addon option %s price: %w", o.ID, err)
				}
				item := &items[index[typeOwner[typeID]]]
				for ti := range item.AddonTypes {
					if item.AddonTypes[ti].ID == typeID {
						item.AddonTypes[ti].Options = append(item.AddonTypes[ti].Options, o)
						break
					}
				}
			}
			return optRows.Err()
		}()
		if err != nil {
			return err
		}
	}

	offerRows, err := r.pool.Query(ctx, `
SELECT menu_item_id::text, is_enabled, is_percentage, discount_value::text
FROM item_offers
WHERE menu_item_id::text = ANY($1)
`, ids)
	if err != nil {
		r.logger.Printf("menu repo: load offers error=%v", err)
		return err
	}
	defer offerRows.Close()
	for offerRows.Next() {
		var (
			itemID string
			o      domain.Offer
			value  string
		)
		if err := offerRows.Scan(&itemID, &o.IsEnabled, &o.IsPercentage, &value); err != nil {
			return err
		}
		if o.DiscountValue, err = decimal.NewFromString(value); err != nil {
			return fmt.Errorf("offer for %s: %w", itemID, err)
		}
		items[index[itemID]].Offer = &o
	}
	return offerRows.Err()
}

// Create inserts the item, its addon types, options and offer in one
// transaction. Caller-provided ids are kept; empty ids are generated.
func (r *postgresRepo) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	out := item
	err = tx.QueryRow(ctx, `
INSERT INTO menu_items (id, category_id, name, description, image_url, base_price, is_price_based_on_request, is_active, is_available)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6::numeric, $7, $8, $9)
RETURNING id::text, created_at
`, item.ID, item.CategoryID, item.Name, item.Description, item.ImageURL, item.BasePrice.StringFixed(2),
		item.IsPriceBasedOnRequest, item.IsActive, item.IsAvailable).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("menu repo: create name=%s error=%v", item.Name, err)
		return nil, mapWriteErr(err)
	}

	out.AddonTypes = make([]domain.AddonType, len(item.AddonTypes))
	for ti, t := range item.AddonTypes {
		outType := t
		err := tx.QueryRow(ctx, `
INSERT INTO addon_types (id, menu_item_id, title, allows_multiple_options, is_selection_required, position)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
RETURNING id::text
`, t.ID, out.ID, t.Title, t.AllowsMultipleOptions, t.IsSelectionRequired, ti).Scan(&outType.ID)
		if err != nil {
			r.logger.Printf("menu repo: create addon type item=%s title=%s error=%v", out.ID, t.Title, err)
			return nil, mapWriteErr(err)
		}
		outType.Options = make([]domain.AddonOption, len(t.Options))
		for oi, o := range t.Options {
			outOpt := o
			err := tx.QueryRow(ctx, `
INSERT INTO addon_options (id, addon_type_id, name, price_delta, is_active, position)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4::numeric, $5, $6)
RETURNING id::text
`, o.ID, outType.ID, o.Name, o.PriceDelta.StringFixed(2), o.IsActive, oi).Scan(&outOpt.ID)
			if err != nil {
				r.logger.Printf("menu repo: create addon option type=%s name=%s error=%v", outType.ID, o.Name, err)
				return nil, mapWriteErr(err)
			}
			outType.Options[oi] = outOpt
		}
		out.AddonTypes[ti] = outType
	}

	if item.Offer != nil {
		if _, err := tx.Exec(ctx, `
INSERT INTO item_offers (menu_item_id, is_enabled, is_percentage, discount_value)
VALUES ($1, $2, $3, $4::numeric)
`, out.ID, item.Offer.IsEnabled, item.Offer.IsPercentage, item.Offer.DiscountValue.StringFixed(2)); err != nil {
			r.logger.Printf("menu repo: create offer item=%s error=%v", out.ID, err)
			return nil, mapWriteErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("menu repo: created id=%s name=%s types=%d", out.ID, out.Name, len(out.AddonTypes))
	return &out, nil
}

func (r *postgresRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE menu_items SET image_url = NULLIF($2, '') WHERE id = $1`, id, imageURL)
	if err != nil {
		r.logger.Printf("menu repo: update image id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetAvailability(ctx context.Context, id string, available bool) (*domain.MenuItem, error) {
	cmd, err := r.pool.Exec(ctx, `UPDATE menu_items SET is_available = $2 WHERE id = $1`, id, available)
	if err != nil {
		r.logger.Printf("menu repo: set availability id=%s error=%v", id, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	r.logger.Printf("menu repo: set availability id=%s available=%t", id, available)
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) SetOptionActive(ctx context.Context, itemID, optionID string, active bool) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE addon_options o
SET is_active = $3
FROM addon_types t
WHERE o.addon_type_id = t.id AND t.menu_item_id = $1 AND o.id = $2
`, itemID, optionID, active)
	if err != nil {
		r.logger.Printf("menu repo: set option active item=%s option=%s error=%v", itemID, optionID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}
