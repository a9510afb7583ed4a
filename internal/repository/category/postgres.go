package category

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

const selectColumns = `id::text, key, name, is_active, created_at`

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	q := `SELECT ` + selectColumns + ` FROM categories`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("category repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Key, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM categories WHERE id = $1`, id)
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Category, error) {
	return r.getOne(ctx, `SELECT `+selectColumns+` FROM categories WHERE key = $1`, key)
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, arg).Scan(&c.ID, &c.Key, &c.Name, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: get arg=%s error=%v", arg, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, key, name, is_active)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4)
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    is_active = EXCLUDED.is_active
RETURNING ` + selectColumns

	var out domain.Category
	err := r.pool.QueryRow(ctx, q, c.ID, c.Key, c.Name, c.IsActive).
		Scan(&out.ID, &out.Key, &out.Name, &out.IsActive, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("category repo: upsert key=%s error=%v", c.Key, err)
		return nil, err
	}
	r.logger.Printf("category repo: upserted key=%s id=%s active=%t", out.Key, out.ID, out.IsActive)
	return &out, nil
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Category, error) {
	const q = `UPDATE categories SET is_active = $2 WHERE id = $1 RETURNING ` + selectColumns
	var out domain.Category
	err := r.pool.QueryRow(ctx, q, id, active).Scan(&out.ID, &out.Key, &out.Name, &out.IsActive, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: set active id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("category repo: set active id=%s active=%t", id, active)
	return &out, nil
}
