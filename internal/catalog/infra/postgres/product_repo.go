package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecocart/storefront/internal/catalog/app"
	"github.com/ecocart/storefront/internal/catalog/domain"
)

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// EnsureSchema creates the products table when absent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
  id text PRIMARY KEY,
  name text NOT NULL,
  price_amount bigint NOT NULL,
  currency text NOT NULL,
  image_ref text NOT NULL DEFAULT '',
  category text NOT NULL DEFAULT '',
  stock integer NOT NULL DEFAULT 0,
  created_at timestamptz NOT NULL DEFAULT now(),
  updated_at timestamptz NOT NULL DEFAULT now()
);`)
	return err
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO products (id, name, price_amount, currency, image_ref, category, stock)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, price_amount, currency, image_ref, category, stock, created_at, updated_at`,
		p.ID, p.Name, p.Price.Amount, p.Price.Currency, p.ImageRef, p.Category, p.Stock)

	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, price_amount, currency, image_ref, category, stock, created_at, updated_at
FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) List(ctx context.Context, limit int) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, name, price_amount, currency, image_ref, category, stock, created_at, updated_at
FROM products ORDER BY created_at, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price.Amount, &p.Price.Currency,
		&p.ImageRef, &p.Category, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
