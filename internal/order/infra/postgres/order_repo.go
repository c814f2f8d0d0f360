package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecocart/storefront/internal/order/domain"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS orders (
  id text PRIMARY KEY,
  user_id text NOT NULL,
  status text NOT NULL,
  currency text NOT NULL,
  total_amount bigint NOT NULL,
  address_text text NOT NULL,
  address_lat double precision,
  address_lon double precision,
  created_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS order_lines (
  order_id text NOT NULL REFERENCES orders(id),
  product_id text NOT NULL,
  name text NOT NULL,
  unit_amount bigint NOT NULL,
  quantity integer NOT NULL,
  line_total_amount bigint NOT NULL
);
CREATE INDEX IF NOT EXISTS order_lines_order_id_idx ON order_lines(order_id);
CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders(user_id);`)
	return err
}

func (r *OrderRepo) execTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// InsertOrderTx writes the order header and its frozen lines as one unit.
func (r *OrderRepo) InsertOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	order.ID = uuid.NewString()

	err := r.execTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO orders (id, user_id, status, currency, total_amount, address_text, address_lat, address_lon)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`,
			order.ID, order.UserID, order.Status, order.Currency, order.TotalAmount,
			order.Address.DisplayText, order.Address.Lat, order.Address.Lon).
			Scan(&order.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, ln := range order.Lines {
			expected := ln.UnitAmount * int64(ln.Quantity)
			if ln.LineTotalAmount != expected {
				return fmt.Errorf("line %d: total mismatch", i)
			}

			_, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, name, unit_amount, quantity, line_total_amount)
VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID, ln.ProductID, ln.Name, ln.UnitAmount, ln.Quantity, ln.LineTotalAmount)
			if err != nil {
				return fmt.Errorf("insert line %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, status, currency, total_amount, address_text, address_lat, address_lon, created_at
FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Currency, &o.TotalAmount,
			&o.Address.DisplayText, &o.Address.Lat, &o.Address.Lon, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := r.linesFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *OrderRepo) linesFor(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT product_id, name, unit_amount, quantity, line_total_amount
FROM order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var ln domain.OrderLine
		if err := rows.Scan(&ln.ProductID, &ln.Name, &ln.UnitAmount, &ln.Quantity, &ln.LineTotalAmount); err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}
