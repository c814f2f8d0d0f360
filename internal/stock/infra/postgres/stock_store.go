package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StockStore reads and writes the stock column of the products table.
type StockStore struct {
	pool *pgxpool.Pool
}

func NewStockStore(pool *pgxpool.Pool) *StockStore {
	return &StockStore{pool: pool}
}

func (s *StockStore) GetStock(ctx context.Context, productID string) (int32, error) {
	var stock int32
	err := s.pool.QueryRow(ctx,
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("select stock: %w", err)
	}
	return stock, nil
}

func (s *StockStore) SetStock(ctx context.Context, productID string, stock int32) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET stock = $2 WHERE id = $1`, productID, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: product %s not found", productID)
	}
	return nil
}
