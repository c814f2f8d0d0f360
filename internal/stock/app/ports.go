package app

import "context"

// StockStore reads and writes the shared per-product inventory count.
// The engine does not own the record's lifecycle, only these two calls.
type StockStore interface {
	GetStock(ctx context.Context, productID string) (int32, error)
	SetStock(ctx context.Context, productID string, stock int32) error
}
