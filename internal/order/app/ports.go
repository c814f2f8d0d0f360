package app

import (
	"context"

	"github.com/ecocart/storefront/internal/order/domain"
	stockapp "github.com/ecocart/storefront/internal/stock/app"
)

type OrderRepo interface {
	InsertOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// StockSettler settles inventory after an order is durably recorded: the
// cleared cart lines return their holdings and the order takes its
// quantities. Its failures never undo the order.
type StockSettler interface {
	ReleaseOnRemoval(ctx context.Context, productID string, qty int32)
	FinalizeOnOrder(ctx context.Context, lines []stockapp.Line)
}

// CartClearer empties the session cart once submission succeeds.
type CartClearer interface {
	Clear()
}
