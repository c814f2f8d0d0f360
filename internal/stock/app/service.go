package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Policy documents the reconciliation guarantee. Only best-effort is
// implemented: the read-modify-write below is not isolated against
// concurrent buyers, and the design accepts that. Strict is reserved for a
// future version-stamped StockRecord.
type Policy string

const (
	PolicyBestEffort Policy = "best-effort"
	PolicyStrict     Policy = "strict"
)

// Line is one ordered product-quantity pair handed to FinalizeOnOrder.
type Line struct {
	ProductID string
	Quantity  int32
}

// Reconciler adjusts remote inventory as items enter and leave the cart and
// when an order is confirmed.
type Reconciler struct {
	store  StockStore
	policy Policy
	log    *slog.Logger

	maxConcurrent int
}

func NewReconciler(store StockStore, log *slog.Logger) *Reconciler {
	return &Reconciler{
		store:         store,
		policy:        PolicyBestEffort,
		log:           log,
		maxConcurrent: 10,
	}
}

func (r *Reconciler) Policy() Policy { return r.policy }

// ReserveOnQuantityChange applies the quantity delta to remote stock. When
// the delta would push stock negative it returns ErrInsufficientStock and
// leaves the remote count unchanged; the caller must not apply the cart
// mutation in that case.
func (r *Reconciler) ReserveOnQuantityChange(ctx context.Context, productID string, oldQty, newQty int32) error {
	delta := newQty - oldQty
	if delta == 0 {
		return nil
	}

	stock, err := r.store.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("read stock for %s: %w", productID, err)
	}

	if stock-delta < 0 {
		return ErrInsufficientStock
	}

	if err := r.store.SetStock(ctx, productID, stock-delta); err != nil {
		return fmt.Errorf("write stock for %s: %w", productID, err)
	}
	return nil
}

// ReleaseOnRemoval returns the removed quantity to the pool. Failures are
// logged and swallowed: the cart removal proceeds regardless.
func (r *Reconciler) ReleaseOnRemoval(ctx context.Context, productID string, qty int32) {
	stock, err := r.store.GetStock(ctx, productID)
	if err != nil {
		r.log.Warn("stock release read failed",
			slog.String("product_id", productID), slog.Any("err", err))
		return
	}

	if err := r.store.SetStock(ctx, productID, stock+qty); err != nil {
		r.log.Warn("stock release write failed",
			slog.String("product_id", productID), slog.Any("err", err))
	}
}

// FinalizeOnOrder decrements remote stock for each ordered line. The order
// is already recorded as confirmed when this runs, so a per-line failure is
// a reconciliation concern: it is logged and skipped, never propagated.
func (r *Reconciler) FinalizeOnOrder(ctx context.Context, lines []Line) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrent)

	for _, ln := range lines {
		ln := ln
		g.Go(func() error {
			stock, err := r.store.GetStock(ctx, ln.ProductID)
			if err != nil {
				r.log.Warn("stock finalize read failed",
					slog.String("product_id", ln.ProductID), slog.Any("err", err))
				return nil
			}

			next := stock - ln.Quantity
			if next < 0 {
				next = 0
			}
			if err := r.store.SetStock(ctx, ln.ProductID, next); err != nil {
				r.log.Warn("stock finalize write failed",
					slog.String("product_id", ln.ProductID), slog.Any("err", err))
			}
			return nil
		})
	}

	_ = g.Wait()
}
