package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

type fakeStockStore struct {
	mu     sync.Mutex
	stock  map[string]int32
	getErr error
	setErr error
}

func newFakeStockStore(stock map[string]int32) *fakeStockStore {
	return &fakeStockStore{stock: stock}
}

func (f *fakeStockStore) GetStock(ctx context.Context, productID string) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return 0, f.getErr
	}
	return f.stock[productID], nil
}

func (f *fakeStockStore) SetStock(ctx context.Context, productID string, stock int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.stock[productID] = stock
	return nil
}

func (f *fakeStockStore) at(productID string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[productID]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReserveOnQuantityChange(t *testing.T) {
	ctx := context.Background()

	t.Run("increase within stock -> remote decremented", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 5})
		r := NewReconciler(store, testLogger())

		if err := r.ReserveOnQuantityChange(ctx, "1", 1, 3); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got := store.at("1"); got != 3 {
			t.Fatalf("expected remote stock 3, got %d", got)
		}
	})

	t.Run("increase beyond stock -> ErrInsufficientStock, remote unchanged", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 5})
		r := NewReconciler(store, testLogger())

		err := r.ReserveOnQuantityChange(ctx, "1", 0, 6)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if got := store.at("1"); got != 5 {
			t.Fatalf("expected remote stock unchanged at 5, got %d", got)
		}
	})

	t.Run("decrease -> remote incremented", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 5})
		r := NewReconciler(store, testLogger())

		if err := r.ReserveOnQuantityChange(ctx, "1", 4, 1); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got := store.at("1"); got != 8 {
			t.Fatalf("expected remote stock 8, got %d", got)
		}
	})

	t.Run("no delta -> no remote calls", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 5})
		store.getErr = errors.New("unreachable")
		r := NewReconciler(store, testLogger())

		if err := r.ReserveOnQuantityChange(ctx, "1", 2, 2); err != nil {
			t.Fatalf("expected nil for zero delta, got %v", err)
		}
	})
}

func TestReleaseOnRemoval(t *testing.T) {
	ctx := context.Background()

	t.Run("returns quantity to the pool", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 3})
		r := NewReconciler(store, testLogger())

		r.ReleaseOnRemoval(ctx, "1", 2)
		if got := store.at("1"); got != 5 {
			t.Fatalf("expected remote stock 5, got %d", got)
		}
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 3})
		store.setErr = errors.New("unreachable")
		r := NewReconciler(store, testLogger())

		r.ReleaseOnRemoval(ctx, "1", 2) // must not panic or propagate
		if got := store.at("1"); got != 3 {
			t.Fatalf("expected remote stock unchanged at 3, got %d", got)
		}
	})
}

func TestFinalizeOnOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements each ordered line", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 10, "2": 4})
		r := NewReconciler(store, testLogger())

		r.FinalizeOnOrder(ctx, []Line{
			{ProductID: "1", Quantity: 3},
			{ProductID: "2", Quantity: 4},
		})

		if got := store.at("1"); got != 7 {
			t.Fatalf("expected stock 7 for product 1, got %d", got)
		}
		if got := store.at("2"); got != 0 {
			t.Fatalf("expected stock 0 for product 2, got %d", got)
		}
	})

	t.Run("oversold line clamps at zero", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 2})
		r := NewReconciler(store, testLogger())

		r.FinalizeOnOrder(ctx, []Line{{ProductID: "1", Quantity: 5}})
		if got := store.at("1"); got != 0 {
			t.Fatalf("expected stock clamped to 0, got %d", got)
		}
	})

	t.Run("store failure skips the line, never propagates", func(t *testing.T) {
		store := newFakeStockStore(map[string]int32{"1": 2})
		store.getErr = errors.New("unreachable")
		r := NewReconciler(store, testLogger())

		r.FinalizeOnOrder(ctx, []Line{{ProductID: "1", Quantity: 1}})
		store.getErr = nil
		if got := store.at("1"); got != 2 {
			t.Fatalf("expected stock unchanged at 2, got %d", got)
		}
	})
}
