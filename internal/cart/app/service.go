package app

import (
	"log/slog"
	"sync"

	"github.com/ecocart/storefront/internal/cart/domain"
)

// Store owns the session's cart. Every mutation updates memory and writes
// the snapshot under one lock, so no reader observes a half-applied cart.
// Stock checks happen upstream; the store itself never talks to the network.
type Store struct {
	mu    sync.Mutex
	cart  domain.Cart
	snaps SnapshotStore
	log   *slog.Logger
}

// NewStore loads the last snapshot before accepting mutations. An absent or
// unreadable snapshot starts an empty cart, never a hard failure.
func NewStore(snaps SnapshotStore, log *slog.Logger) *Store {
	cart, err := snaps.Load()
	if err != nil {
		log.Warn("cart snapshot unreadable, starting empty", slog.Any("err", err))
		cart = domain.Cart{}
	}
	return &Store{cart: cart, snaps: snaps, log: log}
}

// AddItem inserts a new line with quantity 1, or increments an existing one.
func (s *Store) AddItem(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == p.ID {
			s.cart.Lines[i].Quantity++
			s.persist()
			return
		}
	}

	s.cart.Lines = append(s.cart.Lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  1,
		ImageRef:  p.ImageRef,
		Category:  p.Category,
	})
	s.persist()
}

// SetQuantity sets the line's quantity, removing the line when qty <= 0.
func (s *Store) SetQuantity(productID string, qty int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		s.removeLocked(productID)
		s.persist()
		return
	}

	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines[i].Quantity = qty
			break
		}
	}
	s.persist()
}

// RemoveItem drops the line; no-op when the product is not in the cart.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.persist()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}
	s.persist()
}

func (s *Store) Count() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, len(s.cart.Lines))
	copy(lines, s.cart.Lines)
	return lines
}

// Quantity reports the current quantity for a product, 0 when absent.
func (s *Store) Quantity(productID string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ln := range s.cart.Lines {
		if ln.ProductID == productID {
			return ln.Quantity
		}
	}
	return 0
}

func (s *Store) removeLocked(productID string) {
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
			return
		}
	}
}

// persist writes the full snapshot. A failed write keeps the in-memory cart;
// losing durability beats losing the user's cart mid-session.
func (s *Store) persist() {
	if err := s.snaps.Save(s.cart); err != nil {
		s.log.Error("cart snapshot write failed", slog.Any("err", err))
	}
}
