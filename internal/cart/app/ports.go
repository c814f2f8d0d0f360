package app

import (
	"github.com/ecocart/storefront/internal/cart/domain"
)

// SnapshotStore is the client durable storage the cart survives reloads in.
// Load is called once before any mutation is accepted; Save after every one.
type SnapshotStore interface {
	Load() (domain.Cart, error)
	Save(cart domain.Cart) error
}
