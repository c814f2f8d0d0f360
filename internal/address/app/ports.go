package app

import (
	"context"

	"github.com/ecocart/storefront/internal/address/domain"
)

// Lookup searches the external place index. Each call is an independent,
// finite result set; it is not restartable.
type Lookup interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
}

// ProfileStore keeps the single default shipping address per user.
type ProfileStore interface {
	GetDefaultAddress(ctx context.Context, userID string) (domain.ShippingAddress, bool, error)
	SetDefaultAddress(ctx context.Context, userID string, addr domain.ShippingAddress) error
}
