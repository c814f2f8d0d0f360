package adapter

import (
	"context"

	checkoutapp "github.com/ecocart/storefront/internal/checkout/app"
	identitydomain "github.com/ecocart/storefront/internal/identity/domain"
)

// SessionProvider is what the identity collaborator offers.
type SessionProvider interface {
	GetSession(ctx context.Context) (identitydomain.Identity, bool, error)
}

// IdentityReader adapts the identity provider to the gate's SessionReader.
type IdentityReader struct {
	provider SessionProvider
}

func NewIdentityReader(provider SessionProvider) *IdentityReader {
	return &IdentityReader{provider: provider}
}

func (r *IdentityReader) GetSession(ctx context.Context) (checkoutapp.Identity, bool, error) {
	id, ok, err := r.provider.GetSession(ctx)
	if err != nil || !ok {
		return checkoutapp.Identity{}, false, err
	}
	return checkoutapp.Identity{UserID: id.UserID, Email: id.Email}, true, nil
}
