package adapter

import (
	"context"

	addressapp "github.com/ecocart/storefront/internal/address/app"
	checkoutapp "github.com/ecocart/storefront/internal/checkout/app"
)

// AddressServiceReader adapts the address service to the gate's
// AddressReader.
type AddressServiceReader struct {
	svc *addressapp.Service
}

func NewAddressServiceReader(svc *addressapp.Service) *AddressServiceReader {
	return &AddressServiceReader{svc: svc}
}

func (r *AddressServiceReader) DefaultFor(ctx context.Context, userID string) (checkoutapp.Address, bool, error) {
	addr, ok, err := r.svc.DefaultFor(ctx, userID)
	if err != nil || !ok {
		return checkoutapp.Address{}, false, err
	}
	return checkoutapp.Address{
		DisplayText: addr.DisplayText,
		Lat:         addr.Lat,
		Lon:         addr.Lon,
	}, true, nil
}
