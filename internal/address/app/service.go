package app

import (
	"context"
	"errors"
	"strings"

	"github.com/ecocart/storefront/internal/address/domain"
)

var ErrInvalidAddress = errors.New("address needs display text")

type Service struct {
	lookup   Lookup
	profiles ProfileStore
}

func NewService(lookup Lookup, profiles ProfileStore) *Service {
	return &Service{lookup: lookup, profiles: profiles}
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.lookup.Search(ctx, query)
}

// SaveDefault supersedes any prior default address for the user.
func (s *Service) SaveDefault(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	if strings.TrimSpace(addr.DisplayText) == "" {
		return ErrInvalidAddress
	}
	return s.profiles.SetDefaultAddress(ctx, userID, addr)
}

func (s *Service) DefaultFor(ctx context.Context, userID string) (domain.ShippingAddress, bool, error) {
	return s.profiles.GetDefaultAddress(ctx, userID)
}
