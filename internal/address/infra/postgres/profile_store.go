package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecocart/storefront/internal/address/domain"
)

// ProfileStore keeps one default shipping address row per user.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
  user_id text PRIMARY KEY,
  display_text text NOT NULL,
  lat double precision,
  lon double precision,
  updated_at timestamptz NOT NULL DEFAULT now()
);`)
	return err
}

func (s *ProfileStore) GetDefaultAddress(ctx context.Context, userID string) (domain.ShippingAddress, bool, error) {
	var addr domain.ShippingAddress
	err := s.pool.QueryRow(ctx,
		`SELECT display_text, lat, lon FROM profiles WHERE user_id = $1`, userID).
		Scan(&addr.DisplayText, &addr.Lat, &addr.Lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ShippingAddress{}, false, nil
	}
	if err != nil {
		return domain.ShippingAddress{}, false, fmt.Errorf("select profile: %w", err)
	}
	return addr, true, nil
}

func (s *ProfileStore) SetDefaultAddress(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO profiles (user_id, display_text, lat, lon, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE
SET display_text = EXCLUDED.display_text,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    updated_at = now()`,
		userID, addr.DisplayText, addr.Lat, addr.Lon)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
