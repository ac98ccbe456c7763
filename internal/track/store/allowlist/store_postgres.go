package allowlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"geotrack/internal/track"
)

// PostgresStore persists allow-list entries in PostgreSQL. Presence of the
// row is the whole entry; there is no payload beyond the key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed allow-list store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateSchema creates the allowed_devices table if it does not exist.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS allowed_devices (
			device_id  TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create allowed_devices schema: %w", err)
	}
	return nil
}

// Add provisions a device; adding an existing device is a no-op.
func (s *PostgresStore) Add(ctx context.Context, deviceID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO allowed_devices (device_id) VALUES ($1)
		ON CONFLICT (device_id) DO NOTHING`,
		track.NormalizeDeviceID(deviceID))
	if err != nil {
		return fmt.Errorf("add allowed device: %w", err)
	}
	return nil
}

// IsAuthorized reports whether the device is on the allow-list. A storage
// failure is returned as an error, never conflated with a denial.
func (s *PostgresStore) IsAuthorized(ctx context.Context, deviceID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM allowed_devices WHERE device_id = $1)`,
		track.NormalizeDeviceID(deviceID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check allow-list: %w", err)
	}
	return exists, nil
}
