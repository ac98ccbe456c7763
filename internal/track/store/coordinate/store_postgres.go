package coordinate

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"geotrack/internal/track"
)

// PostgresStore persists samples in PostgreSQL. The composite primary key
// reproduces the partition/row-key layout: device id groups, sequence key
// orders most-recent-first within the group.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed coordinate store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateSchema creates the coordinates table if it does not exist.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS coordinates (
			device_id    TEXT NOT NULL,
			sequence_key TEXT NOT NULL,
			latitude     DOUBLE PRECISION NOT NULL,
			longitude    DOUBLE PRECISION NOT NULL,
			stored_at    TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (device_id, sequence_key)
		)`)
	if err != nil {
		return fmt.Errorf("create coordinates schema: %w", err)
	}
	return nil
}

// Append upserts one sample. A conflict on (device_id, sequence_key) means
// two submissions landed on the same tick; the later write wins.
func (s *PostgresStore) Append(ctx context.Context, deviceID string, latitude, longitude float64, storedAt time.Time) error {
	deviceID = track.NormalizeDeviceID(deviceID)
	key, err := track.SequenceKey(storedAt)
	if err != nil {
		return fmt.Errorf("sequence key: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO coordinates (device_id, sequence_key, latitude, longitude, stored_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (device_id, sequence_key)
		DO UPDATE SET latitude = EXCLUDED.latitude,
		              longitude = EXCLUDED.longitude,
		              stored_at = EXCLUDED.stored_at`,
		deviceID, key, latitude, longitude, storedAt)
	if err != nil {
		return fmt.Errorf("append sample: %w", err)
	}
	return nil
}

// ScanAll returns every stored sample.
func (s *PostgresStore) ScanAll(ctx context.Context) ([]track.Sample, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT device_id, sequence_key, latitude, longitude, stored_at
		FROM coordinates`)
	if err != nil {
		return nil, fmt.Errorf("scan samples: %w", err)
	}
	defer rows.Close()

	var out []track.Sample
	for rows.Next() {
		var sample track.Sample
		if err := rows.Scan(&sample.DeviceID, &sample.SequenceKey, &sample.Latitude, &sample.Longitude, &sample.StoredAt); err != nil {
			return nil, fmt.Errorf("scan sample row: %w", err)
		}
		out = append(out, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan samples: %w", err)
	}
	return out, nil
}
