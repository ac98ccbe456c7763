// Package service implements the ingestion and reporting operations on top of
// the allow-list and coordinate stores.
package service

import (
	"context"
	"time"

	"geotrack/internal/track"
)

// CoordinateStore is the persistence the services depend on. Implementations
// must upsert on (device, sequence key) collisions and never reorder or drop
// samples.
type CoordinateStore interface {
	Append(ctx context.Context, deviceID string, latitude, longitude float64, storedAt time.Time) error
	ScanAll(ctx context.Context) ([]track.Sample, error)
}

// AllowList answers device membership. An error means the check itself
// failed; it must not be reported as a denial.
type AllowList interface {
	IsAuthorized(ctx context.Context, deviceID string) (bool, error)
}
