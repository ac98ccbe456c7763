// Package coordinate persists GPS samples keyed by device and
// reverse-chronological sequence key.
package coordinate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"geotrack/internal/track"
)

// InMemoryStore keeps samples in process memory. It exists for development
// and tests; durability comes from the Postgres store.
type InMemoryStore struct {
	mu sync.RWMutex
	// samples[deviceID][sequenceKey]
	samples map[string]map[string]track.Sample
}

// NewInMemory constructs an empty in-memory coordinate store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{samples: make(map[string]map[string]track.Sample)}
}

// Append upserts one sample keyed by (device, sequence key). Writing the same
// tick twice overwrites the previous sample.
func (s *InMemoryStore) Append(_ context.Context, deviceID string, latitude, longitude float64, storedAt time.Time) error {
	deviceID = track.NormalizeDeviceID(deviceID)
	key, err := track.SequenceKey(storedAt)
	if err != nil {
		return fmt.Errorf("sequence key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	device := s.samples[deviceID]
	if device == nil {
		device = make(map[string]track.Sample)
		s.samples[deviceID] = device
	}
	device[key] = track.Sample{
		DeviceID:    deviceID,
		SequenceKey: key,
		Latitude:    latitude,
		Longitude:   longitude,
		StoredAt:    storedAt,
	}
	return nil
}

// ScanAll returns every stored sample. Ordering across devices is undefined;
// callers order per device by sequence key.
func (s *InMemoryStore) ScanAll(_ context.Context) ([]track.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []track.Sample
	for _, device := range s.samples {
		for _, sample := range device {
			out = append(out, sample)
		}
	}
	return out, nil
}
