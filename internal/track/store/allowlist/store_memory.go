// Package allowlist answers whether a device may submit coordinates.
// Membership is keyed by normalized phone number; entries are provisioned
// out-of-band and read-only from the request path.
package allowlist

import (
	"context"
	"sync"

	"geotrack/internal/track"
)

// InMemoryStore keeps the allow-list in process memory, for development and
// tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	devices map[string]struct{}
}

// NewInMemory constructs an empty in-memory allow-list.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{devices: make(map[string]struct{})}
}

// Add provisions a device. Ids are normalized before storage so lookups with
// or without a leading "+" agree.
func (s *InMemoryStore) Add(_ context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[track.NormalizeDeviceID(deviceID)] = struct{}{}
	return nil
}

// IsAuthorized reports whether the device is on the allow-list.
func (s *InMemoryStore) IsAuthorized(_ context.Context, deviceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.devices[track.NormalizeDeviceID(deviceID)]
	return ok, nil
}
