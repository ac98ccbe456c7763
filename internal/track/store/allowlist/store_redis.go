package allowlist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"geotrack/internal/track"
)

// Redis key prefix for allowed devices.
const allowedDeviceKeyPrefix = "allow:device:"

// RedisStore is a Redis-backed allow-list. Key existence is the membership
// test, mirroring the Postgres store's row existence.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed allow-list store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Add provisions a device. The value is a "1" marker; only the key matters.
func (s *RedisStore) Add(ctx context.Context, deviceID string) error {
	key := allowedDeviceKeyPrefix + track.NormalizeDeviceID(deviceID)
	if err := s.client.Set(ctx, key, "1", 0).Err(); err != nil {
		return fmt.Errorf("add allowed device: %w", err)
	}
	return nil
}

// IsAuthorized reports whether the device is on the allow-list.
func (s *RedisStore) IsAuthorized(ctx context.Context, deviceID string) (bool, error) {
	key := allowedDeviceKeyPrefix + track.NormalizeDeviceID(deviceID)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check allow-list: %w", err)
	}
	return n > 0, nil
}
