package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration, read once at startup.
type Config struct {
	Addr string

	// PostgresURL selects the durable stores. Empty means in-memory stores,
	// which only make sense for development and tests.
	PostgresURL string

	// Redis, when configured, backs the allow-list membership check.
	Redis RedisConfig

	// SeedAllowedDevices is a bootstrap aid: raw device ids provisioned into
	// the allow-list at startup. Real provisioning happens out-of-band.
	SeedAllowedDevices []string
}

// RedisConfig holds connection tuning for the optional Redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("GEOTRACK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:        addr,
		PostgresURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		SeedAllowedDevices: splitList(os.Getenv("GEOTRACK_ALLOWED_DEVICES")),
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
