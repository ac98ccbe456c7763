package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"geotrack/internal/platform/config"
	"geotrack/internal/platform/httpserver"
	"geotrack/internal/platform/logger"
	"geotrack/internal/platform/postgres"
	platformredis "geotrack/internal/platform/redis"
	"geotrack/internal/track/handler"
	trackmetrics "geotrack/internal/track/metrics"
	"geotrack/internal/track/service"
	"geotrack/internal/track/store/allowlist"
	"geotrack/internal/track/store/coordinate"
	httptransport "geotrack/internal/transport/http"
)

// allowListStore is what main needs from an allow-list backend: the
// membership check plus Add for bootstrap seeding.
type allowListStore interface {
	service.AllowList
	Add(ctx context.Context, deviceID string) error
}

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal/track packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	var (
		coords service.CoordinateStore
		allow  allowListStore
		checks []httptransport.HealthCheck
	)

	if cfg.PostgresURL != "" {
		pool, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		coordStore := coordinate.NewPostgres(pool)
		allowStore := allowlist.NewPostgres(pool)
		if err := coordStore.CreateSchema(ctx); err != nil {
			log.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		if err := allowStore.CreateSchema(ctx); err != nil {
			log.Error("schema setup failed", "error", err)
			os.Exit(1)
		}

		coords = coordStore
		allow = allowStore
		checks = append(checks, httptransport.HealthCheck{
			Name:  "postgres",
			Check: pool.Ping,
		})
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		coords = coordinate.NewInMemory()
		allow = allowlist.NewInMemory()
	}

	if cfg.Redis.URL != "" {
		rdb, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		allow = allowlist.NewRedis(rdb.Client)
		checks = append(checks, httptransport.HealthCheck{
			Name:  "redis",
			Check: rdb.Health,
		})
	}

	for _, device := range cfg.SeedAllowedDevices {
		if err := allow.Add(ctx, device); err != nil {
			log.Error("allow-list seed failed", "device", device, "error", err)
			os.Exit(1)
		}
	}

	ingestion, err := service.NewIngestion(allow, coords, service.WithIngestionLogger(log))
	if err != nil {
		log.Error("ingestion service init failed", "error", err)
		os.Exit(1)
	}
	reporter, err := service.NewReport(coords, service.WithReportLogger(log))
	if err != nil {
		log.Error("report service init failed", "error", err)
		os.Exit(1)
	}

	trackHandler := handler.New(ingestion, reporter, log, trackmetrics.New())
	router := httptransport.NewRouter(trackHandler, checks...)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting geotrack", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
