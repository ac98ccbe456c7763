package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"geotrack/internal/track"
	"geotrack/internal/track/models"
	dErrors "geotrack/pkg/domain-errors"
	"geotrack/pkg/requestcontext"
)

var ingestTracer = otel.Tracer("geotrack/internal/track/service")

// IngestionService validates submissions, gates them on the allow-list, and
// writes accepted samples to the coordinate store.
type IngestionService struct {
	allow  AllowList
	coords CoordinateStore
	logger *slog.Logger
}

// IngestionOption configures an IngestionService.
type IngestionOption func(*IngestionService)

// WithIngestionLogger attaches a logger for storage-failure context.
func WithIngestionLogger(logger *slog.Logger) IngestionOption {
	return func(s *IngestionService) { s.logger = logger }
}

// NewIngestion constructs the ingestion service.
func NewIngestion(allow AllowList, coords CoordinateStore, opts ...IngestionOption) (*IngestionService, error) {
	if allow == nil {
		return nil, fmt.Errorf("allow-list is required")
	}
	if coords == nil {
		return nil, fmt.Errorf("coordinate store is required")
	}

	svc := &IngestionService{
		allow:  allow,
		coords: coords,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Submit runs one submission through validate, authorize, and store. Each
// gate produces a terminal domain error; nothing is retried. The stored
// timestamp is the server's request time, never anything client-supplied.
func (s *IngestionService) Submit(ctx context.Context, sub models.CoordinateSubmission) error {
	ctx, span := ingestTracer.Start(ctx, "track.Submit")
	defer span.End()

	if err := sub.Validate(); err != nil {
		return err
	}

	deviceID := track.NormalizeDeviceID(sub.Celular)
	span.SetAttributes(attribute.String("device_id", deviceID))

	authorized, err := s.allow.IsAuthorized(ctx, deviceID)
	if err != nil {
		// Infrastructure failure during the check is a 500, not a 403:
		// a denial requires a lookup that actually completed.
		s.logger.ErrorContext(ctx, "allow-list check failed",
			"request_id", requestcontext.RequestID(ctx),
			"device_id", deviceID,
			"error", err,
		)
		return dErrors.Wrap(dErrors.CodeInternal, "check allow-list", err)
	}
	if !authorized {
		s.logger.WarnContext(ctx, "submission from unauthorized device",
			"request_id", requestcontext.RequestID(ctx),
			"device_id", deviceID,
		)
		return dErrors.New(dErrors.CodeForbidden, "device not authorized")
	}

	storedAt := requestcontext.Now(ctx).UTC()
	if err := s.coords.Append(ctx, deviceID, sub.Latitude, sub.Longitude, storedAt); err != nil {
		s.logger.ErrorContext(ctx, "sample write failed",
			"request_id", requestcontext.RequestID(ctx),
			"device_id", deviceID,
			"error", err,
		)
		return dErrors.Wrap(dErrors.CodeInternal, "store sample", err)
	}

	return nil
}
