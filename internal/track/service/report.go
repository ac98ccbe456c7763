package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"geotrack/internal/track"
	dErrors "geotrack/pkg/domain-errors"
	"geotrack/pkg/requestcontext"
)

var reportTracer = otel.Tracer("geotrack/internal/track/service")

// displayTimeLayout renders timestamps the way the report consumers expect.
const displayTimeLayout = "02/01/2006 15:04:05"

// missingTimeSentinel is shown when a sample has no stored timestamp. A bad
// row degrades its own cell, never the whole report.
const missingTimeSentinel = "N/A"

// ReportService turns the raw coordinate table into the per-device
// recent-history view.
type ReportService struct {
	coords CoordinateStore
	loc    *time.Location
	logger *slog.Logger
}

// ReportOption configures a ReportService.
type ReportOption func(*ReportService)

// WithReportLogger attaches a logger for scan-failure context.
func WithReportLogger(logger *slog.Logger) ReportOption {
	return func(s *ReportService) { s.logger = logger }
}

// NewReport constructs the report service. Display times are converted to
// the Brasília timezone; when the tzdata lookup fails the fixed UTC-3 offset
// is used instead (the zone has no DST in effect).
func NewReport(coords CoordinateStore, opts ...ReportOption) (*ReportService, error) {
	if coords == nil {
		return nil, fmt.Errorf("coordinate store is required")
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("-03", -3*60*60)
	}

	svc := &ReportService{
		coords: coords,
		loc:    loc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Location returns the display timezone, so renderers can stamp "generated
// at" in the same zone as the per-sample times.
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// BuildReport scans every sample, groups by device ascending, and keeps each
// device's most recent points, newest first.
func (s *ReportService) BuildReport(ctx context.Context) ([]track.DeviceView, error) {
	ctx, span := reportTracer.Start(ctx, "track.BuildReport")
	defer span.End()

	samples, err := s.coords.ScanAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "coordinate scan failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.Wrap(dErrors.CodeInternal, "scan samples", err)
	}

	byDevice := make(map[string][]track.Sample)
	for _, sample := range samples {
		byDevice[sample.DeviceID] = append(byDevice[sample.DeviceID], sample)
	}

	deviceIDs := make([]string, 0, len(byDevice))
	for id := range byDevice {
		deviceIDs = append(deviceIDs, id)
	}
	sort.Strings(deviceIDs)

	views := make([]track.DeviceView, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		group := byDevice[id]
		// Sequence keys invert time: ascending key order is newest first.
		sort.Slice(group, func(i, j int) bool {
			return group[i].SequenceKey < group[j].SequenceKey
		})
		if len(group) > track.ReportPointLimit {
			group = group[:track.ReportPointLimit]
		}

		points := make([]track.Point, 0, len(group))
		for _, sample := range group {
			points = append(points, track.Point{
				Latitude:      sample.Latitude,
				Longitude:     sample.Longitude,
				DisplayedTime: s.displayTime(sample.StoredAt),
			})
		}
		views = append(views, track.DeviceView{DeviceID: id, Points: points})
	}

	span.SetAttributes(
		attribute.Int("devices", len(views)),
		attribute.Int("samples", len(samples)),
	)
	return views, nil
}

func (s *ReportService) displayTime(storedAt time.Time) string {
	if storedAt.IsZero() {
		return missingTimeSentinel
	}
	return storedAt.In(s.loc).Format(displayTimeLayout)
}
