// Package handler wires the tracker's HTTP endpoints to the ingestion and
// report services.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"geotrack/internal/track"
	"geotrack/internal/track/metrics"
	"geotrack/internal/track/models"
	"geotrack/internal/track/render"
	dErrors "geotrack/pkg/domain-errors"
	"geotrack/pkg/platform/httputil"
	"geotrack/pkg/requestcontext"
)

// Ingestion is the submission operation the handler depends on.
type Ingestion interface {
	Submit(ctx context.Context, sub models.CoordinateSubmission) error
}

// Reporter is the report operation the handler depends on.
type Reporter interface {
	BuildReport(ctx context.Context) ([]track.DeviceView, error)
	Location() *time.Location
}

// Handler exposes the coordinate and report endpoints.
type Handler struct {
	ingestion Ingestion
	reporter  Reporter
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a track handler with its dependencies.
func New(ingestion Ingestion, reporter Reporter, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		ingestion: ingestion,
		reporter:  reporter,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register mounts the track endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/coordinates", h.HandleSubmit)
	r.Get("/api/coordinates", h.HandleStatus)
	r.Get("/api/report", h.HandleReport)
	r.Get("/api/report.json", h.HandleReportJSON)
}

// HandleSubmit handles POST /api/coordinates.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	var sub models.CoordinateSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.metrics.IncrementSubmission(string(dErrors.CodeBadRequest))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return
	}

	if err := h.ingestion.Submit(ctx, sub); err != nil {
		code := dErrors.CodeOf(err)
		h.metrics.IncrementSubmission(string(code))
		h.metrics.ObserveSubmitLatency(time.Since(start))
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementSubmission("accepted")
	h.metrics.ObserveSubmitLatency(time.Since(start))
	h.logger.InfoContext(ctx, "coordinate stored",
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "coordinate received"})
}

// HandleStatus handles GET /api/coordinates, the human-facing liveness page.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Status(w); err != nil {
		h.logger.Error("status page render failed", "error", err)
	}
}

// HandleReport handles GET /api/report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	views, elapsed, err := h.buildReport(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Render to a buffer first so a template failure can still produce a
	// clean 500 instead of a half-written page.
	var buf bytes.Buffer
	generatedAt := requestcontext.Now(r.Context()).In(h.reporter.Location())
	if err := render.Report(&buf, views, generatedAt); err != nil {
		h.logger.ErrorContext(r.Context(), "report render failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "render report", err))
		return
	}

	h.logger.InfoContext(r.Context(), "report served",
		"request_id", requestcontext.RequestID(r.Context()),
		"devices", len(views),
		"duration_ms", elapsed.Milliseconds(),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleReportJSON handles GET /api/report.json, the machine-readable view.
func (h *Handler) HandleReportJSON(w http.ResponseWriter, r *http.Request) {
	views, _, err := h.buildReport(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if views == nil {
		views = []track.DeviceView{}
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) buildReport(ctx context.Context) ([]track.DeviceView, time.Duration, error) {
	start := time.Now()
	views, err := h.reporter.BuildReport(ctx)
	elapsed := time.Since(start)
	if err != nil {
		h.metrics.IncrementReport("error")
		return nil, elapsed, err
	}
	h.metrics.IncrementReport("ok")
	h.metrics.ObserveReportLatency(elapsed)
	h.metrics.SetReportDevices(len(views))
	return views, elapsed, nil
}
