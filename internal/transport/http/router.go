// Package httptransport assembles the service's HTTP surface: the track
// endpoints plus the operational ones.
package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	trackhandler "geotrack/internal/track/handler"
	"geotrack/pkg/platform/httputil"
	"geotrack/pkg/platform/middleware/requestid"
	"geotrack/pkg/platform/middleware/requesttime"
)

// HealthCheck names a backend and how to ping it.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter wires all endpoints and the shared middleware chain.
func NewRouter(h *trackhandler.Handler, checks ...HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	h.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(checks))

	return r
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failing := make([]string, 0)
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				failing = append(failing, c.Name)
			}
		}
		if len(failing) > 0 {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "degraded",
				"failing": failing,
			})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
