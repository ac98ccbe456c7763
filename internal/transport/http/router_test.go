package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"geotrack/internal/track"
	trackhandler "geotrack/internal/track/handler"
	trackmetrics "geotrack/internal/track/metrics"
	"geotrack/internal/track/service"
	"geotrack/internal/track/store/allowlist"
	"geotrack/internal/track/store/coordinate"
)

// RouterSuite exercises the full stack below HTTP: router, middleware,
// handlers, services, in-memory stores.
type RouterSuite struct {
	suite.Suite
	allow  *allowlist.InMemoryStore
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

var routerTestMetrics = trackmetrics.New()

func (s *RouterSuite) SetupTest() {
	s.allow = allowlist.NewInMemory()
	coords := coordinate.NewInMemory()

	ingestion, err := service.NewIngestion(s.allow, coords)
	s.Require().NoError(err)
	reporter, err := service.NewReport(coords)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := trackhandler.New(ingestion, reporter, logger, routerTestMetrics)
	s.router = NewRouter(h)
}

func (s *RouterSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) TestSubmitThenReport() {
	s.Require().NoError(s.allow.Add(context.Background(), "+5511988887777"))

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"Celular":"+5511988887777","Latitude":%f,"Longitude":-46.63}`, -23.55-float64(i))
		w := s.do(http.MethodPost, "/api/coordinates", body)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/report.json", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var views []track.DeviceView
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&views))
	s.Require().Len(views, 1)
	s.Equal("5511988887777", views[0].DeviceID)
	s.Require().Len(views[0].Points, 3)
	// Newest first: the last submission had the lowest latitude.
	s.Equal(-25.55, views[0].Points[0].Latitude)
	s.Equal(-23.55, views[0].Points[2].Latitude)
}

func (s *RouterSuite) TestSubmitOutcomes() {
	s.Require().NoError(s.allow.Add(context.Background(), "5511988887777"))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"authorized device", `{"Celular":"+5511988887777","Latitude":-23.55,"Longitude":-46.63}`, http.StatusOK},
		{"unlisted device", `{"Celular":"+5511900000001","Latitude":-23.55,"Longitude":-46.63}`, http.StatusForbidden},
		{"empty device id", `{"Celular":"","Latitude":-23.55,"Longitude":-46.63}`, http.StatusBadRequest},
		{"zero latitude", `{"Celular":"+5511988887777","Latitude":0,"Longitude":-46.63}`, http.StatusBadRequest},
		{"malformed body", `not json`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := s.do(http.MethodPost, "/api/coordinates", tc.body)
			s.Equal(tc.want, w.Code, w.Body.String())
		})
	}
}

func (s *RouterSuite) TestRequestIDEchoed() {
	w := s.do(http.MethodGet, "/api/report.json", "")
	s.NotEmpty(w.Header().Get("X-Request-Id"))
}

func (s *RouterSuite) TestMetricsEndpoint() {
	w := s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "geotrack_")
}

func TestHealthz(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coords := coordinate.NewInMemory()
	ingestion, err := service.NewIngestion(allowlist.NewInMemory(), coords)
	require.NoError(t, err)
	reporter, err := service.NewReport(coords)
	require.NoError(t, err)
	h := trackhandler.New(ingestion, reporter, logger, routerTestMetrics)

	t.Run("ok when all checks pass", func(t *testing.T) {
		router := NewRouter(h, HealthCheck{Name: "postgres", Check: func(context.Context) error { return nil }})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("degraded when a check fails", func(t *testing.T) {
		router := NewRouter(h, HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("down") }})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Contains(t, w.Body.String(), "redis")
	})
}
