package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the track module.
type Metrics struct {
	// Submission outcomes by terminal result
	SubmissionOutcome *prometheus.CounterVec

	// Full ingestion latency
	SubmitLatency prometheus.Histogram

	// Report builds by result
	ReportOutcome *prometheus.CounterVec

	// Full report build latency, dominated by the table scan
	ReportLatency prometheus.Histogram

	// Devices present in the most recent report
	ReportDevices prometheus.Gauge
}

// New creates a Metrics instance with all track module metrics registered.
func New() *Metrics {
	return &Metrics{
		SubmissionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotrack_submissions_total",
			Help: "Total coordinate submissions by outcome",
		}, []string{"outcome"}), // outcome: "accepted" or the error code

		SubmitLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "geotrack_submit_duration_seconds",
			Help:    "Duration of coordinate submissions including storage",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		ReportOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "geotrack_report_builds_total",
			Help: "Total report builds by outcome",
		}, []string{"outcome"}), // outcome: "ok" or "error"

		ReportLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "geotrack_report_build_duration_seconds",
			Help:    "Duration of report builds including the full table scan",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		ReportDevices: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "geotrack_report_devices",
			Help: "Number of devices in the most recently built report",
		}),
	}
}

// IncrementSubmission records one submission outcome.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.SubmissionOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveSubmitLatency records the total submission duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}

// IncrementReport records one report build outcome.
func (m *Metrics) IncrementReport(outcome string) {
	if m != nil {
		m.ReportOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveReportLatency records the total report build duration.
func (m *Metrics) ObserveReportLatency(d time.Duration) {
	if m != nil {
		m.ReportLatency.Observe(d.Seconds())
	}
}

// SetReportDevices records the device count of the latest report.
func (m *Metrics) SetReportDevices(n int) {
	if m != nil {
		m.ReportDevices.Set(float64(n))
	}
}
