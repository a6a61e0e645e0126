// Package metrics records API call and navigation counters for a console
// session with Prometheus collectors.
//
// The console has no scrape endpoint; when a metrics file is configured the
// registry is written once on exit in the text exposition format so a node
// exporter textfile collector can pick it up.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lasatanica/backoffice/internal/errors"
)

// Metrics holds every collector of a console session
type Metrics struct {
	// API client
	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	// Router
	Navigations *prometheus.CounterVec

	// Classified failures by error code
	Errors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		APIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_api_requests_total",
				Help: "Total number of API requests by outcome",
			},
			[]string{"method", "path", "outcome"},
		),
		APIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "path"},
		),
		Navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_navigations_total",
				Help: "Total number of navigations by route and outcome",
			},
			[]string{"route", "outcome"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_errors_total",
				Help: "Total number of classified errors by error code",
			},
			[]string{"error_code", "kind"},
		),
	}
}

// ObserveRequest records one finished API call. status is zero when the
// call never got a response.
func (m *Metrics) ObserveRequest(method, path string, status int, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = errors.KindOf(err).String()
		m.RecordError(err)
	}
	m.APIRequests.WithLabelValues(method, path, outcome).Inc()
	if status != 0 {
		m.APIDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	}
}

// ObserveNavigation records the outcome of one navigation
func (m *Metrics) ObserveNavigation(route, outcome string) {
	m.Navigations.WithLabelValues(route, outcome).Inc()
}

// RecordError counts a classified error. Unclassified errors are counted
// under "unknown".
func (m *Metrics) RecordError(err error) {
	if err == nil {
		return
	}
	e, ok := errors.As(err)
	if !ok {
		m.Errors.WithLabelValues("unknown", "unknown").Inc()
		return
	}
	m.Errors.WithLabelValues(string(e.Code), e.Kind.String()).Inc()
}
