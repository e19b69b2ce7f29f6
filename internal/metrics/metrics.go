package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP holds the request-level metrics exposed on /metrics.
type HTTP struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewHTTP builds and registers the HTTP metrics under the given
// namespace.
func NewHTTP(namespace string, reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.inFlight)
	return m
}

// ObserveRequest records a completed request.
func (m *HTTP) ObserveRequest(method, route, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RequestStarted increments the in-flight gauge.
func (m *HTTP) RequestStarted() {
	m.inFlight.Inc()
}

// RequestFinished decrements the in-flight gauge.
func (m *HTTP) RequestFinished() {
	m.inFlight.Dec()
}
