package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request metadata for the admin API.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	route = normalizeLabel(route)
	m.duration.WithLabelValues(route, method).Observe(duration.Seconds())
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// ImportMetrics records metadata for CSV import runs.
type ImportMetrics struct {
	duration *prometheus.HistogramVec
	rows     *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_duration_seconds",
		Help:    "Duration of CSV import runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_applied",
		Help: "Rows applied by CSV imports.",
	}, []string{"entity"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_failures",
		Help: "Rejected CSV import runs.",
	}, []string{"entity"})
	reg.MustRegister(duration, rows, failures)
	return &ImportMetrics{
		duration: duration,
		rows:     rows,
		failures: failures,
	}
}

// ObserveRun records the duration and applied row count for the named entity.
func (m *ImportMetrics) ObserveRun(entity string, rows int, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	entity = normalizeLabel(entity)
	m.duration.WithLabelValues(entity).Observe(duration.Seconds())
	m.rows.WithLabelValues(entity).Add(float64(rows))
}

// IncFailure increments the failure counter for the named entity.
func (m *ImportMetrics) IncFailure(entity string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(entity)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
