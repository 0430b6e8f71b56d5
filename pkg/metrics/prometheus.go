// Package metrics provides Prometheus metrics for the bistro content API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the bistro service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Database Metrics - per fixed query
	queryLatency *prometheus.HistogramVec
	queryErrors  *prometheus.CounterVec

	// Connection Pool Metrics - fed from pgxpool.Stat
	poolMaxConns      prometheus.Gauge
	poolTotalConns    prometheus.Gauge
	poolIdleConns     prometheus.Gauge
	poolAcquiredConns prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bistro",
		subsystem:        "content",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Database Metrics - one fixed SQL statement per query name
	m.queryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "db_query_latency_milliseconds",
			Help:      "Database query latency in milliseconds by query name",
			Buckets:   m.histogramBuckets,
		},
		[]string{"query"},
	)

	m.queryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "db_query_errors_total",
			Help:      "Total number of failed database queries by query name",
		},
		[]string{"query"},
	)

	// Connection Pool Metrics - capacity and saturation indicators
	m.poolMaxConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "db_pool_max_conns",
		Help:      "Maximum number of connections allowed in the pool",
	})

	m.poolTotalConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "db_pool_total_conns",
		Help:      "Current number of connections in the pool",
	})

	m.poolIdleConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "db_pool_idle_conns",
		Help:      "Number of idle connections in the pool",
	})

	m.poolAcquiredConns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "db_pool_acquired_conns",
		Help:      "Number of connections currently checked out of the pool",
	})
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordQueryLatency records database query latency for a named query.
func RecordQueryLatency(query string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordQueryError increments the error counter for a named query.
func RecordQueryError(query string) {
	globalManager.queryErrors.WithLabelValues(query).Inc()
}

// Connection Pool Metrics Functions.

// UpdatePoolMaxConns sets the configured pool connection bound.
func UpdatePoolMaxConns(count int32) {
	globalManager.poolMaxConns.Set(float64(count))
}

// UpdatePoolTotalConns sets the current number of pooled connections.
func UpdatePoolTotalConns(count int32) {
	globalManager.poolTotalConns.Set(float64(count))
}

// UpdatePoolIdleConns sets the number of idle pooled connections.
func UpdatePoolIdleConns(count int32) {
	globalManager.poolIdleConns.Set(float64(count))
}

// UpdatePoolAcquiredConns sets the number of checked-out connections.
func UpdatePoolAcquiredConns(count int32) {
	globalManager.poolAcquiredConns.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
