// Package metrics provides Prometheus metrics for the arrows game
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	reconciliations       *prometheus.CounterVec
	reconciliationLatency prometheus.Histogram
	leaderboardEvictions  prometheus.Counter

	// Persistence metrics
	documentLoadFailures prometheus.Counter
	documentSaveFailures prometheus.Counter
	documentSaveLatency  prometheus.Histogram

	// Gauges derived from the document
	totalPlayers     prometheus.Gauge
	totalCoins       prometheus.Gauge
	leaderboardSize  prometheus.Gauge
	websocketClients prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "arrows",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reconciliations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconciliations_total",
		Help:      "Total number of reconciliation operations by kind",
	}, []string{"op"})

	m.reconciliationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconciliation_latency_milliseconds",
		Help:      "Histogram of full read-mutate-persist cycle latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.leaderboardEvictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_evictions_total",
		Help:      "Total number of entries truncated off the leaderboard",
	})

	m.documentLoadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_load_failures_total",
		Help:      "Total number of document loads that fell back to an empty document",
	})

	m.documentSaveFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_save_failures_total",
		Help:      "Total number of document saves that failed (soft failures)",
	})

	m.documentSaveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "document_save_latency_milliseconds",
		Help:      "Histogram of document save latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.totalPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Number of player records in the document",
	})

	m.totalCoins = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "coins_total",
		Help:      "Sum of all player coin balances",
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_size",
		Help:      "Current number of leaderboard entries",
	})

	m.websocketClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "websocket_clients",
		Help:      "Number of connected live-leaderboard clients",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordReconciliation increments the reconciliation counter for op.
func RecordReconciliation(op string) {
	globalManager.reconciliations.WithLabelValues(op).Inc()
}

// RecordReconciliationLatency records a full cycle latency in milliseconds.
func RecordReconciliationLatency(latencyMs float64) {
	globalManager.reconciliationLatency.Observe(latencyMs)
}

// RecordLeaderboardEvictions adds n truncated entries.
func RecordLeaderboardEvictions(n int) {
	if n > 0 {
		globalManager.leaderboardEvictions.Add(float64(n))
	}
}

// RecordDocumentLoadFailure increments the load-failure counter.
func RecordDocumentLoadFailure() {
	globalManager.documentLoadFailures.Inc()
}

// RecordDocumentSaveFailure increments the save-failure counter.
func RecordDocumentSaveFailure() {
	globalManager.documentSaveFailures.Inc()
}

// RecordDocumentSaveLatency records a save latency in milliseconds.
func RecordDocumentSaveLatency(latencyMs float64) {
	globalManager.documentSaveLatency.Observe(latencyMs)
}

// UpdateTotalPlayers sets the player record count.
func UpdateTotalPlayers(count int) {
	globalManager.totalPlayers.Set(float64(count))
}

// UpdateTotalCoins sets the total coin balance across players.
func UpdateTotalCoins(coins int64) {
	globalManager.totalCoins.Set(float64(coins))
}

// UpdateLeaderboardSize sets the current leaderboard entry count.
func UpdateLeaderboardSize(size int) {
	globalManager.leaderboardSize.Set(float64(size))
}

// UpdateWebsocketClients sets the connected client count.
func UpdateWebsocketClients(count int) {
	globalManager.websocketClients.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
