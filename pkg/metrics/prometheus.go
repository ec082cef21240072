// Package metrics provides Prometheus metrics for the yogic games catalog service.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the catalog service.
type Manager struct {
	namespace   string
	subsystem   string
	constLabels map[string]string
	registry    prometheus.Registerer

	// Catalog Metrics - what is loaded and served
	catalogGames        prometheus.Gauge
	catalogLoads        prometheus.Counter
	catalogLoadFailures prometheus.Counter
	catalogLoadDuration prometheus.Histogram

	// Snapshot Metrics - publication of immutable catalog snapshots
	snapshotVersion   prometheus.Gauge
	snapshotLastUnix  prometheus.Gauge
	snapshotPublishes prometheus.Counter

	// View Metrics - derived view computation and caching
	viewQueries       *prometheus.CounterVec
	viewQueryDuration *prometheus.HistogramVec
	viewCacheHits     *prometheus.CounterVec
	viewCacheMisses   *prometheus.CounterVec
	viewCacheItems    prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Histogram buckets in milliseconds.
var (
	latencyBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250} //nolint:gochecknoglobals // read-only
	loadBuckets    = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000}         //nolint:gochecknoglobals // read-only
)

// ErrConfigured is returned by Configure once the global manager exists.
var ErrConfigured = errors.New("metrics already configured")

// Global metrics manager, created on first use or by Configure.
var (
	globalManager *Manager  //nolint:gochecknoglobals // intentional global for singleton metrics manager
	globalOnce    sync.Once //nolint:gochecknoglobals // guards globalManager
)

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Configure builds the global manager on the custom registry with opts. It
// must run before any metric is recorded; afterwards it returns
// ErrConfigured and the existing manager stays in place.
func Configure(opts ...Option) error {
	configured := false
	globalOnce.Do(func() {
		globalManager = NewManager(append(opts, WithRegistry(customRegistry))...)
		configured = true
	})
	if !configured {
		return ErrConfigured
	}
	return nil
}

func global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager(WithRegistry(customRegistry))
	})
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:   "yogic",
		subsystem:   "catalog",
		constLabels: map[string]string{},
		registry:    prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: latencyBuckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.catalogGames = m.gauge("games", "Number of games in the published snapshot")
	m.catalogLoads = m.counter("loads_total", "Total number of successful catalog loads")
	m.catalogLoadFailures = m.counter("load_failures_total", "Total number of failed catalog loads")
	m.catalogLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Catalog load and validation duration in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     loadBuckets,
	})

	m.snapshotVersion = m.gauge("snapshot_version", "Version of the currently published snapshot")
	m.snapshotLastUnix = m.gauge("snapshot_last_unix", "Unix timestamp of the last snapshot publish")
	m.snapshotPublishes = m.counter("snapshot_publishes_total", "Total number of snapshots published")

	m.viewQueries = m.counterVec("view_queries_total", "Total number of derived view computations by view", "view")
	m.viewQueryDuration = m.histogramVec("view_query_duration_milliseconds", "Derived view computation time in milliseconds", "view")
	m.viewCacheHits = m.counterVec("view_cache_hits_total", "View cache hits by view", "view")
	m.viewCacheMisses = m.counterVec("view_cache_misses_total", "View cache misses by view", "view")
	m.viewCacheItems = m.gauge("view_cache_items", "Number of memoized views currently cached")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component",
		"component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by HTTP endpoint",
		"endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Current heap allocation in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Current number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Most recent garbage collection pause in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
	})
}

// UpdateCatalogGames sets the number of games in the published snapshot.
func (m *Manager) UpdateCatalogGames(count int) { m.catalogGames.Set(float64(count)) }

// RecordCatalogLoad records a successful load and its duration.
func (m *Manager) RecordCatalogLoad(durationMs float64) {
	m.catalogLoads.Inc()
	m.catalogLoadDuration.Observe(durationMs)
}

// RecordCatalogLoadFailure increments the failed load counter.
func (m *Manager) RecordCatalogLoadFailure() { m.catalogLoadFailures.Inc() }

// RecordSnapshotPublished records a snapshot publication.
func (m *Manager) RecordSnapshotPublished(version uint64, at time.Time) {
	m.snapshotVersion.Set(float64(version))
	m.snapshotLastUnix.Set(float64(at.Unix()))
	m.snapshotPublishes.Inc()
}

// RecordViewQuery records one derived view computation.
func (m *Manager) RecordViewQuery(view string, durationMs float64) {
	m.viewQueries.WithLabelValues(view).Inc()
	m.viewQueryDuration.WithLabelValues(view).Observe(durationMs)
}

// RecordViewCacheHit increments the cache hit counter for view.
func (m *Manager) RecordViewCacheHit(view string) { m.viewCacheHits.WithLabelValues(view).Inc() }

// RecordViewCacheMiss increments the cache miss counter for view.
func (m *Manager) RecordViewCacheMiss(view string) { m.viewCacheMisses.WithLabelValues(view).Inc() }

// UpdateViewCacheItems sets the number of cached views.
func (m *Manager) UpdateViewCacheItems(count int) { m.viewCacheItems.Set(float64(count)) }

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error by component and type.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) { m.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(count int) { m.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) { m.systemGCPauseTime.Observe(pauseMs) }

// Global convenience functions backed by the default manager.

// UpdateCatalogGames sets the number of games in the published snapshot.
func UpdateCatalogGames(count int) { global().UpdateCatalogGames(count) }

// RecordCatalogLoad records a successful load and its duration.
func RecordCatalogLoad(durationMs float64) { global().RecordCatalogLoad(durationMs) }

// RecordCatalogLoadFailure increments the failed load counter.
func RecordCatalogLoadFailure() { global().RecordCatalogLoadFailure() }

// RecordSnapshotPublished records a snapshot publication.
func RecordSnapshotPublished(version uint64, at time.Time) {
	global().RecordSnapshotPublished(version, at)
}

// RecordViewQuery records one derived view computation.
func RecordViewQuery(view string, durationMs float64) {
	global().RecordViewQuery(view, durationMs)
}

// RecordViewCacheHit increments the cache hit counter for view.
func RecordViewCacheHit(view string) { global().RecordViewCacheHit(view) }

// RecordViewCacheMiss increments the cache miss counter for view.
func RecordViewCacheMiss(view string) { global().RecordViewCacheMiss(view) }

// UpdateViewCacheItems sets the number of cached views.
func UpdateViewCacheItems(count int) { global().UpdateViewCacheItems(count) }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	global().RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	global().RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error by HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	global().RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { global().UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) { global().UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { global().RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
