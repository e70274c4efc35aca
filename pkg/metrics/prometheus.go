package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Analysis metrics
	analyses         prometheus.Counter
	analysisErrors   *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	recordsFolded    prometheus.Counter
	recordsSkipped   prometheus.Counter
	unknownSKUItems  prometheus.Counter
	sellersRanked    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
// It panics if the collectors are already registered on the registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "salesrank",
		subsystem:        "analysis",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analyses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyses_total",
		Help:        "Total number of successful analyses",
		ConstLabels: m.constLabels,
	})

	m.analysisErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analysis_errors_total",
		Help:        "Total number of rejected analyses by error kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analysis_duration_milliseconds",
		Help:        "Histogram of analysis duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.recordsFolded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "purchase_records_folded_total",
		Help:        "Total number of purchase records attributed to a known seller",
		ConstLabels: m.constLabels,
	})

	m.recordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "purchase_records_skipped_total",
		Help:        "Total number of purchase records referencing an unknown seller",
		ConstLabels: m.constLabels,
	})

	m.unknownSKUItems = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unknown_sku_items_total",
		Help:        "Total number of purchase items whose sku has no product card",
		ConstLabels: m.constLabels,
	})

	m.sellersRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sellers_ranked",
		Help:        "Number of sellers in the most recent report",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// Analysis describes one finished analysis.
type Analysis struct {
	DurationMs      float64
	Sellers         int
	RecordsFolded   int
	RecordsSkipped  int
	UnknownSKUItems int
}

// RecordAnalysis records a successful analysis.
func (m *Manager) RecordAnalysis(a Analysis) {
	if !m.enabled {
		return
	}
	m.analyses.Inc()
	m.analysisDuration.Observe(a.DurationMs)
	m.recordsFolded.Add(float64(a.RecordsFolded))
	m.recordsSkipped.Add(float64(a.RecordsSkipped))
	m.unknownSKUItems.Add(float64(a.UnknownSKUItems))
	m.sellersRanked.Set(float64(a.Sellers))
}

// RecordAnalysisError counts a rejected analysis under kind.
func (m *Manager) RecordAnalysisError(kind string) {
	if !m.enabled {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.analysisErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// Default returns the process-wide manager registered on GetRegistry().
func Default() *Manager {
	return globalManager
}

// RecordAnalysis records a successful analysis on the global manager.
func RecordAnalysis(a Analysis) {
	globalManager.RecordAnalysis(a)
}

// RecordAnalysisError counts a rejected analysis on the global manager.
func RecordAnalysisError(kind string) {
	globalManager.RecordAnalysisError(kind)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method string, status int, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, status, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
