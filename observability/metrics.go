package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Portfolio analysis metrics
	AnalysisRunsTotal  prometheus.Counter
	AnalysisDuration   *prometheus.HistogramVec
	HoldingsAnalyzed   prometheus.Counter
	ImpactLabelsTotal  *prometheus.CounterVec
	FallbackItemsTotal *prometheus.CounterVec

	// Relevance filter metrics
	ArticlesScored    prometheus.Counter
	ArticlesDiscarded prometheus.Counter

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		AnalysisRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "analysis",
				Name:      "runs_total",
				Help:      "Total number of portfolio analysis runs",
			},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "analysis",
				Name:      "duration_seconds",
				Help:      "Duration of a full portfolio analysis in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"status"},
		),
		HoldingsAnalyzed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "analysis",
				Name:      "holdings_total",
				Help:      "Total number of holdings analyzed",
			},
		),
		ImpactLabelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "analysis",
				Name:      "impact_labels_total",
				Help:      "Total number of impact labels assigned",
			},
			[]string{"impact"},
		),
		FallbackItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "analysis",
				Name:      "fallback_items_total",
				Help:      "Total number of synthesized fallback news items",
			},
			[]string{"reason"},
		),
		ArticlesScored: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "relevance",
				Name:      "articles_scored_total",
				Help:      "Total number of articles run through the relevance filter",
			},
		),
		ArticlesDiscarded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "relevance",
				Name:      "articles_discarded_total",
				Help:      "Total number of articles discarded with relevance score 0",
			},
		),
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"breaker"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "portfolio_pulse",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"breaker"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics(reg prometheus.Registerer) *Metrics {
	globalMetrics = NewMetrics(reg)
	return globalMetrics
}

// GetMetrics returns the global metrics instance, initializing it with a
// private registry if needed so library use never panics on double-register.
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		globalMetrics = NewMetrics(prometheus.NewRegistry())
	}
	return globalMetrics
}

// Timer measures a duration from its creation time
type Timer struct {
	start time.Time
}

// NewTimer starts a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Seconds returns the elapsed time in seconds
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}

// RecordAnalysisRun records a completed portfolio analysis run
func (m *Metrics) RecordAnalysisRun(status string, seconds float64) {
	m.AnalysisRunsTotal.Inc()
	m.AnalysisDuration.WithLabelValues(status).Observe(seconds)
}

// RecordImpact records an assigned impact label
func (m *Metrics) RecordImpact(impact string) {
	m.HoldingsAnalyzed.Inc()
	m.ImpactLabelsTotal.WithLabelValues(impact).Inc()
}

// RecordFallbackItem records a synthesized fallback news item
func (m *Metrics) RecordFallbackItem(reason string) {
	m.FallbackItemsTotal.WithLabelValues(reason).Inc()
}

// RecordRelevance records a relevance filter decision
func (m *Metrics) RecordRelevance(discarded bool) {
	m.ArticlesScored.Inc()
	if discarded {
		m.ArticlesDiscarded.Inc()
	}
}

// RecordExternalAPIRequest records an external API request
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an external API call
func (m *Metrics) RecordExternalAPIDuration(service, operation string, seconds float64) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(seconds)
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// SetCircuitBreakerState sets the state gauge for a circuit breaker
func (m *Metrics) SetCircuitBreakerState(breaker string, state int) {
	m.CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(breaker string) {
	m.CircuitBreakerTrips.WithLabelValues(breaker).Inc()
}
