package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Composition metrics
	Compositions       prometheus.Counter
	PresentationLength prometheus.Gauge
	AdSlotsEmitted     prometheus.Gauge

	// Module store metrics
	ModuleToggles   prometheus.Counter
	ModuleReorders  prometheus.Counter
	PersistFailures prometheus.Counter
	PersistRetries  prometheus.Counter

	// Entitlement metrics
	EntitlementRefreshes *prometheus.CounterVec

	// Ad gate metrics
	AdPresentations *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		Compositions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_compositions_total",
				Help: "Total number of composition passes",
			},
		),
		PresentationLength: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_presentation_items",
				Help: "Items in the current presentation sequence",
			},
		),
		AdSlotsEmitted: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_presentation_ad_slots",
				Help: "Ad slots in the current presentation sequence",
			},
		),

		ModuleToggles: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_module_toggles_total",
				Help: "Total number of module enable/disable toggles",
			},
		),
		ModuleReorders: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_module_reorders_total",
				Help: "Total number of module reorder operations",
			},
		),
		PersistFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_persist_failures_total",
				Help: "Total number of failed configuration writes",
			},
		),
		PersistRetries: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "engine_persist_retries_total",
				Help: "Total number of configuration write retries",
			},
		),

		EntitlementRefreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_entitlement_refreshes_total",
				Help: "Total number of entitlement refresh attempts",
			},
			[]string{"status"},
		),

		AdPresentations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_ad_presentations_total",
				Help: "Total number of rewarded-ad presentations",
			},
			[]string{"outcome"},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "engine_uptime_seconds",
				Help: "Engine uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordComposition records one composition pass and its output shape
func (m *Metrics) RecordComposition(items, adSlots int) {
	m.Compositions.Inc()
	m.PresentationLength.Set(float64(items))
	m.AdSlotsEmitted.Set(float64(adSlots))
}

// RecordEntitlementRefresh records a refresh attempt
func (m *Metrics) RecordEntitlementRefresh(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.EntitlementRefreshes.WithLabelValues(status).Inc()
}

// RecordAdPresentation records a rewarded-ad outcome
func (m *Metrics) RecordAdPresentation(outcome string) {
	m.AdPresentations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}
