package hostapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the call lifecycle and
// the cancellation registry. It is safe for concurrent use; a nil collector
// records nothing.
type MetricsCollector struct {
	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	callsInFlight *prometheus.GaugeVec

	cancellationsTotal *prometheus.CounterVec
	pendingHandles     prometheus.Gauge

	unresolvedPlaceholders *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		callsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostapi_calls_total",
				Help: "Total number of operation calls by outcome (status code, canceled or error)",
			},
			[]string{"operation", "method", "outcome"},
		),
		callDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostapi_call_duration_seconds",
				Help:    "Duration of operation calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "method"},
		),
		callsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hostapi_calls_in_flight",
				Help: "Number of operation calls currently in flight",
			},
			[]string{"operation"},
		),
		cancellationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostapi_cancellations_total",
				Help: "Total number of pending calls canceled by the registry",
			},
			[]string{"operation", "reason"},
		),
		pendingHandles: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "hostapi_pending_handles",
				Help: "Current number of cancel handles held by the registry",
			},
		),
		unresolvedPlaceholders: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostapi_unresolved_placeholders_total",
				Help: "Total number of calls sent with unresolved path placeholders",
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostapi_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type", "operation"},
		),
	}
	if reg, ok := registry.(*prometheus.Registry); ok {
		mc.registry = reg
	}

	return mc
}

// RecordCall records call count by outcome and duration.
func (mc *MetricsCollector) RecordCall(operation, method, outcome string, duration time.Duration) {
	if mc == nil {
		return
	}

	mc.callsTotal.WithLabelValues(operation, method, outcome).Inc()
	mc.callDuration.WithLabelValues(operation, method).Observe(duration.Seconds())
}

// RecordCallStart increments in-flight gauge.
func (mc *MetricsCollector) RecordCallStart(operation string) {
	if mc == nil {
		return
	}

	mc.callsInFlight.WithLabelValues(operation).Inc()
}

// RecordCallEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordCallEnd(operation string) {
	if mc == nil {
		return
	}

	mc.callsInFlight.WithLabelValues(operation).Dec()
}

// RecordCancellation counts one pending call canceled for reason.
func (mc *MetricsCollector) RecordCancellation(operation, reason string) {
	if mc == nil {
		return
	}

	mc.cancellationsTotal.WithLabelValues(operation, reason).Inc()
}

// RecordTeardown counts the calls canceled by a teardown.
func (mc *MetricsCollector) RecordTeardown(count int) {
	if mc == nil || count == 0 {
		return
	}

	mc.cancellationsTotal.WithLabelValues("*", cancelReasonTeardown).Add(float64(count))
}

// RecordPendingHandles sets the registry size gauge.
func (mc *MetricsCollector) RecordPendingHandles(n int) {
	if mc == nil {
		return
	}

	mc.pendingHandles.Set(float64(n))
}

// RecordUnresolvedPlaceholder counts a call sent with a literal placeholder.
func (mc *MetricsCollector) RecordUnresolvedPlaceholder(operation string) {
	if mc == nil {
		return
	}

	mc.unresolvedPlaceholders.WithLabelValues(operation).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, operation string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, operation).Inc()
}

// GetRegistry exposes the underlying prometheus registry, or nil when the
// collector was built on a different Registerer.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	return mc.registry
}
