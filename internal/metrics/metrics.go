// Package metrics exposes Prometheus metrics for the profile engine and
// its document store.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements profile.Recorder and docstore.Recorder.
type Collector struct {
	operations       *prometheus.CounterVec
	operationLat     *prometheus.HistogramVec
	storeCalls       *prometheus.CounterVec
	storeCallLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusmate_profile_operations_total",
			Help: "Profile engine operations by name and outcome.",
		}, []string{"op", "outcome"}),
		operationLat: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "focusmate_profile_operation_seconds",
			Help:    "Profile engine operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "focusmate_store_calls_total",
			Help: "Document store round trips by operation and outcome.",
		}, []string{"op", "outcome"}),
		storeCallLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "focusmate_store_call_seconds",
			Help:    "Document store round trip latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.operations,
		c.operationLat,
		c.storeCalls,
		c.storeCallLatency,
	)

	return c
}

// ObserveOperation records one engine operation.
func (c *Collector) ObserveOperation(op, outcome string, d time.Duration) {
	c.operations.WithLabelValues(op, outcome).Inc()
	c.operationLat.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveStoreCall records one store round trip.
func (c *Collector) ObserveStoreCall(op, outcome string, d time.Duration) {
	c.storeCalls.WithLabelValues(op, outcome).Inc()
	c.storeCallLatency.WithLabelValues(op).Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute returns a mux serving /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
