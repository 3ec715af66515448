// Package prometheus exposes operational metrics for the dashboard engine
// and its HTTP surface.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters and histograms for snapshot fetches, derivation
// passes and HTTP traffic. It implements dashboard.Observer.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal      *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	snapshotRecords prometheus.Gauge

	recomputeDuration prometheus.Histogram
	filteredRecords   prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a private registry, so tests can
// construct any number of instances without collisions.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaboard",
			Name:      "fetch_total",
			Help:      "Snapshot fetches by outcome (ok, empty, fallback).",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aquaboard",
			Name:      "fetch_duration_seconds",
			Help:      "Time to fetch and normalize one snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aquaboard",
			Name:      "snapshot_records",
			Help:      "Permit records in the current snapshot.",
		}),
		recomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aquaboard",
			Name:      "recompute_duration_seconds",
			Help:      "Time to re-derive filters, aggregates and map points.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		filteredRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aquaboard",
			Name:      "filtered_records",
			Help:      "Permit records passing the active filter selection.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aquaboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.fetchTotal, m.fetchDuration, m.snapshotRecords,
		m.recomputeDuration, m.filteredRecords,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// FetchSettled records the outcome of one snapshot fetch.
func (m *Metrics) FetchSettled(outcome string, took time.Duration, records int) {
	m.fetchTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(took.Seconds())
	m.snapshotRecords.Set(float64(records))
}

// Recomputed records one derivation pass over the snapshot.
func (m *Metrics) Recomputed(took time.Duration, filtered int) {
	m.recomputeDuration.Observe(took.Seconds())
	m.filteredRecords.Set(float64(filtered))
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// Handler serves the scrape endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the private registry for test assertions.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
