// Package metrics exposes Prometheus metrics for generation runs and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "planet_randomizer"

// Run outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeArithmetic  = "arithmetic"
	OutcomeUnplaceable = "unplaceable"
	OutcomeError       = "error"
)

type Collector struct {
	gatherer prometheus.Gatherer

	runDuration      *prometheus.HistogramVec
	runsTotal        *prometheus.CounterVec
	forcedTotal      prometheus.Counter
	placementTries   prometheus.Histogram
	cacheRequests    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	streamsConnected prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

func NewWithRegistry(registry *prometheus.Registry) *Collector {
	m := &Collector{
		gatherer: registry,
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Time spent generating a system",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"outcome"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_runs_total",
				Help:      "Total number of generation runs",
			},
			[]string{"outcome"},
		),
		forcedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forced_placements_total",
				Help:      "Total number of bodies placed on a forced attempt",
			},
		),
		placementTries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "placement_reference_attempts",
				Help:      "Reference candidates tried per committed body",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 150},
			},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "System cache lookups by result",
			},
			[]string{"result"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent processing request",
			},
			[]string{"route", "method"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"route", "method", "status"},
		),
		streamsConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "streams_connected",
				Help:      "Open placement stream connections",
			},
		),
	}

	registry.MustRegister(
		m.runDuration,
		m.runsTotal,
		m.forcedTotal,
		m.placementTries,
		m.cacheRequests,
		m.requestDuration,
		m.requestsTotal,
		m.streamsConnected,
	)

	return m
}

// RecordRun records one generation run. attempts holds the reference
// attempts of each committed body.
func (m *Collector) RecordRun(outcome string, duration time.Duration, forced int, attempts []int) {
	if m == nil {
		return
	}
	m.runDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.forcedTotal.Add(float64(forced))
	for _, a := range attempts {
		m.placementTries.Observe(float64(a))
	}
}

func (m *Collector) RecordCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

func (m *Collector) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

func (m *Collector) StreamOpened() {
	if m != nil {
		m.streamsConnected.Inc()
	}
}

func (m *Collector) StreamClosed() {
	if m != nil {
		m.streamsConnected.Dec()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
