// Package metrics exposes Prometheus collectors for the HTTP API and the
// allocation engine.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Metrics groups the planner's collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	engineRuns     *prometheus.CounterVec
	engineDuration *prometheus.HistogramVec
	infeasible     *prometheus.GaugeVec
	cacheLookups   *prometheus.CounterVec
}

// New registers the collectors with reg. Collectors that are already
// registered are reused, so New may be called more than once per registry.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "planner",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		engineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Allocation engine runs by kind (baseline or scenario)",
		}, []string{"kind"}),
		engineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "planner",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Wall time of allocation engine runs",
			Buckets:   histogramBuckets,
		}, []string{"kind"}),
		infeasible: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "planner",
			Subsystem: "engine",
			Name:      "infeasible_projects",
			Help:      "Projects beyond the red line in the latest run",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Allocation cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
	}

	m.requestTotal = register(reg, m.requestTotal)
	m.requestLatency = register(reg, m.requestLatency)
	m.engineRuns = register(reg, m.engineRuns)
	m.engineDuration = register(reg, m.engineDuration)
	m.infeasible = register(reg, m.infeasible)
	m.cacheLookups = register(reg, m.cacheLookups)
	return m
}

// NewDefault registers with the process-wide default registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request. route is the mux pattern, not the
// raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "route": route, "status": strconv.Itoa(status)}
	m.requestTotal.With(labels).Inc()
	m.requestLatency.With(labels).Observe(d.Seconds())
}

// ObserveRun records one engine run and its infeasible count.
func (m *Metrics) ObserveRun(kind string, d time.Duration, infeasible int) {
	if m == nil {
		return
	}
	m.engineRuns.WithLabelValues(kind).Inc()
	m.engineDuration.WithLabelValues(kind).Observe(d.Seconds())
	m.infeasible.WithLabelValues(kind).Set(float64(infeasible))
}

// ObserveCache records a cache lookup outcome: "hit", "miss" or "error".
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
