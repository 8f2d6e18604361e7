package metrics

import (
	"net/http"
	"strconv"
	"svim/config"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "svim"

// Metrics owns its registry so tests can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	checks          *prometheus.CounterVec
	checkDuration   prometheus.Histogram
	suggestions     prometheus.Histogram
	upstreamFailure *prometheus.CounterVec
}

func New(cfg *config.Config) *Metrics {
	constLabels := prometheus.Labels{"app": cfg.App.Name}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route pattern and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route pattern.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "availability_checks_total",
			Help:        "Availability lookups by terminal outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "availability_check_duration_seconds",
			Help:        "Wall time of a full availability lookup, upstream fetches included.",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		suggestions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "availability_suggestions_returned",
			Help:        "Number of alternative slots returned per resolved lookup.",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 3, 5, 10, 20},
		}),
		upstreamFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "store_failures_total",
			Help:        "Failed calls to the catalog and booking store by operation.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.checks,
		m.checkDuration,
		m.suggestions,
		m.upstreamFailure,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCheck(outcome string, elapsed time.Duration) {
	m.checks.WithLabelValues(outcome).Inc()
	m.checkDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSuggestions(count int) {
	m.suggestions.Observe(float64(count))
}

func (m *Metrics) StoreFailure(operation string) {
	m.upstreamFailure.WithLabelValues(operation).Inc()
}

// Registry exposes the underlying registry for assertions.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
