// Package metrics provides Prometheus metrics for the catalog service
package metrics

import (
	"strconv"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProviderSet is metrics providers.
var ProviderSet = wire.NewSet(New)

// Metrics contains the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	remoteRequestsTotal   *prometheus.CounterVec
	remoteRequestDuration *prometheus.HistogramVec
	rankingWritesTotal    prometheus.Counter
	rankedMovies          prometheus.Gauge
	requestsTotal         *prometheus.CounterVec
}

// New creates a registry with Go runtime collectors and the service metrics
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}

	m.remoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topmovies_remote_requests_total",
			Help: "Total number of requests to the remote movie database",
		},
		[]string{"endpoint", "outcome"}, // outcome: ok, unavailable, incomplete
	)
	m.remoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topmovies_remote_request_duration_seconds",
			Help:    "Time taken by remote movie database requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"endpoint"},
	)
	m.rankingWritesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topmovies_ranking_writes_total",
			Help: "Total number of ranking recomputations written back to storage",
		},
	)
	m.rankedMovies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "topmovies_ranked_movies",
			Help: "Number of movies ranked by the last listing",
		},
	)
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topmovies_http_requests_total",
			Help: "Total number of handled API operations",
		},
		[]string{"operation", "code"},
	)

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.remoteRequestsTotal,
		m.remoteRequestDuration,
		m.rankingWritesTotal,
		m.rankedMovies,
		m.requestsTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry returns the registry to expose on /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRemote records one remote movie database call
func (m *Metrics) ObserveRemote(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remoteRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.remoteRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RankingsWritten records a ranking write-back covering n movies
func (m *Metrics) RankingsWritten(n int) {
	if m == nil {
		return
	}
	m.rankingWritesTotal.Inc()
	m.rankedMovies.Set(float64(n))
}

// ObserveRequest records one API operation and its HTTP status code
func (m *Metrics) ObserveRequest(operation string, code int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}
