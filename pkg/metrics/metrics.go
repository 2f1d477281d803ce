package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dragon_roster"

var (
	registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	conflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejections_total",
		Help:      "Requests rejected by roster invariants, by kind.",
	}, []string{"kind"})

	lineupTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lineup_state_transitions_total",
		Help:      "Lineup state changes by target state.",
	}, []string{"state"})
)

func init() {
	registry.MustRegister(
		httpRequests,
		httpDuration,
		conflicts,
		lineupTransitions,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}

// Registry exposes the collector registry, mostly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// IncRejection counts a request refused with a validation, conflict or
// capacity error.
func IncRejection(kind string) {
	conflicts.WithLabelValues(kind).Inc()
}

// IncLineupTransition counts a lineup moving into state.
func IncLineupTransition(state string) {
	lineupTransitions.WithLabelValues(state).Inc()
}
