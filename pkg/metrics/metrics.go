package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcome labels.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	queries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmland_queries_total",
			Help: "Farmland queries by operation and outcome",
		},
		[]string{"op", "result"},
	)
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "farmland_query_duration_seconds",
			Help:    "Storage round-trip time of farmland queries",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"op"},
	)
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveQuery records one query outcome. Only successful queries are timed.
func ObserveQuery(op string, d time.Duration, result string) {
	if result == ResultOK {
		queryDuration.WithLabelValues(op).Observe(d.Seconds())
	}
	queries.WithLabelValues(op, result).Inc()
}

func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
