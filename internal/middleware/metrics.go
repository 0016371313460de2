package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_auth_outcomes_total",
			Help: "Authentication operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// MetricsMiddleware records request counts and latencies. Routes are labelled by their
// template so that IDs do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthOutcome counts one sign-in, refresh, logout or OAuth attempt.
func RecordAuthOutcome(operation, outcome string) {
	authOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}
