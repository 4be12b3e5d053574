package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestDuration tracks HTTP request duration by method, path, and status code.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// httpRequestTotal tracks total HTTP requests by method, path, and status code.
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// optimizeRunsTotal tracks optimization runs by outcome.
	optimizeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimize_runs_total",
			Help: "Total number of optimization runs",
		},
		[]string{"status"},
	)

	// optimizeRunDuration tracks optimization run duration.
	optimizeRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimize_run_duration_seconds",
			Help:    "Optimization run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// optimizeSheetsUsed tracks the sheet count of completed runs.
	optimizeSheetsUsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimize_sheets_used",
			Help:    "Number of sheets used per optimization run",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		},
	)
)

// prometheusMiddleware records request counts and latencies.
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start).Seconds()

		httpRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(elapsed)
	}
}
