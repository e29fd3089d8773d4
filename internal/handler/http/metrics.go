package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vidbrief/internal/handler/http/responsewriter"
	"vidbrief/internal/observability/slo"
)

// Prometheus metrics
var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration tracks request latency. Buckets stretch to 120s
	// because summarization requests block on the LLM and routinely take
	// tens of seconds.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestsInFlight tracks the current number of HTTP requests being processed.
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// Business metrics
	videosSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videos_summarized_total",
			Help: "Total number of video summarization requests by outcome",
		},
		[]string{"status"},
	)
)

// normalizePath collapses variable path segments to keep metric label
// cardinality bounded. The API surface is small and static; only the
// swagger UI serves per-asset paths.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/*"
	}
	return path
}

// MetricsMiddleware records HTTP request metrics including duration, size, and
// status codes, and feeds each request outcome to the SLO tracker when one is
// provided. Path normalization keeps label cardinality bounded.
func MetricsMiddleware(tracker *slo.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Track in-flight requests
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			normalizedPath := normalizePath(r.URL.Path)

			// Record request size
			if r.ContentLength > 0 {
				httpRequestSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(r.ContentLength))
			}

			// Wrap response writer to capture status code and response size
			rw := responsewriter.Wrap(w)

			// Measure request duration
			start := time.Now()
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			status := strconv.Itoa(rw.StatusCode())
			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration.Seconds())
			httpResponseSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(rw.BytesWritten()))

			if tracker != nil {
				tracker.Observe(rw.StatusCode(), duration)
			}
		})
	}
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordVideoSummarized records the outcome of a summarization request.
// Status values: "success", "invalid_input", "no_content", "upstream_error",
// "generation_error".
func RecordVideoSummarized(status string) {
	videosSummarizedTotal.WithLabelValues(status).Inc()
}
