package metadata

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetadataMetricsRecorder records metadata-fetch metrics. The interface
// exists so unit tests can inject a mock instead of Prometheus.
type MetadataMetricsRecorder interface {
	// RecordRequest records one metadata API call and its outcome.
	RecordRequest(success bool)

	// RecordDuration records the time taken by a successful metadata call.
	RecordDuration(duration time.Duration)
}

// PrometheusMetadataMetrics is the production MetadataMetricsRecorder.
type PrometheusMetadataMetrics struct {
	requestsCounter   *prometheus.CounterVec
	durationHistogram prometheus.Histogram
}

var (
	metadataMetricsInstance *PrometheusMetadataMetrics
	metadataMetricsOnce     sync.Once
)

// NewPrometheusMetadataMetrics creates the Prometheus-backed recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusMetadataMetrics() *PrometheusMetadataMetrics {
	metadataMetricsOnce.Do(func() {
		metadataMetricsInstance = &PrometheusMetadataMetrics{
			requestsCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "video_metadata_requests_total",
				Help: "Total number of YouTube metadata API calls by outcome",
			}, []string{"status"}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "video_metadata_duration_seconds",
				Help:    "Time taken to fetch video metadata from the YouTube Data API",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			}),
		}
	})
	return metadataMetricsInstance
}

// RecordRequest implements MetadataMetricsRecorder.RecordRequest
func (p *PrometheusMetadataMetrics) RecordRequest(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.requestsCounter.WithLabelValues(status).Inc()
}

// RecordDuration implements MetadataMetricsRecorder.RecordDuration
func (p *PrometheusMetadataMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
