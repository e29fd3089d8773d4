package slo

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the application.
// Summarization requests spend most of their time waiting on the LLM, so
// latency targets are measured in seconds rather than milliseconds.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// LatencyP95SLO defines the target for 95th percentile latency in seconds
	LatencyP95SLO = 10.0

	// LatencyP99SLO defines the target for 99th percentile latency in seconds
	LatencyP99SLO = 30.0

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (1% = 0.01)
	ErrorRateSLO = 0.01
)

// SLO tracking metrics
// These gauges are updated periodically (e.g., every minute) based on recent measurements
// to track whether the service is meeting its SLO targets.
var (
	// SLOAvailability tracks the current availability ratio (0-1)
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOLatencyP95 tracks the current p95 latency in seconds
	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "Current p95 latency in seconds, target: 10",
		},
	)

	// SLOLatencyP99 tracks the current p99 latency in seconds
	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "Current p99 latency in seconds, target: 30",
		},
	)

	// SLOErrorRate tracks the current error rate ratio (0-1)
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.01",
		},
	)
)

// maxSamples bounds the latency sample buffer between flushes.
// At one summarization request per second this covers well over an hour.
const maxSamples = 4096

// Tracker accumulates request outcomes and latency samples between flushes.
// Observe is called per request from the HTTP layer; Flush recomputes the
// SLO gauges from the window and resets it.
type Tracker struct {
	mu       sync.Mutex
	total    int
	errors   int
	samples  []float64
	overflow bool
}

// NewTracker creates an empty SLO tracker.
func NewTracker() *Tracker {
	return &Tracker{
		samples: make([]float64, 0, 256),
	}
}

// Observe records a single request outcome. Responses with status >= 500
// count against availability and the error rate.
func (t *Tracker) Observe(status int, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if status >= 500 {
		t.errors++
	}

	if len(t.samples) < maxSamples {
		t.samples = append(t.samples, duration.Seconds())
	} else {
		t.overflow = true
	}
}

// Flush recomputes the SLO gauges from the accumulated window and resets it.
// A window with no requests leaves the gauges untouched.
func (t *Tracker) Flush() {
	t.mu.Lock()
	total := t.total
	errors := t.errors
	samples := t.samples
	t.total = 0
	t.errors = 0
	t.samples = make([]float64, 0, 256)
	t.overflow = false
	t.mu.Unlock()

	if total == 0 {
		return
	}

	availability := float64(total-errors) / float64(total)
	UpdateAvailability(availability)
	UpdateErrorRate(float64(errors) / float64(total))

	if len(samples) > 0 {
		sort.Float64s(samples)
		UpdateLatencyP95(quantile(samples, 0.95))
		UpdateLatencyP99(quantile(samples, 0.99))
	}
}

// quantile returns the q-th quantile of sorted samples using the
// nearest-rank method.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// StartFlusher runs Flush on the given interval until the context is done.
func (t *Tracker) StartFlusher(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			t.Flush()
		}
	}
}

// UpdateAvailability updates the availability SLO metric.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 updates the p95 latency SLO metric.
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 updates the p99 latency SLO metric.
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate updates the error rate SLO metric.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
