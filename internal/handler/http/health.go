// Package http provides HTTP handlers and middleware for the web application.
// It includes the video summarization endpoint, health check endpoints,
// metrics collection, rate limiting, and various middleware components.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"vidbrief/internal/resilience/circuitbreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// RateLimiterHealthInfo contains health information for the rate limiter.
type RateLimiterHealthInfo struct {
	ActiveClients int `json:"active_clients"` // Number of client buckets being tracked
}

// HealthHandler handles health check endpoint requests.
// It reports the state of the upstream circuit breakers and the rate limiter
// for operational monitoring.
type HealthHandler struct {
	Version string

	// Upstream circuit breakers (optional)
	SummarizerBreaker *circuitbreaker.CircuitBreaker
	MetadataBreaker   *circuitbreaker.CircuitBreaker

	// Rate limiter (optional)
	RateLimiter        *RateLimiter
	RateLimiterEnabled bool
}

// ServeHTTP returns the application health status.
// An open circuit breaker is reported as "degraded" rather than unhealthy:
// the service still accepts requests, and the breaker recovers on its own
// once the upstream stabilizes.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	if h.SummarizerBreaker != nil {
		checks["summarizer"] = breakerCheck(h.SummarizerBreaker)
	}
	if h.MetadataBreaker != nil {
		checks["metadata"] = breakerCheck(h.MetadataBreaker)
	}

	// レート制限チェック
	if h.RateLimiterEnabled && h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status: "healthy",
			Details: map[string]interface{}{
				"info": RateLimiterHealthInfo{
					ActiveClients: h.RateLimiter.EntryCount(),
				},
			},
		}
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// breakerCheck reports the state of a single circuit breaker.
func breakerCheck(cb *circuitbreaker.CircuitBreaker) CheckStatus {
	state := cb.State()
	details := map[string]interface{}{
		"name":  cb.Name(),
		"state": state.String(),
	}

	if state == gobreaker.StateOpen {
		return CheckStatus{
			Status:  "degraded",
			Message: "circuit breaker open, upstream calls are being rejected",
			Details: details,
		}
	}

	return CheckStatus{
		Status:  "healthy",
		Details: details,
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// The service is ready when it can reach its summarization provider, so
// readiness follows the summarizer circuit breaker.
type ReadyHandler struct {
	SummarizerBreaker *circuitbreaker.CircuitBreaker
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable when the
// summarizer breaker is open.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.SummarizerBreaker != nil && h.SummarizerBreaker.IsOpen() {
		http.Error(w, "summarizer unavailable: circuit breaker open", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
