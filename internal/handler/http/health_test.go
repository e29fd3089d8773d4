package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidbrief/internal/resilience/circuitbreaker"
	"vidbrief/pkg/config"
)

// trippedBreaker returns a circuit breaker driven into the open state.
func trippedBreaker(t *testing.T, name string) *circuitbreaker.CircuitBreaker {
	t.Helper()

	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	})

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("boom")
		})
	}

	if !cb.IsOpen() {
		t.Fatal("breaker did not open after repeated failures")
	}
	return cb
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	handler := &HealthHandler{
		Version:           "test-1.0.0",
		SummarizerBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		MetadataBreaker:   circuitbreaker.New(circuitbreaker.YouTubeAPIConfig()),
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.Version != "test-1.0.0" {
		t.Errorf("Version = %q, want test-1.0.0", resp.Version)
	}
	if resp.Checks["summarizer"].Status != "healthy" {
		t.Errorf("summarizer check = %q, want healthy", resp.Checks["summarizer"].Status)
	}
	if resp.Checks["metadata"].Status != "healthy" {
		t.Errorf("metadata check = %q, want healthy", resp.Checks["metadata"].Status)
	}
}

func TestHealthHandler_OpenBreakerReportsDegraded(t *testing.T) {
	handler := &HealthHandler{
		Version:           "test",
		SummarizerBreaker: trippedBreaker(t, "summarizer-test"),
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Degraded is a warning state: the endpoint still returns 200.
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	check := resp.Checks["summarizer"]
	if check.Status != "degraded" {
		t.Errorf("summarizer check = %q, want degraded", check.Status)
	}
	if check.Message == "" {
		t.Error("degraded check must carry a message")
	}
}

func TestHealthHandler_ReportsRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 2, Burst: 5, IdleTTL: time.Minute})
	handler := &HealthHandler{
		Version:            "test",
		RateLimiter:        rl,
		RateLimiterEnabled: true,
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if _, ok := resp.Checks["rate_limiter"]; !ok {
		t.Error("rate_limiter check missing from response")
	}
}

func TestHealthHandler_NoCacheHeaders(t *testing.T) {
	handler := &HealthHandler{Version: "test"}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if cc := rr.Header().Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestReadyHandler_Ready(t *testing.T) {
	handler := &ReadyHandler{
		SummarizerBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
	}

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "ready" {
		t.Errorf("body = %q, want ready", body)
	}
}

func TestReadyHandler_OpenBreakerNotReady(t *testing.T) {
	handler := &ReadyHandler{
		SummarizerBreaker: trippedBreaker(t, "ready-test"),
	}

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestReadyHandler_NoBreakerConfigured(t *testing.T) {
	handler := &ReadyHandler{}

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestLiveHandler(t *testing.T) {
	handler := &LiveHandler{}

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "alive" {
		t.Errorf("body = %q, want alive", body)
	}
}
