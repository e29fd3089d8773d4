package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "vidbrief/internal/handler/http"
	"vidbrief/pkg/config"
)

func benchConfig(burst int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled: true,
		RPS:     float64(burst),
		Burst:   burst,
		IdleTTL: 10 * time.Minute,
	}
}

// BenchmarkRateLimiter_Sequential は順次リクエストの性能を測定
func BenchmarkRateLimiter_Sequential(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(benchConfig(100))

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}
}

// BenchmarkRateLimiter_Parallel は並行リクエストの性能を測定
func BenchmarkRateLimiter_Parallel(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(benchConfig(1000))

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			// 異なるIPアドレスをシミュレート
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = "192.168.1." + string(rune(i%255)) + ":12345"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			i++
		}
	})
}

// BenchmarkRateLimiter_SameIP は同一IPからの連続リクエストの性能を測定
func BenchmarkRateLimiter_SameIP(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(benchConfig(10000))

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.100:12345"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}
}
