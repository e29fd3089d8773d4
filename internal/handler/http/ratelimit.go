package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vidbrief/internal/handler/http/respond"
	"vidbrief/pkg/config"
)

// limiterEntry pairs a token bucket with its last use time so idle
// buckets can be evicted.
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// RateLimiter implements IP address-based rate limiting middleware using
// per-client token buckets. Each client IP gets its own bucket refilled at
// the configured rate; requests beyond the burst capacity receive 429.
type RateLimiter struct {
	entries sync.Map // map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

// NewRateLimiter creates a new rate limiting middleware.
// rps is the sustained refill rate per client, burst the bucket capacity,
// and idleTTL how long an unused bucket survives before cleanup.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		idleTTL: cfg.IdleTTL,
	}
}

// Limit applies rate limiting to incoming requests based on client IP address.
// Returns 429 Too Many Requests if the rate limit is exceeded.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)

		if !rl.allow(ip) {
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path))
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow consumes one token from the client's bucket, creating the bucket on
// first sight.
func (rl *RateLimiter) allow(ip string) bool {
	val, _ := rl.entries.LoadOrStore(ip, &limiterEntry{
		limiter:  rate.NewLimiter(rl.rps, rl.burst),
		lastSeen: time.Now(),
	})
	entry := val.(*limiterEntry)

	entry.mu.Lock()
	entry.lastSeen = time.Now()
	entry.mu.Unlock()

	return entry.limiter.Allow()
}

// CleanupExpired removes buckets that have been idle longer than the TTL.
// Returns the number of entries removed.
func (rl *RateLimiter) CleanupExpired() int {
	cutoff := time.Now().Add(-rl.idleTTL)
	removed := 0

	rl.entries.Range(func(key, value interface{}) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()

		if idle {
			rl.entries.Delete(key)
			removed++
		}
		return true
	})

	return removed
}

// EntryCount returns the number of tracked client buckets.
func (rl *RateLimiter) EntryCount() int {
	count := 0
	rl.entries.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}
