package http

import (
	"context"
	"log/slog"
	"time"
)

// StartRateLimitCleanup starts a background loop that periodically evicts
// idle client buckets from the rate limiter.
//
// This prevents unbounded memory growth: every distinct client IP creates a
// token bucket, and without eviction the map only ever grows.
//
// The loop stops gracefully when the context is cancelled (e.g., during
// server shutdown).
func StartRateLimitCleanup(ctx context.Context, limiter *RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return

		case <-ticker.C:
			removed := limiter.CleanupExpired()

			slog.Debug("rate limit cleanup completed",
				slog.Int("entries_removed", removed),
				slog.Int("entries_remaining", limiter.EntryCount()))
		}
	}
}
