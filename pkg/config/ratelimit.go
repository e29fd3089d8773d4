package config

import (
	"fmt"
	"log/slog"
	"time"
)

// RateLimitConfig contains the configuration for the per-client token-bucket
// rate limiter applied to incoming requests.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is applied at all
	Enabled bool

	// RPS is the sustained request rate allowed per client (tokens per second)
	RPS float64

	// Burst is the maximum burst size allowed per client
	Burst int

	// IdleTTL is how long a client's bucket may sit unused before it is evicted
	IdleTTL time.Duration

	// CleanupInterval is how often idle buckets are scanned for eviction
	CleanupInterval time.Duration
}

// Validate validates the rate limit configuration.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return fmt.Errorf("rps must be positive, got %v", c.RPS)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	if err := ValidatePositiveDuration(c.IdleTTL); err != nil {
		return fmt.Errorf("invalid idle TTL: %w", err)
	}
	if err := ValidatePositiveDuration(c.CleanupInterval); err != nil {
		return fmt.Errorf("invalid cleanup interval: %w", err)
	}
	return nil
}

// LoadRateLimitConfig loads rate limiting configuration from environment variables.
//
// Invalid values are replaced with safe defaults and logged as warnings rather
// than failing startup: a misconfigured limiter should degrade, not take the
// service down.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_RPS: Sustained requests per second per client (default: 2)
//   - RATELIMIT_BURST: Burst size per client (default: 5)
//   - RATELIMIT_IDLE_TTL: Idle bucket eviction age (default: 10m)
//   - RATELIMIT_CLEANUP_INTERVAL: Eviction scan interval (default: 5m)
func LoadRateLimitConfig() *RateLimitConfig {
	cfg := &RateLimitConfig{
		Enabled:         GetEnvBool("RATELIMIT_ENABLED", true),
		RPS:             GetEnvFloat("RATELIMIT_RPS", 2),
		Burst:           GetEnvInt("RATELIMIT_BURST", 5),
		IdleTTL:         GetEnvDuration("RATELIMIT_IDLE_TTL", 10*time.Minute),
		CleanupInterval: GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		slog.Warn("rate limit configuration invalid, applying defaults",
			slog.String("error", err.Error()))
		cfg.RPS = 2
		cfg.Burst = 5
		cfg.IdleTTL = 10 * time.Minute
		cfg.CleanupInterval = 5 * time.Minute
	}

	return cfg
}
