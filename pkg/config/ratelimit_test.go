package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitConfig_Validate(t *testing.T) {
	valid := RateLimitConfig{
		Enabled:         true,
		RPS:             2,
		Burst:           5,
		IdleTTL:         10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}

	t.Run("valid", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("disabled skips checks", func(t *testing.T) {
		cfg := RateLimitConfig{Enabled: false}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("zero rps", func(t *testing.T) {
		cfg := valid
		cfg.RPS = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative burst", func(t *testing.T) {
		cfg := valid
		cfg.Burst = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero idle ttl", func(t *testing.T) {
		cfg := valid
		cfg.IdleTTL = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RATELIMIT_ENABLED", "RATELIMIT_RPS", "RATELIMIT_BURST",
		"RATELIMIT_IDLE_TTL", "RATELIMIT_CLEANUP_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, float64(2), cfg.RPS)
	assert.Equal(t, 5, cfg.Burst)
	assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
}

func TestLoadRateLimitConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_RPS", "-3")
	t.Setenv("RATELIMIT_BURST", "0")
	t.Setenv("RATELIMIT_IDLE_TTL", "1m")
	t.Setenv("RATELIMIT_CLEANUP_INTERVAL", "1m")

	cfg := LoadRateLimitConfig()

	// Broken limiter settings degrade to defaults instead of failing startup.
	assert.Equal(t, float64(2), cfg.RPS)
	assert.Equal(t, 5, cfg.Burst)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRateLimitConfig_FromEnvironment(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "true")
	t.Setenv("RATELIMIT_RPS", "10")
	t.Setenv("RATELIMIT_BURST", "20")
	t.Setenv("RATELIMIT_IDLE_TTL", "30m")
	t.Setenv("RATELIMIT_CLEANUP_INTERVAL", "2m")

	cfg := LoadRateLimitConfig()

	assert.Equal(t, float64(10), cfg.RPS)
	assert.Equal(t, 20, cfg.Burst)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL)
	assert.Equal(t, 2*time.Minute, cfg.CleanupInterval)
}
