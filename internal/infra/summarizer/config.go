package summarizer

import (
	"fmt"
	"time"

	"vidbrief/pkg/config"
)

// Generation defaults. The model produces at most MaxTokens tokens per
// summary and sampling temperature is fixed per deployment.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 90 * time.Second
)

// Config holds the generation parameters shared by all summarizer adapters.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the API model identifier to use for summarization.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature is the sampling temperature for generation.
	Temperature float32

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %v", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfig loads the summarizer configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_MODEL: model identifier (default: gpt-4o-mini)
//   - SUMMARIZER_MAX_TOKENS: max output tokens (default: 2000)
//   - SUMMARIZER_TEMPERATURE: sampling temperature (default: 0.7)
//   - SUMMARIZER_TIMEOUT: per-call timeout (default: 90s)
//
// Returns an error if the resulting configuration is invalid (fail-closed).
func LoadConfig() (Config, error) {
	cfg := Config{
		Model:       config.GetEnvString("SUMMARIZER_MODEL", DefaultModel),
		MaxTokens:   config.GetEnvInt("SUMMARIZER_MAX_TOKENS", DefaultMaxTokens),
		Temperature: float32(config.GetEnvFloat("SUMMARIZER_TEMPERATURE", DefaultTemperature)),
		Timeout:     config.GetEnvDuration("SUMMARIZER_TIMEOUT", DefaultTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid summarizer configuration: %w", err)
	}
	return cfg, nil
}
