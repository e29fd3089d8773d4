// Package config loads and validates the application configuration.
// Configuration comes from environment variables, optionally overlaid by a
// YAML policy file for the operational knobs (CORS, rate limits, body cap).
// Validation is fail-fast: the process refuses to start with an unusable
// configuration instead of failing on the first request.
package config

import (
	"fmt"
	"time"

	pkgconfig "vidbrief/pkg/config"
)

// Summarizer provider identifiers accepted in SUMMARIZER_TYPE.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoOp   = "noop"
)

// Config holds the full application configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// Version is reported by the health endpoint.
	Version string

	// SummarizerType selects the LLM provider: "openai", "claude" or "noop".
	SummarizerType string

	// YouTubeAPIKey authenticates against the YouTube Data API.
	YouTubeAPIKey string

	// OpenAIAPIKey is required when SummarizerType is "openai".
	OpenAIAPIKey string

	// OpenAIBaseURL overrides the OpenAI endpoint when non-empty.
	// Used to point at compatible gateways or test servers.
	OpenAIBaseURL string

	// AnthropicAPIKey is required when SummarizerType is "claude".
	AnthropicAPIKey string

	// AnthropicBaseURL overrides the Anthropic endpoint when non-empty.
	AnthropicBaseURL string

	// MetadataTimeout bounds one YouTube metadata call.
	MetadataTimeout time.Duration

	// RequestTimeout bounds one HTTP request end to end. It must exceed the
	// summarizer timeout or every slow LLM call surfaces as a 504.
	RequestTimeout time.Duration

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64

	// SwaggerEnabled serves the swagger UI under /swagger/.
	SwaggerEnabled bool

	// ShutdownGrace is how long in-flight requests get to finish on shutdown.
	ShutdownGrace time.Duration

	// Policy is the loaded policy overlay, nil when POLICY_FILE is unset.
	// Kept so callers can apply the per-concern overrides (CORS origins,
	// rate limits) where those components are constructed.
	Policy *Policy
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             pkgconfig.GetEnvInt("PORT", 8080),
		Version:          pkgconfig.GetEnvString("APP_VERSION", "dev"),
		SummarizerType:   pkgconfig.GetEnvString("SUMMARIZER_TYPE", ProviderOpenAI),
		YouTubeAPIKey:    pkgconfig.GetEnvString("YOUTUBE_API_KEY", ""),
		OpenAIAPIKey:     pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    pkgconfig.GetEnvString("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:  pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: pkgconfig.GetEnvString("ANTHROPIC_BASE_URL", ""),
		MetadataTimeout:  pkgconfig.GetEnvDuration("METADATA_TIMEOUT", 30*time.Second),
		RequestTimeout:   pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 120*time.Second),
		MaxBodyBytes:     int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		SwaggerEnabled:   pkgconfig.GetEnvBool("SWAGGER_ENABLED", true),
		ShutdownGrace:    pkgconfig.GetEnvDuration("SHUTDOWN_GRACE", 5*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	switch c.SummarizerType {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when SUMMARIZER_TYPE is %q", ProviderOpenAI)
		}
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when SUMMARIZER_TYPE is %q", ProviderClaude)
		}
	case ProviderNoOp:
		// Development provider, no credentials needed.
	default:
		return fmt.Errorf("SUMMARIZER_TYPE must be one of %q, %q, %q, got %q",
			ProviderOpenAI, ProviderClaude, ProviderNoOp, c.SummarizerType)
	}

	if err := pkgconfig.ValidatePositiveDuration(c.MetadataTimeout); err != nil {
		return fmt.Errorf("METADATA_TIMEOUT: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ShutdownGrace); err != nil {
		return fmt.Errorf("SHUTDOWN_GRACE: %w", err)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}

	return nil
}
