package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the operational knobs an operator may override per deployment
// without rebuilding: CORS origins, rate limits, and the body cap. The file
// is optional; absent fields keep their environment-derived values.
//
// Example policy file:
//
//	cors:
//	  allowed_origins:
//	    - https://app.example.com
//	rate_limit:
//	  rps: 5
//	  burst: 10
//	max_body_bytes: 524288
type Policy struct {
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// LoadPolicy reads the policy file named by the POLICY_FILE environment
// variable. A missing variable means no policy; a named but unreadable or
// malformed file is an error so a typo does not silently run defaults.
func LoadPolicy() (*Policy, error) {
	path := os.Getenv("POLICY_FILE")
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file %s: %w", path, err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy file %s: %w", path, err)
	}

	slog.Info("service policy loaded",
		slog.String("path", path),
		slog.Int("cors_origins", len(p.CORS.AllowedOrigins)))

	return &p, nil
}

// Validate checks the policy values that have been set.
func (p *Policy) Validate() error {
	if p.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must not be negative, got %v", p.RateLimit.RPS)
	}
	if p.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit.burst must not be negative, got %d", p.RateLimit.Burst)
	}
	if p.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative, got %d", p.MaxBodyBytes)
	}
	return nil
}

// Apply overlays the set policy fields onto the configuration.
func (p *Policy) Apply(cfg *Config) {
	if p == nil {
		return
	}
	if p.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = p.MaxBodyBytes
	}
}
