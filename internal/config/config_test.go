package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("YOUTUBE_API_KEY", "test-yt-key")
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.SummarizerType != ProviderOpenAI {
		t.Errorf("SummarizerType = %q, want openai", cfg.SummarizerType)
	}
	if cfg.MetadataTimeout != 30*time.Second {
		t.Errorf("MetadataTimeout = %v, want 30s", cfg.MetadataTimeout)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Errorf("RequestTimeout = %v, want 120s", cfg.RequestTimeout)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want 1MiB", cfg.MaxBodyBytes)
	}
	if !cfg.SwaggerEnabled {
		t.Error("SwaggerEnabled = false, want true by default")
	}
}

func TestLoad_MissingYouTubeKey(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "test-openai-key")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing YOUTUBE_API_KEY")
	}
	if !strings.Contains(err.Error(), "YOUTUBE_API_KEY") {
		t.Errorf("error = %v, want mention of YOUTUBE_API_KEY", err)
	}
}

func TestLoad_ProviderKeyRequirements(t *testing.T) {
	tests := []struct {
		name         string
		summarizer   string
		openaiKey    string
		anthropicKey string
		wantErr      bool
	}{
		{"openai with key", "openai", "sk-test", "", false},
		{"openai without key", "openai", "", "", true},
		{"claude with key", "claude", "", "sk-ant-test", false},
		{"claude without key", "claude", "", "", true},
		{"noop needs no key", "noop", "", "", false},
		{"unknown provider", "gemini", "sk-test", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("YOUTUBE_API_KEY", "test-yt-key")
			t.Setenv("SUMMARIZER_TYPE", tt.summarizer)
			t.Setenv("OPENAI_API_KEY", tt.openaiKey)
			t.Setenv("ANTHROPIC_API_KEY", tt.anthropicKey)

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for out-of-range port")
	}
}

func TestValidate_Timeouts(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for zero request timeout")
	}
}
