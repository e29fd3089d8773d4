// Package summarizer provides AI-powered summarization adapters for the
// video summarization pipeline. The OpenAI adapter is the default provider;
// Claude (Anthropic) is available as an alternate, and NoOp serves
// development and tests. Every adapter takes the same two-message prompt
// (system persona + user instruction with content) and attempts exactly one
// API call per request behind a circuit breaker, with structured logging and
// Prometheus metrics.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"vidbrief/internal/resilience/circuitbreaker"
	"vidbrief/internal/usecase/summary"
	"vidbrief/internal/utils/text"
)

// Claude implements the Summarizer interface using Anthropic's Claude API.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a new Claude summarizer with the given API key.
// baseURL overrides the API endpoint when non-empty.
func NewClaude(apiKey, baseURL string, cfg Config) *Claude {
	// The SDK retries by default; this pipeline attempts each call once.
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	slog.Info("Initialized Claude summarizer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client:          anthropic.NewClient(opts...),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a summary from the two-message prompt.
// It returns summary.ErrEmptyCompletion (wrapped) when the API responds
// without usable text.
func (c *Claude) Summarize(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, system, user)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without the circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, system, user string) (string, error) {
	// Request ID for correlating the start/end log pair
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("provider", "claude"),
		slog.String("request_id", requestID),
		slog.String("model", c.config.Model),
		slog.Int("input_length", text.CountRunes(user)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(float64(c.config.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(user),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("provider", "claude"),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		c.metricsRecorder.RecordRequest("claude", false)
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordRequest("claude", false)
		return "", fmt.Errorf("claude api: %w", summary.ErrEmptyCompletion)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok || strings.TrimSpace(textBlock.Text) == "" {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordRequest("claude", false)
		return "", fmt.Errorf("claude api: %w", summary.ErrEmptyCompletion)
	}

	result := textBlock.Text

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("provider", "claude"),
		slog.String("request_id", requestID),
		slog.Int("summary_length", text.CountRunes(result)),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordRequest("claude", true)
	c.metricsRecorder.RecordLength(text.CountRunes(result))
	c.metricsRecorder.RecordDuration(duration)

	return result, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Claude) Breaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}
