package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"vidbrief/internal/resilience/circuitbreaker"
	"vidbrief/internal/usecase/summary"
	"vidbrief/internal/utils/text"
)

// OpenAI implements the Summarizer interface using OpenAI's chat completion
// API (or any OpenAI-compatible endpoint via a base URL override). Calls go
// through a circuit breaker but are never retried: one request, one attempt.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates a new OpenAI summarizer with the given API key.
// baseURL overrides the API endpoint when non-empty, so self-hosted
// OpenAI-compatible servers work unchanged.
func NewOpenAI(apiKey, baseURL string, cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	slog.Info("Initialized OpenAI summarizer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientCfg),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}
}

// Summarize generates a summary from the two-message prompt.
// It returns summary.ErrEmptyCompletion (wrapped) when the API responds
// without usable text.
func (o *OpenAI) Summarize(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doSummarize(ctx, system, user)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		return "", err
	}

	return cbResult.(string), nil
}

// doSummarize performs the actual API call without the circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, system, user string) (string, error) {
	inputLength := text.CountRunes(user)

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("provider", "openai"),
		slog.String("model", o.config.Model),
		slog.Int("input_length", inputLength))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("provider", "openai"),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		o.metricsRecorder.RecordRequest("openai", false)
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		o.metricsRecorder.RecordRequest("openai", false)
		return "", fmt.Errorf("openai api: %w", summary.ErrEmptyCompletion)
	}

	result := resp.Choices[0].Message.Content

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("provider", "openai"),
		slog.Int("summary_length", text.CountRunes(result)),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordRequest("openai", true)
	o.metricsRecorder.RecordLength(text.CountRunes(result))
	o.metricsRecorder.RecordDuration(duration)

	return result, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (o *OpenAI) Breaker() *circuitbreaker.CircuitBreaker {
	return o.circuitBreaker
}
