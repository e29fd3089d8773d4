// Package main provides a CLI command for summarizing a single video.
// Usage: vidbrief-summarize --url URL [--locale ko|en] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"vidbrief/internal/config"
	"vidbrief/internal/infra/metadata"
	"vidbrief/internal/infra/summarizer"
	"vidbrief/internal/locale"
	"vidbrief/internal/observability/logging"
	"vidbrief/internal/usecase/summary"
)

// SummaryOutput represents the JSON output format.
type SummaryOutput struct {
	VideoURL string `json:"video_url"`
	Locale   string `json:"locale"`
	Summary  string `json:"summary"`
}

func main() {
	var (
		videoURL     string
		localeTag    string
		outputFormat string
	)

	flag.StringVar(&videoURL, "url", "", "YouTube video URL to summarize")
	flag.StringVar(&localeTag, "locale", "ko", "Response locale: ko or en")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if videoURL == "" {
		fmt.Fprintln(os.Stderr, "Error: --url is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: vidbrief-summarize --url URL [--locale ko|en] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  vidbrief-summarize --url https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		fmt.Fprintln(os.Stderr, "  vidbrief-summarize --url https://youtu.be/dQw4w9WgXcQ --locale en")
		fmt.Fprintln(os.Stderr, "  vidbrief-summarize --url https://youtu.be/dQw4w9WgXcQ --output json")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration validation failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	svc, err := buildService(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize service", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loc := locale.Parse(localeTag)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	logger.Info("Generating summary",
		slog.String("video_url", videoURL),
		slog.String("locale", loc.Tag()))

	result, err := svc.Summarize(ctx, videoURL, loc)
	if err != nil {
		logger.Error("summarize failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(videoURL, loc, result)
	} else {
		fmt.Println(result)
	}
}

// buildService wires the metadata fetcher and the configured summarizer.
func buildService(logger *slog.Logger, cfg *config.Config) (*summary.Service, error) {
	fetcher, err := metadata.NewYouTube(context.Background(), cfg.YouTubeAPIKey, cfg.MetadataTimeout)
	if err != nil {
		return nil, fmt.Errorf("initialize youtube client: %w", err)
	}

	sumCfg, err := summarizer.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("summarizer configuration: %w", err)
	}

	var sum summary.Summarizer
	switch cfg.SummarizerType {
	case config.ProviderClaude:
		sum = summarizer.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, sumCfg)
	case config.ProviderNoOp:
		logger.Warn("using noop summarizer, responses are echoes of the input")
		sum = summarizer.NewNoOp()
	default:
		sum = summarizer.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, sumCfg)
	}

	return &summary.Service{Metadata: fetcher, Summarizer: sum}, nil
}

// outputJSON prints the summary in JSON format.
func outputJSON(videoURL string, loc locale.Locale, result string) {
	output := SummaryOutput{
		VideoURL: videoURL,
		Locale:   loc.Tag(),
		Summary:  result,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}

// initLogger installs a stderr text logger so stdout carries only the summary.
func initLogger() *slog.Logger {
	logger := logging.NewStderrLogger()
	slog.SetDefault(logger)
	return logger
}
