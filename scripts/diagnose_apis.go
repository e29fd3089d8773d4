// Diagnostic tool for the upstream APIs the service depends on.
// Issues one real call against the YouTube Data API and one against the
// configured summarizer, then prints a report. Run when the service reports
// degraded health to tell a local misconfiguration apart from an outage.
//
// Usage: go run scripts/diagnose_apis.go [-video VIDEO_ID] [-json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"vidbrief/internal/config"
	"vidbrief/internal/infra/metadata"
	"vidbrief/internal/infra/summarizer"
	"vidbrief/internal/usecase/summary"
)

// APIDiagnostic represents the diagnostic result for a single upstream API.
type APIDiagnostic struct {
	Name         string `json:"name"`
	Status       string `json:"status"` // "OK", "AUTH_ERROR", "TIMEOUT", "ERROR", "SKIPPED"
	ResponseTime int64  `json:"response_time_ms"`
	Detail       string `json:"detail,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// checkVideoID is a long-lived public video used as a known-good probe.
const checkVideoID = "dQw4w9WgXcQ"

func main() {
	var (
		videoID    string
		jsonOutput bool
		timeout    time.Duration
	)
	flag.StringVar(&videoID, "video", checkVideoID, "Video ID to probe the metadata API with")
	flag.BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-check timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	log.Printf("Diagnosing upstream APIs (summarizer=%s)...", cfg.SummarizerType)

	diagnostics := []APIDiagnostic{
		diagnoseYouTube(cfg, videoID, timeout),
		diagnoseSummarizer(cfg, timeout),
	}

	if jsonOutput {
		generateJSONReport(diagnostics)
	} else {
		generateReport(diagnostics)
	}

	for _, d := range diagnostics {
		if d.Status != "OK" && d.Status != "SKIPPED" {
			os.Exit(1)
		}
	}
}

// diagnoseYouTube fetches the snippet of a known public video.
func diagnoseYouTube(cfg *config.Config, videoID string, timeout time.Duration) APIDiagnostic {
	diag := APIDiagnostic{Name: "youtube-data-api"}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()

	fetcher, err := metadata.NewYouTube(ctx, cfg.YouTubeAPIKey, timeout)
	if err != nil {
		diag.Status = "ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	snippet, err := fetcher.VideoSnippet(ctx, videoID)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.Status = classify(ctx, err)
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.Status = "OK"
	diag.Detail = fmt.Sprintf("title=%q description_bytes=%d", snippet.Title, len(snippet.Description))
	return diag
}

// diagnoseSummarizer sends a single tiny prompt through the configured
// provider. The noop provider needs no credentials and is reported as skipped.
func diagnoseSummarizer(cfg *config.Config, timeout time.Duration) APIDiagnostic {
	diag := APIDiagnostic{Name: "summarizer-" + cfg.SummarizerType}

	if cfg.SummarizerType == config.ProviderNoOp {
		diag.Status = "SKIPPED"
		diag.Detail = "noop provider makes no outbound calls"
		return diag
	}

	sumCfg, err := summarizer.LoadConfig()
	if err != nil {
		diag.Status = "ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	sumCfg.Timeout = timeout
	sumCfg.MaxTokens = 16

	var sum summary.Summarizer
	if cfg.SummarizerType == config.ProviderClaude {
		sum = summarizer.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, sumCfg)
	} else {
		sum = summarizer.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, sumCfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result, err := sum.Summarize(ctx, "Reply with the single word: pong", "ping")
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.Status = classify(ctx, err)
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.Status = "OK"
	diag.Detail = fmt.Sprintf("completion=%q", result)
	return diag
}

func classify(ctx context.Context, err error) string {
	if ctx.Err() == context.DeadlineExceeded {
		return "TIMEOUT"
	}
	msg := err.Error()
	for _, marker := range []string{"401", "403", "API key", "api key", "unauthorized", "forbidden"} {
		if strings.Contains(msg, marker) {
			return "AUTH_ERROR"
		}
	}
	return "ERROR"
}

func generateReport(diagnostics []APIDiagnostic) {
	fmt.Println()
	fmt.Println("=== Upstream API Diagnostic Report ===")
	for _, d := range diagnostics {
		fmt.Printf("\n%s\n", d.Name)
		fmt.Printf("  Status:        %s\n", d.Status)
		fmt.Printf("  Response time: %dms\n", d.ResponseTime)
		if d.Detail != "" {
			fmt.Printf("  Detail:        %s\n", d.Detail)
		}
		if d.ErrorMessage != "" {
			fmt.Printf("  Error:         %s\n", d.ErrorMessage)
		}
	}
	fmt.Println()
}

func generateJSONReport(diagnostics []APIDiagnostic) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Fatalf("Failed to encode JSON report: %v", err)
	}
}
