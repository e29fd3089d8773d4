// Package metadata provides the video metadata fetcher for the summarization
// pipeline. It wraps the YouTube Data API v3 videos.list call behind a
// circuit breaker; the pipeline treats any failure here as "no content
// available" rather than a request failure.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"vidbrief/internal/resilience/circuitbreaker"
	"vidbrief/internal/usecase/summary"
)

// ErrVideoNotFound indicates the API responded but carried no item for the
// requested identifier (deleted, private, or never existed).
var ErrVideoNotFound = errors.New("video not found")

// DefaultTimeout bounds one metadata call.
const DefaultTimeout = 30 * time.Second

// YouTube fetches video snippets from the YouTube Data API v3.
type YouTube struct {
	service         *youtube.Service
	circuitBreaker  *circuitbreaker.CircuitBreaker
	timeout         time.Duration
	metricsRecorder MetadataMetricsRecorder
}

// NewYouTube creates a metadata fetcher authenticated with the given API key.
// timeout bounds each videos.list call; zero means DefaultTimeout.
func NewYouTube(ctx context.Context, apiKey string, timeout time.Duration) (*YouTube, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube client: %w", err)
	}
	return NewYouTubeWithService(svc, timeout), nil
}

// NewYouTubeWithService wraps an already-constructed API client. Tests use
// this to point the fetcher at a fake endpoint.
func NewYouTubeWithService(svc *youtube.Service, timeout time.Duration) *YouTube {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	slog.Info("Initialized YouTube metadata fetcher",
		slog.Duration("timeout", timeout))

	return &YouTube{
		service:         svc,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.YouTubeAPIConfig()),
		timeout:         timeout,
		metricsRecorder: NewPrometheusMetadataMetrics(),
	}
}

// VideoSnippet fetches the snippet (title, description) for one video.
// The call is attempted exactly once; the circuit breaker only rejects calls
// while the API is known to be failing.
func (y *YouTube) VideoSnippet(ctx context.Context, videoID string) (summary.Snippet, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	cbResult, err := y.circuitBreaker.Execute(func() (interface{}, error) {
		return y.doFetch(ctx, videoID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("youtube api circuit breaker open, request rejected",
				slog.String("service", "youtube-api"),
				slog.String("state", y.circuitBreaker.State().String()))
			return summary.Snippet{}, fmt.Errorf("youtube api unavailable: circuit breaker open")
		}
		return summary.Snippet{}, err
	}

	return cbResult.(summary.Snippet), nil
}

// doFetch performs the actual videos.list call without the circuit breaker.
func (y *YouTube) doFetch(ctx context.Context, videoID string) (summary.Snippet, error) {
	start := time.Now()

	resp, err := y.service.Videos.
		List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "metadata fetch failed",
			slog.String("video_id", videoID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		y.metricsRecorder.RecordRequest(false)
		return summary.Snippet{}, fmt.Errorf("youtube api error: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		slog.WarnContext(ctx, "no snippet for video",
			slog.String("video_id", videoID),
			slog.Duration("duration", duration))
		y.metricsRecorder.RecordRequest(false)
		return summary.Snippet{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	snippet := resp.Items[0].Snippet

	slog.InfoContext(ctx, "metadata fetched",
		slog.String("video_id", videoID),
		slog.Int("description_length", len(snippet.Description)),
		slog.Duration("duration", duration))

	y.metricsRecorder.RecordRequest(true)
	y.metricsRecorder.RecordDuration(duration)

	return summary.Snippet{
		Title:       snippet.Title,
		Description: snippet.Description,
	}, nil
}

// Breaker exposes the circuit breaker for health reporting.
func (y *YouTube) Breaker() *circuitbreaker.CircuitBreaker {
	return y.circuitBreaker
}
