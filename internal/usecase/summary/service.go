package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"vidbrief/internal/locale"
	"vidbrief/internal/observability/tracing"
	"vidbrief/internal/utils/text"
	"vidbrief/internal/videoid"
)

// maxContentRunes is the budget for the content source fed to the language
// model. Longer content is cut to the first maxContentRunes characters with
// no boundary awareness.
const maxContentRunes = 60000

// Snippet is the portion of video metadata the pipeline consumes.
type Snippet struct {
	Title       string
	Description string
}

// MetadataFetcher retrieves the snippet for one video identifier.
type MetadataFetcher interface {
	VideoSnippet(ctx context.Context, videoID string) (Snippet, error)
}

// Summarizer generates a summary from a two-message prompt.
type Summarizer interface {
	Summarize(ctx context.Context, system, user string) (string, error)
}

// Service orchestrates one summarization request: extract the identifier,
// fetch metadata, build the locale prompt, and call the language model.
// Each external call is attempted exactly once; the metadata call is an
// optional enrichment whose failure degrades to "no content", while a
// summarizer failure is terminal for the request.
type Service struct {
	Metadata   MetadataFetcher
	Summarizer Summarizer
}

// Summarize runs the pipeline for one video URL and returns the generated
// summary. Failures are returned as the typed errors of this package.
func (s *Service) Summarize(ctx context.Context, videoURL string, loc locale.Locale) (string, error) {
	logger := slog.Default()
	bundle := loc.Bundle()

	ctx, span := tracing.GetTracer().Start(ctx, "summary.Summarize")
	defer span.End()

	videoID, ok := videoid.Extract(videoURL)
	if !ok {
		logger.InfoContext(ctx, "no video identifier in request",
			slog.String("received_url", videoURL))
		return "", &InputError{ReceivedURL: videoURL, Message: bundle.ErrInvalidURL}
	}
	span.SetAttributes(attribute.String("video.id", videoID))

	content := s.fetchContent(ctx, videoID, logger)
	if strings.TrimSpace(content) == "" {
		return "", &NoContentError{Message: bundle.ErrNoContent}
	}
	content = text.TruncateRunes(content, maxContentRunes)

	start := time.Now()
	result, err := s.Summarizer.Summarize(ctx, bundle.SystemPrompt, bundle.UserPrefix+content)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, ErrEmptyCompletion) {
			logger.ErrorContext(ctx, "summarizer returned empty completion",
				slog.String("video_id", videoID),
				slog.Duration("duration", duration))
			return "", &GenerationError{Message: bundle.ErrGeneration}
		}
		logger.ErrorContext(ctx, "summarizer call failed",
			slog.String("video_id", videoID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", &UpstreamError{
			Message: fmt.Sprintf(bundle.ErrUpstreamFormat, err.Error()),
			Err:     err,
		}
	}

	if strings.TrimSpace(result) == "" {
		logger.ErrorContext(ctx, "summarizer returned blank summary",
			slog.String("video_id", videoID),
			slog.Duration("duration", duration))
		return "", &GenerationError{Message: bundle.ErrGeneration}
	}

	logger.InfoContext(ctx, "summary generated",
		slog.String("video_id", videoID),
		slog.String("locale", loc.Tag()),
		slog.Int("summary_length", text.CountRunes(result)),
		slog.Duration("duration", duration))

	return result, nil
}

// fetchContent calls the metadata fetcher once and synthesizes the content
// source from the snippet. A failed call or an empty description both yield
// an empty content source; the caller decides how to respond.
func (s *Service) fetchContent(ctx context.Context, videoID string, logger *slog.Logger) string {
	ctx, span := tracing.GetTracer().Start(ctx, "summary.fetchMetadata")
	defer span.End()

	snippet, err := s.Metadata.VideoSnippet(ctx, videoID)
	if err != nil {
		// Optional enrichment: log and continue with no content.
		logger.WarnContext(ctx, "metadata fetch failed, continuing without content",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return ""
	}

	if strings.TrimSpace(snippet.Description) == "" {
		return ""
	}
	return "[Video title: " + snippet.Title + "]\n\n" + snippet.Description
}
