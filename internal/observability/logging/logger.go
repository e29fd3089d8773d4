package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"vidbrief/internal/handler/http/requestid"
)

// NewLogger returns the JSON logger the API server runs with. The level
// comes from LOG_LEVEL (debug, info, warn, error); unknown values mean info.
func NewLogger() *slog.Logger {
	return newJSONLogger(os.Stdout, parseLevel(os.Getenv("LOG_LEVEL")))
}

// NewStderrLogger returns a text logger for command-line tools, where stdout
// carries the summary itself and diagnostics must stay out of its way.
func NewStderrLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// WithRequestID returns logger annotated with the request identifier carried
// in ctx, or logger unchanged when the request never passed through the
// request-id middleware.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	id := requestid.FromContext(ctx)
	if id == "" {
		return logger
	}
	return logger.With(slog.String("request_id", id))
}

func newJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		// error 専用の静かな運用以外ではソース位置も出す
		AddSource: level <= slog.LevelWarn,
	}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
