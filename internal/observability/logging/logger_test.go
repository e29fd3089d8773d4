package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"vidbrief/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"  Debug ", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger_HonorsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	logger := NewLogger()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewStderrLogger_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewStderrLogger()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestJSONLogger_EmitsStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, slog.LevelInfo)

	logger.Info("summary generated",
		slog.String("video_id", "dQw4w9WgXcQ"),
		slog.String("locale", "ko"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "summary generated", record["msg"])
	assert.Equal(t, "dQw4w9WgXcQ", record["video_id"])
	assert.Equal(t, "ko", record["locale"])
}

func TestJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, slog.LevelWarn)

	logger.Info("prompt sent")
	assert.Zero(t, buf.Len())

	logger.Warn("metadata fetch degraded")
	assert.NotZero(t, buf.Len())
}

func TestWithRequestID_AnnotatesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, slog.LevelInfo)

	ctx := requestid.NewContext(context.Background(), "req-777")
	WithRequestID(ctx, logger).Info("summary generated")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-777", record["request_id"])
}

func TestWithRequestID_NoIdentifierLeavesLoggerAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, slog.LevelInfo)

	got := WithRequestID(context.Background(), logger)
	assert.Same(t, logger, got)

	got.Info("summary generated")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, present := record["request_id"]
	assert.False(t, present, "no request_id field without a middleware-assigned ID")
}
