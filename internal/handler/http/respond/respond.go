// Package respond writes the JSON responses of the summarization API.
// Error bodies never carry internal details: anything that is not a known
// client-facing message is replaced with a generic one and logged with
// credentials masked.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダー送信済みのためエラーレスポンスは返せない。ログのみ
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// clientSafeMarkers are the substrings of error messages this API produces
// for client mistakes. Anything outside this set is treated as internal.
var clientSafeMarkers = []string{
	"invalid",
	"required",
	"request body",
	"rate limit",
	"too large",
	"not found",
}

// SafeError writes err as a JSON error body when its message is safe to show
// a client, and a generic message otherwise. Server-side failures (5xx) are
// always generic; the real error is logged with secrets masked so an API key
// in an upstream error can never reach a response body.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()

	safe := false
	if code < 500 {
		lower := strings.ToLower(msg)
		for _, marker := range clientSafeMarkers {
			if strings.Contains(lower, marker) {
				safe = true
				break
			}
		}
	}

	if !safe {
		// 内部エラー: 詳細はマスクしてログへ、クライアントには汎用メッセージ
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.Any("error", SanitizeError(err)))
		JSON(w, code, map[string]string{"error": "internal server error"})
		return
	}

	JSON(w, code, map[string]string{"error": msg})
}
