// Package middleware provides cross-cutting HTTP middleware that lives
// outside the main handler package.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"vidbrief/pkg/config"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	AllowedHeaders []string

	// AllowCredentials indicates whether credentials (cookies, authorization headers) are supported.
	AllowCredentials bool

	// MaxAge specifies how long preflight results can be cached (in seconds).
	MaxAge int
}

// defaultAllowedMethods covers the API surface: the summarize endpoint plus
// preflight.
var defaultAllowedMethods = []string{"GET", "POST", "OPTIONS"}

var defaultAllowedHeaders = []string{"Content-Type", "X-Request-ID"}

// LoadCORSConfig loads CORS configuration from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origin whitelist
//     Default: "http://localhost:3000"
//   - CORS_ALLOWED_METHODS: comma-separated method list
//   - CORS_ALLOWED_HEADERS: comma-separated header list
//   - CORS_MAX_AGE: preflight cache lifetime in seconds (default 86400)
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   config.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   config.GetEnvStringList("CORS_ALLOWED_METHODS", defaultAllowedMethods),
		AllowedHeaders:   config.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultAllowedHeaders),
		AllowCredentials: false,
		MaxAge:           config.GetEnvInt("CORS_MAX_AGE", 86400),
	}
}

// originAllowed checks the origin against the whitelist.
// Comparison is exact: scheme, host and port must all match.
func (c CORSConfig) originAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If Origin header is empty, skip CORS processing (same-origin request)
//   - If Origin is not allowed, log warning and continue without CORS headers;
//     the browser blocks the response
//   - If Origin is allowed and request is OPTIONS (preflight), set the
//     preflight headers and return 204 without calling the next handler
//   - Otherwise set Access-Control-Allow-Origin and pass the request through
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !cfg.originAllowed(origin) {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("remote_addr", r.RemoteAddr))
				next.ServeHTTP(w, r)
				return
			}

			// Echo back the request origin (required for credentials)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
