package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"vidbrief/internal/config"
	"vidbrief/internal/infra/metadata"
	"vidbrief/internal/infra/summarizer"
	"vidbrief/internal/observability/logging"
	"vidbrief/internal/observability/slo"
	"vidbrief/internal/observability/tracing"
	"vidbrief/internal/resilience/circuitbreaker"
	"vidbrief/internal/usecase/summary"
	pkgconfig "vidbrief/pkg/config"

	hhttp "vidbrief/internal/handler/http"
	"vidbrief/internal/handler/http/middleware"
	"vidbrief/internal/handler/http/requestid"
	hsummarize "vidbrief/internal/handler/http/summarize"

	_ "vidbrief/docs" // swagger docs
)

// @title           vidbrief API
// @version         1.0
// @description     YouTube 動画要約サービスの REST API
// @description     動画URLを受け取り、メタデータを取得してAIによる要約を生成します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

const sloFlushInterval = 15 * time.Second

func main() {
	// .env は開発用。本番では環境変数を直接設定する
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	logger := initLogger()

	cfg := loadConfig(logger)

	shutdownTracer := tracing.InitTracer("vidbrief", cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, cfg)

	runServer(logger, cfg, components)
}

// initLogger installs the service-wide JSON logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the environment configuration and the optional policy
// overlay. Startup fails on an unusable configuration.
func loadConfig(logger *slog.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	policy, err := config.LoadPolicy()
	if err != nil {
		logger.Error("policy file validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	policy.Apply(cfg)
	cfg.Policy = policy

	return cfg
}

// ServerComponents contains the handler plus the pieces that need background
// goroutines or cleanup.
type ServerComponents struct {
	Handler         http.Handler
	RateLimiter     *hhttp.RateLimiter
	CleanupInterval time.Duration
	SLOTracker      *slo.Tracker
}

// setupServer wires the metadata fetcher, summarizer, routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.Config) *ServerComponents {
	fetcher, err := metadata.NewYouTube(context.Background(), cfg.YouTubeAPIKey, cfg.MetadataTimeout)
	if err != nil {
		logger.Error("failed to initialize youtube client", slog.Any("error", err))
		os.Exit(1)
	}

	sum, sumBreaker := buildSummarizer(logger, cfg)

	svc := &summary.Service{
		Metadata:   fetcher,
		Summarizer: sum,
	}

	rlCfg := pkgconfig.LoadRateLimitConfig()
	if p := cfg.Policy; p != nil {
		if p.RateLimit.RPS > 0 {
			rlCfg.RPS = p.RateLimit.RPS
		}
		if p.RateLimit.Burst > 0 {
			rlCfg.Burst = p.RateLimit.Burst
		}
	}

	var limiter *hhttp.RateLimiter
	if rlCfg.Enabled {
		limiter = hhttp.NewRateLimiter(*rlCfg)
		logger.Info("rate limiting initialized",
			slog.Float64("rps", rlCfg.RPS),
			slog.Int("burst", rlCfg.Burst),
			slog.Duration("idle_ttl", rlCfg.IdleTTL))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	tracker := slo.NewTracker()

	mux := setupRoutes(cfg, svc, fetcher.Breaker(), sumBreaker, limiter, rlCfg.Enabled)
	handler := applyMiddleware(logger, cfg, mux, limiter, tracker)

	return &ServerComponents{
		Handler:         handler,
		RateLimiter:     limiter,
		CleanupInterval: rlCfg.CleanupInterval,
		SLOTracker:      tracker,
	}
}

// buildSummarizer constructs the summarizer selected by SUMMARIZER_TYPE.
// The returned breaker is nil for providers without an outbound call.
func buildSummarizer(logger *slog.Logger, cfg *config.Config) (summary.Summarizer, *circuitbreaker.CircuitBreaker) {
	sumCfg, err := summarizer.LoadConfig()
	if err != nil {
		logger.Error("summarizer configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	switch cfg.SummarizerType {
	case config.ProviderClaude:
		s := summarizer.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, sumCfg)
		return s, s.Breaker()
	case config.ProviderNoOp:
		logger.Warn("using noop summarizer, responses are echoes of the input")
		return summarizer.NewNoOp(), nil
	default:
		s := summarizer.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, sumCfg)
		return s, s.Breaker()
	}
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	cfg *config.Config,
	svc *summary.Service,
	metadataBreaker *circuitbreaker.CircuitBreaker,
	summarizerBreaker *circuitbreaker.CircuitBreaker,
	limiter *hhttp.RateLimiter,
	rateLimitEnabled bool,
) *http.ServeMux {
	mux := http.NewServeMux()

	hsummarize.Register(mux, svc)

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{
		Version:            cfg.Version,
		SummarizerBreaker:  summarizerBreaker,
		MetadataBreaker:    metadataBreaker,
		RateLimiter:        limiter,
		RateLimiterEnabled: rateLimitEnabled,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{SummarizerBreaker: summarizerBreaker})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	if cfg.SwaggerEnabled {
		mux.Handle("/swagger/", httpSwagger.WrapHandler)
	}

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Tracing → Request ID → Rate Limit → Recovery → Logging →
// Body Limit → Timeout → Metrics → routes.
func applyMiddleware(
	logger *slog.Logger,
	cfg *config.Config,
	handler http.Handler,
	limiter *hhttp.RateLimiter,
	tracker *slo.Tracker,
) http.Handler {
	corsCfg := middleware.LoadCORSConfig()
	if p := cfg.Policy; p != nil && len(p.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = p.CORS.AllowedOrigins
	}

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods),
		slog.Int("max_age", corsCfg.MaxAge))

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hhttp.MetricsMiddleware(tracker)(chain)
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if limiter != nil {
		chain = limiter.Limit(chain)
	}

	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)
	chain = middleware.CORS(corsCfg)(chain)

	return chain
}

// runServer starts the HTTP server, the background goroutines, and handles
// graceful shutdown on SIGINT/SIGTERM.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if components.RateLimiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.RateLimiter, components.CleanupInterval)
		logger.Info("rate limit cleanup started",
			slog.Duration("interval", components.CleanupInterval))
	}

	go components.SLOTracker.StartFlusher(ctx.Done(), sloFlushInterval)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version),
			slog.String("summarizer", cfg.SummarizerType))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
