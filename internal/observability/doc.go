// Package observability provides production-grade observability infrastructure
// including structured logging, OpenTelemetry tracing, and SLO tracking.
//
// This package centralizes observability concerns to enable:
//   - Request tracing across service boundaries
//   - Structured logging with context propagation
//   - SLO gauges derived from in-process request measurements
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - tracing: OpenTelemetry tracing integration
//   - slo: Service level objective targets and tracking
//
// Example usage:
//
//	import "vidbrief/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//	}
package observability
