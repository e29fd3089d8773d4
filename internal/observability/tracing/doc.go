// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C trace context from incoming requests,
// starts a server span per request, and echoes the trace ID back in the
// X-Trace-Id response header. The summarization pipeline adds child spans
// around identifier extraction, metadata retrieval, and the model call.
//
// Example usage:
//
//	import "vidbrief/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.InitTracer("vidbrief", version)
//	    defer shutdown(context.Background())
//	}
//
//	func process(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "summary.Summarize")
//	    defer span.End()
//	}
package tracing
