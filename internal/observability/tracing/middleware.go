package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"vidbrief/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace ID back to the caller so a failed summary
// can be matched to its trace.
const TraceIDHeader = "X-Trace-Id"

// Middleware opens a server span per summarization request. Incoming W3C
// traceparent headers are honored, so a browser or gateway that already
// started a trace sees the handler as a child span.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(
			r.Context(),
			propagation.HeaderCarrier(r.Header),
		)

		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		ww := responsewriter.Wrap(w)
		next.ServeHTTP(ww, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.Int("http.status_code", ww.StatusCode()),
			attribute.Int("http.response_size", ww.BytesWritten()),
		)

		// 5xx はサーバ側の失敗としてスパンに記録する
		if ww.StatusCode() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(ww.StatusCode()))
		}
	})
}
