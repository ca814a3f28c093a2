package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"go.opentelemetry.io/otel/trace"
)

// TraceMiddleware adds a trace ID and a request-scoped logger to the request
// context and echoes the ID in the X-Trace-ID response header. A well formed
// caller supplied X-Trace-ID wins; otherwise the OpenTelemetry trace ID of the
// active span is used, so logs and exported spans correlate.
// It should be applied after the tracing middleware and before any handler
// that logs.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if !shared.ValidTraceID(traceID) {
				if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
					traceID = sc.TraceID().String()
				}
			}
			ctx := shared.WithTraceID(r.Context(), traceID)
			traceID = shared.GetTraceID(ctx)

			log := logger.FromContextOrDefault(ctx, base).With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
