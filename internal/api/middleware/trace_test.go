package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		incomingTrace string
		keepsIncoming bool
	}{
		{name: "generates trace id"},
		{name: "reuses caller trace id", incomingTrace: "caller-trace-1", keepsIncoming: true},
		{name: "replaces malformed trace id", incomingTrace: "has spaces in it"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID = shared.GetTraceID(r.Context())
				logger.FromContext(r.Context()).Info("inside handler")
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tc.incomingTrace != "" {
				req.Header.Set(shared.TraceIDHeader, tc.incomingTrace)
			}
			rr := httptest.NewRecorder()

			TraceMiddleware(base)(next).ServeHTTP(rr, req)

			headerTraceID := rr.Header().Get(shared.TraceIDHeader)
			assert.NotEmpty(t, headerTraceID)
			assert.Equal(t, headerTraceID, ctxTraceID)
			if tc.keepsIncoming {
				assert.Equal(t, tc.incomingTrace, headerTraceID)
			} else {
				assert.NotEqual(t, tc.incomingTrace, headerTraceID)
			}

			assert.Contains(t, buf.String(), `"trace_id":"`+headerTraceID+`"`)
			assert.Contains(t, buf.String(), "inside handler")
		})
	}
}

func TestTraceMiddlewareAdoptsSpanTraceID(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	tests := []struct {
		name          string
		incomingTrace string
		want          string
	}{
		{name: "span trace id", want: traceID.String()},
		{name: "malformed header falls back to span", incomingTrace: "bad id", want: traceID.String()},
		{name: "caller header wins", incomingTrace: "caller-trace-1", want: "caller-trace-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID = shared.GetTraceID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
			if tc.incomingTrace != "" {
				req.Header.Set(shared.TraceIDHeader, tc.incomingTrace)
			}
			rr := httptest.NewRecorder()

			TraceMiddleware(slog.Default())(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Header().Get(shared.TraceIDHeader))
			assert.Equal(t, tc.want, ctxTraceID)
		})
	}
}
