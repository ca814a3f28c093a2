package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blog-api/internal/mocks"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		claims         *auth.Claims
		expectedToken  string
		expectedStatus int
		expectedUserID int64
	}{
		{
			name:           "raw token",
			authHeader:     "valid-token",
			claims:         &auth.Claims{UserID: 7},
			expectedToken:  "valid-token",
			expectedStatus: http.StatusOK,
			expectedUserID: 7,
		},
		{
			name:           "bearer token",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: 7},
			expectedToken:  "valid-token",
			expectedStatus: http.StatusOK,
			expectedUserID: 7,
		},
		{
			name:           "missing auth header",
			authHeader:     "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authHeader:     "expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedToken:  "expired-token",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedToken:  "invalid-token",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unexpected validation error",
			authHeader:     "some-token",
			validateErr:    errors.New("boom"),
			expectedToken:  "some-token",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "claims without user id",
			authHeader:     "some-token",
			claims:         &auth.Claims{},
			expectedToken:  "some-token",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seenToken string
			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					seenToken = token
					return tt.claims, tt.validateErr
				},
			}

			called := false
			var capturedUserID int64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				capturedUserID, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/blog/bulk", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedToken, seenToken)

			if tt.expectedStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.expectedUserID, capturedUserID)
				return
			}

			assert.False(t, called, "handler must not run for unauthenticated requests")
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, UnauthorizedMessage, body["msg"])
		})
	}
}

func TestAuthMiddleware_RealTokens(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewJWTService(authConfig())
	require.NoError(t, err)
	token, err := svc.GenerateToken(context.Background(), 3)
	require.NoError(t, err)

	var capturedUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, _ = GetUserID(r)
	})
	handler := NewAuthMiddleware(svc).Authenticate(next)

	req := httptest.NewRequest(http.MethodGet, "/blog/1", nil)
	req.Header.Set("Authorization", token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), capturedUserID)

	req = httptest.NewRequest(http.MethodGet, "/blog/1", nil)
	req.Header.Set("Authorization", token+"x")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestExtractToken(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                "",
		"abc":             "abc",
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"  Bearer  abc  ": "abc",
		"Bearer":          "Bearer",
	}
	for header, want := range tests {
		assert.Equal(t, want, extractToken(header), "header %q", header)
	}
}

func TestAuthMiddleware_TagsSpanWithUserID(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { require.NoError(t, tp.Shutdown(context.Background())) }()

	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: 42}}
	handler := NewAuthMiddleware(jwtService).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	ctx, span := tp.Tracer("test").Start(context.Background(), "request", trace.WithSpanKind(trace.SpanKindServer))
	req := httptest.NewRequest(http.MethodGet, "/blog/bulk", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer valid-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("enduser.id", 42))
}
