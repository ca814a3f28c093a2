package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UnauthorizedMessage is the body message of every authentication failure.
const UnauthorizedMessage = "You are not authorized to access this resource"

// AuthErrorResponse is the body written when authentication fails.
type AuthErrorResponse struct {
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id,omitempty"`
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the token in the Authorization header and adds the
// user ID to the request context. The header may hold the raw token or
// "Bearer <token>". Every failure is answered with 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token := extractToken(r.Header.Get("Authorization"))
		if token == "" {
			log.Debug("authentication failed", "reason", "missing token")
			RespondUnauthorized(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrExpiredToken) ||
				errors.Is(err, auth.ErrTokenNotYetValid) || errors.Is(err, auth.ErrMissingToken) {
				log.Debug("authentication failed", "reason", err.Error())
			} else {
				log.Warn("token validation error", "error", redact.Error(err))
			}
			RespondUnauthorized(w, r)
			return
		}
		if claims == nil || claims.UserID <= 0 {
			log.Debug("authentication failed", "reason", "token has no user id")
			RespondUnauthorized(w, r)
			return
		}

		trace.SpanFromContext(r.Context()).SetAttributes(attribute.Int64("enduser.id", claims.UserID))
		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return header
}

// RespondUnauthorized writes the 403 body used for every authentication failure.
func RespondUnauthorized(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusForbidden, AuthErrorResponse{
		Msg:     UnauthorizedMessage,
		TraceID: shared.GetTraceID(r.Context()),
	})
}
