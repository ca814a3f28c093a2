package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token whose "id" claim is the user's ID.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken verifies the token signature and extracts the claims.
	// Returns ErrInvalidToken, ErrExpiredToken or ErrTokenNotYetValid when
	// the token cannot be trusted.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for.
	UserID int64

	// IssuedAt and ExpiresAt are zero when the token carries no lifetime.
	IssuedAt  time.Time
	ExpiresAt time.Time
}
