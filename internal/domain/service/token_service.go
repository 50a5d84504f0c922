package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Type      string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates an access/refresh token pair bound to a user
	// and a session. Both carry the session ID so revoking the session
	// invalidates them.
	GenerateTokens(userID, sessionID uuid.UUID) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken verifies an access token's signature and expiry.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken verifies a refresh token's signature and expiry.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns the hex-encoded SHA-256 of a raw token, the form in
	// which refresh tokens are persisted.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
