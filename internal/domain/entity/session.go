package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated login. A session is created at login,
// refreshed by presenting its current refresh token, and ended by logout or
// expiry. Access tokens carry the session ID, so revoking the session
// invalidates every access token minted for it.
type Session struct {
	ID               uuid.UUID  // The unique ID of this session, embedded in tokens as the "sid" claim.
	UserID           uuid.UUID  // Links this session to the User it belongs to.
	RefreshTokenHash string     // SHA-256 hash of the currently valid refresh token. Rotated on every refresh.
	ExpiresAt        time.Time  // When the session (and its refresh token) expires.
	RevokedAt        *time.Time // Set when the session is revoked by logout. Nil while active.
	CreatedAt        time.Time  // When the user logged in.
	LastRefreshedAt  time.Time  // When the refresh token was last rotated. Equals CreatedAt until the first refresh.
}

// Active reports whether the session may still authenticate requests at the
// given instant.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
