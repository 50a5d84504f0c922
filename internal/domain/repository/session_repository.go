package repository

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Sentinel errors for session persistence.
var (
	// ErrSessionNotFound is returned when no session matches the lookup.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository manages login sessions. One row exists per login; the
// stored refresh-token hash is replaced on every rotation.
type SessionRepository interface {
	// Create persists a new session, representing one login.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindByTokenHash retrieves a session by the hash of its current refresh
	// token. Sessions whose hash was rotated away are not found by the old hash.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// Update persists changes to a session (rotation, revocation).
	Update(ctx context.Context, session *entity.Session) error

	// DeleteByUserID removes every session belonging to a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired prunes sessions whose expiry has passed and returns how
	// many were removed. Expired sessions are never honored either way; this
	// only bounds storage growth.
	DeleteExpired(ctx context.Context) (int64, error)
}
