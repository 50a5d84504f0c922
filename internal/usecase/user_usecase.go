// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Handle      string
	Password    string
	DisplayName string
	Bio         string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Handle   string
	Password string
}

// UpdateProfileInput carries the mutable profile fields. Nil means the
// field is left unchanged; the handle is immutable and has no field here.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
}

// --- Output DTOs ---

// AuthOutput returns the token pair issued by login and refresh, together
// with the authenticated user.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the contract for account, session and profile
// operations. This is what the delivery layer (handlers, auth middleware)
// depends on.
type UserUsecase interface {
	// Register creates a new account with a unique handle and returns the
	// stored profile. The raw password never leaves this call.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials, opens a session and returns a token pair.
	// Unknown handle and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh rotates a session's refresh token and returns a new pair.
	// Replaying a refresh token that was already rotated away fails.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session behind the presented refresh token. It is
	// idempotent: unknown or already-revoked tokens succeed silently.
	Logout(ctx context.Context, refreshToken string) error

	// Authenticate resolves a bearer access token to the user it belongs
	// to. Fails when the token is invalid, expired, of the wrong type, or
	// when its session has been revoked or has expired.
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)

	// GetUser returns a user's public profile.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// UpdateProfile modifies the caller's own profile fields. Callers may
	// only update themselves.
	UpdateProfile(ctx context.Context, id, callerID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// DeleteAccount removes the caller's own account together with its
	// credential, sessions and playlists.
	DeleteAccount(ctx context.Context, id, callerID uuid.UUID) error

	// SweepExpiredSessions prunes sessions past their expiry and returns
	// how many were removed. Run periodically; expired sessions are never
	// honored regardless.
	SweepExpiredSessions(ctx context.Context) (int64, error)
}
