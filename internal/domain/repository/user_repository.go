// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for user and credential persistence.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrHandleTaken is returned when creating a user with a handle that already exists.
	ErrHandleTaken = errors.New("handle already taken")
	// ErrCredentialNotFound is returned when a user has no stored credential.
	ErrCredentialNotFound = errors.New("credential not found")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByHandle retrieves a single user by their normalized login handle.
	FindByHandle(ctx context.Context, handle string) (*entity.User, error)

	// Create persists a new user. Returns ErrHandleTaken on a duplicate handle.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user's mutable profile fields.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID. Credentials, sessions and playlists owned
	// by the user are removed by the caller within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CredentialRepository stores password-verification material, keyed by user.
type CredentialRepository interface {
	// Create persists the credential for a newly registered user.
	Create(ctx context.Context, cred *entity.Credential) error

	// FindByUserID retrieves the credential for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)

	// DeleteByUserID removes the credential for a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
