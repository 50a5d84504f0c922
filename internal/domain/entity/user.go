// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a single account.
// The login credential (password hash) is kept in a separate Credential
// record so the profile can be loaded and returned without it.
type User struct {
	ID          uuid.UUID // The unique identifier for the user.
	Handle      string    // The login handle. Unique across all users, normalized to lower case.
	DisplayName string    // The name shown to other users. Free-form, mutable.
	Bio         string    // A short self-description. Optional.
	CreatedAt   time.Time // Timestamp of when this account was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this account.
}

// Credential holds the password-verification material for a user.
// Only the bcrypt hash is ever stored; the raw password never leaves the
// registration/login request path.
type Credential struct {
	UserID       uuid.UUID // Links this credential to the User it belongs to.
	PasswordHash string    // The bcrypt hash of the user's password.
	CreatedAt    time.Time // Timestamp of when the credential was first stored.
	UpdatedAt    time.Time // Timestamp of the last password change.
}
