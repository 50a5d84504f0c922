// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"jukebox/config"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/service"
)

// dummyHash is a valid bcrypt hash compared against when a handle is
// unknown, so login latency does not reveal whether the handle exists.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// bcryptHasher is a concrete implementation of the PasswordHasher interface
// using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
	maxLength int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	minLength, maxLength := 8, 72
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 {
			maxLength = cfg.PasswordStrength.MaxLength
		}
	}

	return &bcryptHasher{cost: cost, minLength: minLength, maxLength: maxLength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash. bcrypt's
// comparison is constant-time over the hash output. When hash is empty, a
// fixed dummy hash is compared instead so unknown handles cost the same as
// wrong passwords.
func (h *bcryptHasher) Check(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))

		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength rejects passwords outside the configured length
// bounds. The upper bound matters: bcrypt silently truncates past 72 bytes.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password too short")
	}
	if len(password) > h.maxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password too long")
	}

	return nil
}
