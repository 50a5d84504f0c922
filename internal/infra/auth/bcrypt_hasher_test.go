package auth

import (
	"testing"

	"jukebox/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	cfg := &config.Config{
		// Low cost keeps the test fast; production uses 12.
		Auth:             &config.AuthConfig{BcryptCost: 4},
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72},
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, hasher.Check("correct horse battery staple", hash))
	assert.False(t, hasher.Check("wrong password", hash))
}

func TestBcryptHasher_CheckEmptyHash(t *testing.T) {
	hasher := newTestHasher()

	// Unknown handles present an empty hash; the check must fail without
	// short-circuiting.
	assert.False(t, hasher.Check("any password", ""))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "short", wantErr: true},
		{name: "minimum length", password: "12345678", wantErr: false},
		{name: "typical", password: "correct horse battery staple", wantErr: false},
		{name: "past bcrypt limit", password: string(make([]byte, 73)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
