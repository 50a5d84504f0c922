package middleware

import (
	"strings"

	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// keyUserID is the echo.Context key the authenticated user's ID is stored
// under.
const keyUserID = "userID"

// AuthMiddleware resolves bearer access tokens to user IDs. Token validity
// alone is not enough: the session the token was minted for must still be
// live, so logout takes effect immediately.
type AuthMiddleware struct {
	users usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(users usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate validates the bearer token and stores the caller's user ID
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated.WithDetails("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthenticated.WithDetails("Authorization header must be a Bearer token")
		}

		userID, err := m.users.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(keyUserID, userID)

		return next(c)
	}
}

// CallerID returns the authenticated user's ID set by Authenticate, or
// uuid.Nil on routes that skipped it.
func CallerID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(keyUserID).(uuid.UUID); ok {
		return id
	}

	return uuid.Nil
}
