package handler

import (
	"log/slog"
	"net/http"

	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/response"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves profile reads and self-service profile management.
type UserHandler struct {
	users  usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(users usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " path parameter")
	}

	return id, nil
}

// Get returns a user's public profile.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

// Update modifies the caller's own profile.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id, middleware.CallerID(c), &usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toUserResponse(user))
}

// Delete removes the caller's own account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.DeleteAccount(c.Request().Context(), id, middleware.CallerID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
