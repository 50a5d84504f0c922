package handler

import (
	"log/slog"
	"net/http"

	"jukebox/internal/delivery/http/response"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves the register/login/refresh/logout endpoints.
type AuthHandler struct {
	users  usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(users usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

type registerRequest struct {
	Handle      string `json:"handle" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

// Register handles account creation.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), &usecase.RegisterInput{
		Handle:      req.Handle,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Handle   string `json:"handle" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles credential verification and session creation.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.users.Login(c.Request().Context(), &usecase.LoginInput{
		Handle:   req.Handle,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, authResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         toUserResponse(out.User),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh rotates a refresh token and returns a fresh pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.users.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, authResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         toUserResponse(out.User),
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the presented session. It succeeds for unknown and
// already-revoked tokens alike.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if req.RefreshToken == "" {
		return response.NoContent(c)
	}

	if err := h.users.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
