package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "jukebox/internal/delivery/context"
	"jukebox/internal/delivery/http/response"
	domainerrors "jukebox/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware translates every error reaching echo into the shared
// error envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message()
		if details := appErr.Details(); details != "" {
			message = message + ": " + details
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), message)

		return
	}

	// echo surfaces routing misses (404/405) and binding failures here.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code := "HTTP_ERROR"
		switch httpErr.Code {
		case http.StatusNotFound:
			code = "NOT_FOUND"
		case http.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case http.StatusBadRequest:
			code = "BAD_REQUEST"
		case http.StatusRequestEntityTooLarge:
			code = "REQUEST_TOO_LARGE"
		}
		_ = response.Error(c, httpErr.Code, code, fmt.Sprintf("%v", httpErr.Message))

		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	// Internals stay out of the response body.
	_ = response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}
