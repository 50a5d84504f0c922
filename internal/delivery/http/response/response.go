// Package response defines the wire envelope. Successful responses carry
// the resource JSON directly; failures share one error shape across every
// endpoint, including unknown routes and panics.
package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error envelope.
type ErrorBody struct {
	Error     string    `json:"error"`     // short machine-readable name, e.g. "PLAYLIST_NOT_FOUND"
	Message   string    `json:"message"`   // human-readable description
	Timestamp time.Time `json:"timestamp"` // RFC 3339, UTC
}

// JSON writes a successful response with the given status.
func JSON(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// NoContent writes an empty 204 response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes the error envelope.
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
