package handler

import (
	"net/http"
	"time"

	"jukebox/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler captures the process start instant; time.Time carries a
// monotonic reading, so reported uptime never goes backwards across wall
// clock adjustments.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"` // seconds since process start
}

// Check reports service liveness.
func (h *HealthHandler) Check(c echo.Context) error {
	return response.JSON(c, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}
