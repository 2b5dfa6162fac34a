package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Degradable is any store that can report it is serving local fallback
// data instead of the hosted backend.
type Degradable interface {
	Degraded() bool
}

// HealthHandler reports liveness plus whether any store is degraded.
type HealthHandler struct {
	Stores []Degradable
}

// Health handles GET /healthz.  The process is healthy even in
// degraded mode; backend_degraded tells operators the backend is
// unreachable and the seeded local tier is serving.
func (h *HealthHandler) Health(c echo.Context) error {
	degraded := false
	for _, s := range h.Stores {
		if s.Degraded() {
			degraded = true
			break
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":           "ok",
		"backend_degraded": degraded,
	})
}
