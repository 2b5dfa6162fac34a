package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/store"
)

// SettingsHandler serves the workshop profile endpoints.
type SettingsHandler struct {
	Store *store.Settings
}

// Get handles GET /v1/settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	s, err := h.Store.Get(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Update handles PUT /v1/settings.  The profile is a singleton, so
// updates always merge into the one existing row and the merged
// profile is returned even when the backend could not confirm it.
func (h *SettingsHandler) Update(c echo.Context) error {
	var patch model.WorkshopSettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	s, err := h.Store.Update(c.Request().Context(), patch)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
