package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/store"
)

// InventoryHandler serves the spare-parts endpoints.
type InventoryHandler struct {
	Store *store.Inventory
}

// ListSpareParts handles GET /v1/spare-parts.
func (h *InventoryHandler) ListSpareParts(c echo.Context) error {
	items, err := h.Store.ListSpareParts(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreateSparePart handles POST /v1/spare-parts.
func (h *InventoryHandler) CreateSparePart(c echo.Context) error {
	var body store.SparePartInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	part, err := h.Store.AddSparePart(c.Request().Context(), body)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, part)
}

// UpdateSparePart handles PATCH /v1/spare-parts/:id.  A confirmed
// update returns 200 with the stored part; when the backend could not
// confirm it the patch is still applied locally and the reply is 202
// with the merged local copy.
func (h *InventoryHandler) UpdateSparePart(c echo.Context) error {
	var patch model.SparePartPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	id := c.Param("id")
	part, err := h.Store.UpdateSparePart(c.Request().Context(), id, patch)
	if err != nil {
		return writeStoreError(c, err)
	}
	if part == nil {
		return c.JSON(http.StatusAccepted, map[string]any{
			"status": "accepted",
			"item":   h.Store.PartByID(id),
		})
	}
	return c.JSON(http.StatusOK, part)
}
