package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/model"
	"github.com/iliyamo/repair-workshop/internal/store"
)

// RepairHandler serves the repair-ticket endpoints.
type RepairHandler struct {
	Store *store.Repairs
}

// ListRepairs handles GET /v1/repairs.
func (h *RepairHandler) ListRepairs(c echo.Context) error {
	items, err := h.Store.List(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreateRepair handles POST /v1/repairs.  The body carries the ticket
// fields plus the consumed part lines; totals are computed server-side
// and never accepted from the client.
func (h *RepairHandler) CreateRepair(c echo.Context) error {
	var body struct {
		store.RepairInput
		UsedParts []store.UsedPartInput `json:"used_parts"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	rr, err := h.Store.AddRepair(c.Request().Context(), body.RepairInput, body.UsedParts)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, rr)
}

// UpdateStatus handles PATCH /v1/repairs/:id/status.  Transitions only
// move forward; completing a ticket stamps its completion time.  A 202
// means the transition was applied locally but the backend could not
// confirm it.
func (h *RepairHandler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	rr, err := h.Store.UpdateStatus(c.Request().Context(), c.Param("id"), model.RepairStatus(body.Status))
	if err != nil {
		return writeStoreError(c, err)
	}
	if rr == nil {
		return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
	}
	return c.JSON(http.StatusOK, rr)
}
