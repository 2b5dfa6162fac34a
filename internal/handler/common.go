// Package handler contains the HTTP handlers for the workshop API.
// Handlers bind and forward to the stores; every store failure mode is
// translated here into a consistent JSON error shape.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// writeStoreError maps store errors onto HTTP responses.  Validation
// failures carry the full per-field map so a form can highlight every
// problem at once.
func writeStoreError(c echo.Context, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": verr.Fields})
	}
	if errors.Is(err, model.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
