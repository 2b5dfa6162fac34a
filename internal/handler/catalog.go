package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/store"
)

// CatalogHandler serves the brand and device-model endpoints.
type CatalogHandler struct {
	Store *store.Catalog
}

// ListBrands handles GET /v1/brands.
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	items, err := h.Store.ListBrands(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreateBrand handles POST /v1/brands.
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	brand, err := h.Store.AddBrand(c.Request().Context(), body.Name)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, brand)
}

// ListModels handles GET /v1/models with an optional brand_id filter.
func (h *CatalogHandler) ListModels(c echo.Context) error {
	items, err := h.Store.ListModels(c.Request().Context(), c.QueryParam("brand_id"))
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreateModel handles POST /v1/models.
func (h *CatalogHandler) CreateModel(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		BrandID string `json:"brand_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	m, err := h.Store.AddModel(c.Request().Context(), body.Name, body.BrandID)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}
