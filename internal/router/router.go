// Package router maps the workshop API surface onto Echo routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/handler"
)

// Handlers groups everything RegisterRoutes needs to wire the API.
type Handlers struct {
	Health    *handler.HealthHandler
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	Repairs   *handler.RepairHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
}

// RegisterRoutes registers every endpoint.  The rate limiter guards
// all mutating routes; the response cache applies only to the
// dashboard, which is the one read-heavy aggregation endpoint.
func RegisterRoutes(e *echo.Echo, h Handlers, rateLimit, cache echo.MiddlewareFunc) {
	e.GET("/healthz", h.Health.Health)

	v1 := e.Group("/v1")

	v1.GET("/brands", h.Catalog.ListBrands)
	v1.POST("/brands", h.Catalog.CreateBrand, rateLimit)
	v1.GET("/models", h.Catalog.ListModels)
	v1.POST("/models", h.Catalog.CreateModel, rateLimit)

	v1.GET("/spare-parts", h.Inventory.ListSpareParts)
	v1.POST("/spare-parts", h.Inventory.CreateSparePart, rateLimit)
	v1.PATCH("/spare-parts/:id", h.Inventory.UpdateSparePart, rateLimit)

	v1.GET("/repairs", h.Repairs.ListRepairs)
	v1.POST("/repairs", h.Repairs.CreateRepair, rateLimit)
	v1.PATCH("/repairs/:id/status", h.Repairs.UpdateStatus, rateLimit)

	v1.GET("/settings", h.Settings.Get)
	v1.PUT("/settings", h.Settings.Update, rateLimit)

	v1.GET("/dashboard/stats", h.Dashboard.Stats, cache)
}
