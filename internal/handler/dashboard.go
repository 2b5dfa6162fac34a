package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/repair-workshop/internal/stats"
	"github.com/iliyamo/repair-workshop/internal/store"
)

// DashboardHandler serves the aggregated statistics endpoint.
type DashboardHandler struct {
	Store *store.Repairs
}

// statsResponse is the full dashboard payload.
type statsResponse struct {
	Window          stats.Window           `json:"window"`
	Totals          stats.Totals           `json:"totals"`
	WeeklyProfit    []stats.DayProfit      `json:"weekly_profit"`
	TopModels       []stats.FrequencyCount `json:"top_models"`
	TopIssues       []stats.FrequencyCount `json:"top_issues"`
	StatusBreakdown map[string]int         `json:"status_breakdown"`
}

// Stats handles GET /v1/dashboard/stats?window=today|week|month.  Any
// other window value (or none) covers the whole collection.  Totals,
// top charts and the status breakdown honor the window; the weekly
// profit chart always shows the trailing 7 days.
func (h *DashboardHandler) Stats(c echo.Context) error {
	repairs, err := h.Store.List(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err)
	}

	window := stats.Window(c.QueryParam("window"))
	now := time.Now()
	filtered := stats.FilterByWindow(repairs, window, now)

	breakdown := make(map[string]int)
	for _, r := range filtered {
		breakdown[string(r.Status)]++
	}

	return c.JSON(http.StatusOK, statsResponse{
		Window:          window,
		Totals:          stats.ComputeTotals(filtered),
		WeeklyProfit:    stats.WeeklyProfitByDay(repairs, now),
		TopModels:       stats.TopModelsByFrequency(filtered, 5),
		TopIssues:       stats.TopIssuesByFrequency(filtered, 5),
		StatusBreakdown: breakdown,
	})
}
