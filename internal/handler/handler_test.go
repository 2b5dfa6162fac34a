package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/repair-workshop/internal/store"
)

// Stores built without repositories serve the seeded local tier, which
// is exactly the degraded mode the handlers must keep working in.
func newTestStores() (*store.Catalog, *store.Inventory, *store.Repairs, *store.Settings) {
	catalog := store.NewCatalog(nil)
	inventory := store.NewInventory(nil, catalog, nil)
	repairs := store.NewRepairs(nil, catalog, inventory, nil)
	settings := store.NewSettings(nil)
	return catalog, inventory, repairs, settings
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func TestHealthReportsDegradedBackend(t *testing.T) {
	t.Parallel()

	catalog, _, _, _ := newTestStores()
	h := &HealthHandler{Stores: []Degradable{catalog}}

	rec := doJSON(t, h.Health, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["backend_degraded"])
}

func TestCreateBrandValidationReturnsFieldMap(t *testing.T) {
	t.Parallel()

	catalog, _, _, _ := newTestStores()
	h := &CatalogHandler{Store: catalog}

	rec := doJSON(t, h.CreateBrand, http.MethodPost, "/v1/brands", `{"name":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Errors, "name")
}

func TestListModelsHonorsBrandFilter(t *testing.T) {
	t.Parallel()

	catalog, _, _, _ := newTestStores()
	h := &CatalogHandler{Store: catalog}

	rec := doJSON(t, h.ListModels, http.MethodGet, "/v1/models?brand_id=1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			BrandID string `json:"brand_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	for _, m := range body.Items {
		assert.Equal(t, "1", m.BrandID)
	}
}

func TestUpdateSparePartUnconfirmedReturnsAccepted(t *testing.T) {
	t.Parallel()

	_, inventory, _, _ := newTestStores()
	h := &InventoryHandler{Store: inventory}

	rec := doJSON(t, h.UpdateSparePart, http.MethodPatch, "/v1/spare-parts/1",
		`{"quantity":4}`, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		Status string `json:"status"`
		Item   struct {
			Quantity int `json:"quantity"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "accepted", body.Status)
	assert.Equal(t, 4, body.Item.Quantity)
}

func TestUpdateSparePartNotFound(t *testing.T) {
	t.Parallel()

	_, inventory, _, _ := newTestStores()
	h := &InventoryHandler{Store: inventory}

	rec := doJSON(t, h.UpdateSparePart, http.MethodPatch, "/v1/spare-parts/ghost",
		`{"quantity":4}`, map[string]string{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRepairReturnsTicketWithTotals(t *testing.T) {
	t.Parallel()

	_, _, repairs, _ := newTestStores()
	h := &RepairHandler{Store: repairs}

	payload := `{
		"customer_name": "Sara Ahmadi",
		"customer_phone": "0912 000 0000",
		"device_brand_id": "2",
		"device_model_id": "3",
		"issue_type": "Battery drain",
		"labor_cost": 50,
		"used_parts": [{"spare_part_id": "2", "quantity_used": 1, "price_at_time": 250}]
	}`
	rec := doJSON(t, h.CreateRepair, http.MethodPost, "/v1/repairs", payload, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID        string  `json:"id"`
		TotalCost float64 `json:"total_cost"`
		Profit    float64 `json:"profit"`
		Status    string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.InDelta(t, 300.0, body.TotalCost, 1e-9)
	assert.InDelta(t, 125.0, body.Profit, 1e-9)
	assert.Equal(t, "pending", body.Status)
}

func TestUpdateRepairStatusLocalIsAccepted(t *testing.T) {
	t.Parallel()

	_, _, repairs, _ := newTestStores()
	h := &RepairHandler{Store: repairs}

	created := doJSON(t, h.CreateRepair, http.MethodPost, "/v1/repairs", `{
		"customer_name": "Sara Ahmadi",
		"customer_phone": "0912 000 0000",
		"device_brand_id": "2",
		"device_model_id": "3",
		"issue_type": "Battery drain"
	}`, nil)
	require.Equal(t, http.StatusCreated, created.Code)
	var ticket struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &ticket))

	rec := doJSON(t, h.UpdateStatus, http.MethodPatch, "/v1/repairs/"+ticket.ID+"/status",
		`{"status":"in_progress"}`, map[string]string{"id": ticket.ID})
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(t, h.UpdateStatus, http.MethodPatch, "/v1/repairs/"+ticket.ID+"/status",
		`{"status":"pending"}`, map[string]string{"id": ticket.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardStatsShape(t *testing.T) {
	t.Parallel()

	_, _, repairs, _ := newTestStores()
	rh := &RepairHandler{Store: repairs}
	created := doJSON(t, rh.CreateRepair, http.MethodPost, "/v1/repairs", `{
		"customer_name": "Sara Ahmadi",
		"customer_phone": "0912 000 0000",
		"device_brand_id": "2",
		"device_model_id": "3",
		"issue_type": "Battery drain",
		"labor_cost": 50,
		"used_parts": [{"spare_part_id": "2", "quantity_used": 1, "price_at_time": 250}]
	}`, nil)
	require.Equal(t, http.StatusCreated, created.Code)

	h := &DashboardHandler{Store: repairs}
	rec := doJSON(t, h.Stats, http.MethodGet, "/v1/dashboard/stats?window=today", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Window string `json:"window"`
		Totals struct {
			Revenue float64 `json:"total_revenue"`
			Count   int     `json:"total_repairs"`
		} `json:"totals"`
		WeeklyProfit    []any          `json:"weekly_profit"`
		TopModels       []any          `json:"top_models"`
		StatusBreakdown map[string]int `json:"status_breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "today", body.Window)
	assert.Equal(t, 1, body.Totals.Count)
	assert.InDelta(t, 300.0, body.Totals.Revenue, 1e-9)
	assert.Len(t, body.WeeklyProfit, 7)
	assert.Len(t, body.TopModels, 1)
	assert.Equal(t, 1, body.StatusBreakdown["pending"])
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	_, _, _, settings := newTestStores()
	h := &SettingsHandler{Store: settings}

	rec := doJSON(t, h.Update, http.MethodPut, "/v1/settings", `{"name":"Downtown Repair Lab"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h.Get, http.MethodGet, "/v1/settings", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Downtown Repair Lab", body.Name)
}
