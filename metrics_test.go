package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMetrics(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/metrics")
	assert.Equal(t, float64(5), body["totalSKUs"])
	assert.Equal(t, float64(1), body["excessItems"])
	assert.Equal(t, float64(1), body["lowStockItems"])
	assert.Equal(t, float64(1), body["deadStockItems"])
	assert.Equal(t, float64(1850), body["totalInventoryValue"])
	assert.Greater(t, body["inventoryTurnover"].(float64), 0.0)
}

func TestGetMetricsEmptyStore(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	body := getJSON(t, app, "/metrics")
	assert.Equal(t, float64(0), body["totalSKUs"])
	assert.Equal(t, float64(0), body["totalInventoryValue"])

	// The turnover guard: zero value yields exactly 0, never NaN or an error.
	assert.Equal(t, float64(0), body["inventoryTurnover"])
}

func TestGetEntityMetrics(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/metrics/ACME")
	assert.Equal(t, "ACME", body["entity"])

	// Entity metrics include the Corporate aggregate row.
	assert.Equal(t, float64(5), body["totalSKUs"])
	assert.Equal(t, float64(3), body["branchCount"])
	assert.Equal(t, []interface{}{"Corporate", "DAL", "FTW"}, body["branches"])

	branchMetrics := body["branchMetrics"].([]interface{})
	assert.Len(t, branchMetrics, 3)
	dal := branchMetrics[1].(map[string]interface{})
	assert.Equal(t, "DAL", dal["branch"])
	assert.Equal(t, float64(2), dal["itemCount"])
	assert.Equal(t, float64(1), dal["excessCount"])
	assert.Equal(t, float64(1), dal["lowStockCount"])
	assert.Equal(t, float64(850), dal["inventoryValue"])

	filterCounts := body["filterCounts"].(map[string]interface{})
	assert.Equal(t, float64(5), filterCounts["total"])
	assert.Equal(t, float64(2), filterCounts["excess"])
}

func TestGetEntityMetricsNotFound(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/metrics/NOPE", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestGetAllCompleteMetrics(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/metrics/all/complete")
	assert.Equal(t, "All Entities", body["entity"])
	assert.Equal(t, float64(5), body["totalSKUs"])
	assert.Equal(t, float64(2), body["entityCount"])
	assert.Equal(t, []interface{}{"ACME", "BETA"}, body["entities"])
	assert.Equal(t, []interface{}{"DAL", "FTW", "HOU"}, body["branches"])
}

func TestGetAdvancedMetrics(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/metrics/advanced?entities=ACME")
	assert.Equal(t, float64(5), body["totalSKUs"])
	assert.Equal(t, float64(2), body["excessItems"])
	assert.Equal(t, []interface{}{"ACME"}, body["entities_in_result"])
	assert.Equal(t, []interface{}{"Corporate", "DAL", "FTW"}, body["branches_in_result"])

	summaries := body["summaries"].(map[string]interface{})
	overview := summaries["overview"].(map[string]interface{})
	assert.Equal(t, float64(11649), overview["totalValue"])

	excess := summaries["excess"].(map[string]interface{})
	assert.Equal(t, float64(10799), excess["totalValue"])
	assert.Equal(t, float64(107), excess["totalQuantity"])

	dead := summaries["deadStock"].(map[string]interface{})
	assert.Equal(t, float64(500), dead["totalValue"])
	// Dead stock has no usage, so its turnover collapses toward holding cost.
	assert.Equal(t, float64(1), dead["inventoryTurnover"])
}

func TestGetFilterCountsAll(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/filtercounts/all")
	assert.Equal(t, "all", body["entity"])
	assert.Equal(t, float64(5), body["totalItems"])
	assert.Equal(t, float64(1), body["excessItems"])
	assert.Equal(t, float64(1), body["lowStockItems"])
	assert.Equal(t, float64(1), body["deadStockItems"])

	summaries := body["summaries"].(map[string]interface{})
	overview := summaries["overview"].(map[string]interface{})
	assert.Equal(t, float64(1850), overview["totalValue"])
	assert.Equal(t, float64(2), overview["entityCount"])
	assert.Equal(t, float64(3), overview["branchCount"])
}

func TestGetFilterCountsEntity(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/filtercounts/ACME?branch=DAL")
	assert.Equal(t, "ACME", body["entity"])
	assert.Equal(t, "DAL", body["branch"])
	assert.Equal(t, float64(2), body["totalItems"])
	assert.Equal(t, float64(1), body["excessItems"])
	assert.Equal(t, float64(1), body["lowStockItems"])
	assert.Equal(t, float64(0), body["deadStockItems"])
}

func TestTurnoverValues(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	// Turnover = sum((onHand + ttmUsed) * avgCost) / sum(balance) over the
	// non-Corporate rows: 4850 / 1850.
	body := getJSON(t, app, "/metrics")
	assert.InDelta(t, 4850.0/1850.0, body["inventoryTurnover"].(float64), 1e-9)
}
