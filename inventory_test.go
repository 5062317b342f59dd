package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func getJSON(t *testing.T, app *fiber.App, path string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGetInventory(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/inventory")

	// The Corporate row is excluded from the company-wide view.
	assert.Equal(t, float64(5), body["totalCount"])
	assert.Equal(t, float64(20), body["limit"])
	assert.Equal(t, false, body["hasMore"])
	assert.Len(t, body["items"], 5)

	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, float64(5), metrics["totalSKUs"])
	assert.Equal(t, float64(1), metrics["excessItems"])
	assert.Equal(t, float64(1), metrics["lowStockItems"])
	assert.Equal(t, float64(1), metrics["deadStockItems"])
	assert.Equal(t, float64(1850), metrics["totalInventoryValue"])
	assert.Equal(t, float64(2), metrics["entityCount"])
	assert.Equal(t, float64(3), metrics["branchCount"])
	assert.Greater(t, metrics["inventoryTurnover"].(float64), 0.0)

	assert.NotEmpty(t, body["executionTime"])
}

func TestGetInventoryPagination(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/inventory?limit=2&offset=0")
	assert.Equal(t, float64(5), body["totalCount"])
	assert.Len(t, body["items"], 2)
	assert.Equal(t, true, body["hasMore"])

	body = getJSON(t, app, "/inventory?limit=2&offset=4")
	assert.Len(t, body["items"], 1)
	assert.Equal(t, false, body["hasMore"])

	// limit=0 disables pagination entirely.
	body = getJSON(t, app, "/inventory?limit=0")
	assert.Len(t, body["items"], 5)
	assert.Equal(t, false, body["hasMore"])
}

func TestGetInventoryStatusFilter(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/inventory?status=excess&limit=0")
	items := body["items"].([]interface{})
	assert.Equal(t, float64(1), body["totalCount"])
	assert.Len(t, items, 1)
	for _, raw := range items {
		item := raw.(map[string]interface{})
		assert.Equal(t, "excess", item["status"])
	}

	// A filtered view reports zero turnover rather than a partial ratio.
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, float64(0), metrics["inventoryTurnover"])

	// "overview" is not a real status and must not filter anything.
	body = getJSON(t, app, "/inventory?status=overview&limit=0")
	assert.Equal(t, float64(5), body["totalCount"])
}

func TestGetInventorySearch(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/inventory?search=GASKET")
	assert.Equal(t, float64(1), body["totalCount"])

	item := body["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Gasket", item["description"])
	assert.Equal(t, float64(1), item["id"])
}

func TestGetInventoryCoverageSort(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	coverages := func(body map[string]interface{}) []interface{} {
		var out []interface{}
		for _, raw := range body["items"].([]interface{}) {
			out = append(out, raw.(map[string]interface{})["monthsOfCoverage"])
		}
		return out
	}

	// Ascending: finite values first, the Infinity sentinel last.
	body := getJSON(t, app, "/inventory?sort_by=monthsOfCoverage&sort_dir=asc&limit=0")
	assert.Equal(t, []interface{}{0.5, 2.0, 3.0, 8.0, "Infinity"}, coverages(body))

	// Descending: Infinity first.
	body = getJSON(t, app, "/inventory?sort_by=monthsOfCoverage&sort_dir=desc&limit=0")
	assert.Equal(t, []interface{}{"Infinity", 8.0, 3.0, 2.0, 0.5}, coverages(body))
}

func TestGetEntityInventory(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/inventory/ACME")
	assert.Equal(t, float64(4), body["totalCount"])

	// Entity-scoped search covers part columns only; branch names don't match.
	body = getJSON(t, app, "/inventory/ACME?search=DAL")
	assert.Equal(t, float64(0), body["totalCount"])

	body = getJSON(t, app, "/inventory/ACME?branch=FTW")
	assert.Equal(t, float64(2), body["totalCount"])
}

func TestGetAdvancedInventory(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	// The advanced view includes Corporate rows.
	body := getJSON(t, app, "/inventory/advanced?entities=ACME")
	assert.Equal(t, float64(5), body["totalCount"])

	body = getJSON(t, app, "/inventory/advanced?entities=ACME,BETA&branches=DAL,HOU")
	assert.Equal(t, float64(3), body["totalCount"])

	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, float64(3), metrics["totalSKUs"])
	assert.Equal(t, float64(1050), metrics["totalInventoryValue"])
}

func TestGetEntities(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/entities")
	assert.Equal(t, []interface{}{"ACME", "BETA"}, body["entities"])

	entityBranches := body["entityBranches"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Corporate", "DAL", "FTW"}, entityBranches["ACME"])
	assert.Equal(t, []interface{}{"HOU"}, entityBranches["BETA"])
}

func TestGetPartBranchSummary(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	body := getJSON(t, app, "/part-branch-summary")
	assert.Equal(t, []interface{}{"Corporate", "DAL"}, body["M-1"])
	assert.Equal(t, []interface{}{"FTW"}, body["M-3"])
}

func TestGetPartDetails(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/part-details/all/M-1", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var items []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Len(t, items, 2)

	// Internal part numbers match too.
	req = httptest.NewRequest("GET", "/part-details/all/P-3", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Len(t, items, 1)
	assert.Equal(t, "Seal kit", items[0]["description"])
}

func TestRefreshNetworkStatusEndpoint(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("POST", "/network-status/refresh", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(5), body["partsClassified"])

	inv := getJSON(t, app, "/inventory?search=Seal+kit")
	item := inv["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "dead", item["companyStatus"])
}
