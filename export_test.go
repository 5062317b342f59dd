package main

import (
	"bytes"
	"encoding/csv"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/inventory/export?format=csv", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory.csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	assert.NoError(t, err)

	// Header row plus the five non-Corporate rows.
	assert.Len(t, records, 6)
	assert.Equal(t, "Entity", records[0][0])
	assert.Equal(t, "Network Status", records[0][len(records[0])-1])

	// The dead stock row renders the Infinity sentinel as text.
	found := false
	for _, row := range records[1:] {
		if row[4] == "M-3" {
			assert.Equal(t, "Infinity", row[9])
			found = true
		}
	}
	assert.True(t, found)
}

func TestExportCSVFiltered(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/inventory/export?format=csv&status=excess", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	records, err := csv.NewReader(resp.Body).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "excess", records[1][12])
}

func TestExportXLSX(t *testing.T) {
	db := setupTestDB()
	seedInventory(db)
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/inventory/export?format=xlsx", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))

	payload, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	assert.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, "Entity", rows[0][0])
}

func TestExportInvalidFormat(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	req := httptest.NewRequest("GET", "/inventory/export?format=pdf", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
