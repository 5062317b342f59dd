package controllers

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"

	"zentroq-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportController renders the filtered inventory view as a downloadable
// spreadsheet.
type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

var exportHeaders = []string{
	"Entity", "Branch", "Part Number", "Mfg Name", "Mfg Part Number",
	"Description", "Qty On Hand", "Qty On Order", "TTM Qty Used",
	"Months Of Coverage", "Average Cost", "Inventory Balance",
	"Status", "Network Status",
}

// Export handles GET /inventory/export?format=xlsx|csv. It accepts the same
// filters and sort keys as GET /inventory and exports the whole filtered view
// without pagination.
func (ec *ExportController) Export(c *fiber.Ctx) error {
	format := c.Query("format", "csv")
	if format != "csv" && format != "xlsx" {
		return badRequest(c, "format must be one of: csv, xlsx")
	}

	filter := services.InventoryFilter{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		NetworkStatus: c.Query("network_status"),
	}
	if entity := c.Query("entity"); entity != "" {
		filter.Entities = []string{entity}
	}
	if branch := c.Query("branch"); branch != "" {
		filter.Branches = []string{branch}
	}
	page := services.PageRequest{
		SortBy:  c.Query("sort_by", "mfgPartNumber"),
		SortDir: c.Query("sort_dir", "asc"),
	}

	items, _, err := services.QueryInventory(ec.DB, filter, page)
	if err != nil {
		return queryError(c, "Error exporting inventory", err)
	}

	data := make([][]string, 0, len(items))
	for _, item := range items {
		coverage := ""
		if item.MonthsOfCoverage != nil {
			v := float64(*item.MonthsOfCoverage)
			if math.IsInf(v, 1) {
				coverage = "Infinity"
			} else {
				coverage = strconv.FormatFloat(v, 'f', 2, 64)
			}
		}
		data = append(data, []string{
			item.Entity, item.Branch, item.PartNumber, item.MfgName,
			item.MfgPartNumber, item.Description,
			strconv.Itoa(item.QuantityOnHand),
			strconv.Itoa(item.QuantityOnOrder),
			strconv.Itoa(item.TTMQtyUsed),
			coverage,
			strconv.FormatFloat(item.AverageCost, 'f', 2, 64),
			strconv.FormatFloat(item.InventoryBalance, 'f', 2, 64),
			item.Status, item.CompanyStatus,
		})
	}

	if format == "xlsx" {
		return ec.writeExcel(c, data)
	}
	return ec.writeCSV(c, data)
}

func (ec *ExportController) writeCSV(c *fiber.Ctx, data [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return queryError(c, "Error writing export", err)
	}
	for _, row := range data {
		if err := w.Write(row); err != nil {
			return queryError(c, "Error writing export", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return queryError(c, "Error writing export", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=inventory.csv")
	return c.Send(buf.Bytes())
}

func (ec *ExportController) writeExcel(c *fiber.Ctx, data [][]string) error {
	const sheetName = "Inventory"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return queryError(c, "Error creating export sheet", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return queryError(c, "Error styling export sheet", err)
	}
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}
	for i := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return queryError(c, "Error writing export", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=inventory.xlsx")
	return c.Send(buf.Bytes())
}
