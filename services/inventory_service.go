package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"zentroq-backend/models"
	"zentroq-backend/utils"

	"gorm.io/gorm"
)

// InventoryItem is the external representation of one inventory row. IDs are
// positional within a query result, not database keys.
type InventoryItem struct {
	ID               int              `json:"id"`
	Entity           string           `json:"entity"`
	Branch           string           `json:"branch"`
	PartNumber       string           `json:"partNumber"`
	MfgName          string           `json:"mfgName"`
	MfgPartNumber    string           `json:"mfgPartNumber"`
	Description      string           `json:"description"`
	Family           string           `json:"family"`
	Category         string           `json:"category"`
	InventoryBalance float64          `json:"inventoryBalance"`
	QuantityOnHand   int              `json:"quantityOnHand"`
	AverageCost      float64          `json:"averageCost"`
	LatestCost       float64          `json:"latestCost"`
	QuantityOnOrder  int              `json:"quantityOnOrder"`
	T3MQtyUsed       int              `json:"t3mQtyUsed"`
	T6MQtyUsed       int              `json:"t6mQtyUsed"`
	TTMQtyUsed       int              `json:"ttmQtyUsed"`
	MonthsOfCoverage *utils.JSONFloat `json:"monthsOfCoverage"`
	LastReceipt      *string          `json:"lastReceipt"`
	Status           string           `json:"status"`
	CompanyStatus    string           `json:"companyStatus"`
}

// sortFieldMap maps API sort keys onto columns. Unrecognized keys fall back to
// inventory_balance instead of erroring.
var sortFieldMap = map[string]string{
	"entity":           "entity",
	"branch":           "branch",
	"partNumber":       "part_number",
	"mfgName":          "mfg_name",
	"mfgPartNumber":    "mfg_part_number",
	"mfgpartnbr":       "mfg_part_number",
	"description":      "description",
	"inventoryBalance": "inventory_balance",
	"quantityOnHand":   "quantity_on_hand",
	"averageCost":      "average_cost",
	"latestCost":       "latest_cost",
	"quantityOnOrder":  "quantity_on_order",
	"t3mQtyUsed":       "t3m_qty_used",
	"t6mQtyUsed":       "t6m_qty_used",
	"ttmQtyUsed":       "ttm_qty_used",
	"monthsOfCoverage": "months_of_coverage",
	"lastReceipt":      "last_receipt",
	"status":           "status",
	"companyStatus":    "network_status",
}

// PageRequest is the pagination and ordering envelope for inventory queries.
// A zero Limit means no pagination.
type PageRequest struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// orderClause builds the ORDER BY expression from whitelisted column names
// only; the client-supplied sort key never reaches the SQL text directly.
// Sorting by coverage ranks the "Infinity" sentinel above every finite value
// in either direction.
func orderClause(sortBy, sortDir string) string {
	dir := "ASC"
	if strings.EqualFold(sortDir, "desc") {
		dir = "DESC"
	}
	column, ok := sortFieldMap[sortBy]
	if !ok {
		column = "inventory_balance"
	}
	if column == "months_of_coverage" {
		infRank, finiteRank := 1, 0
		if dir == "DESC" {
			infRank, finiteRank = 0, 1
		}
		return fmt.Sprintf(
			"CASE WHEN months_of_coverage = 'Infinity' THEN %d ELSE %d END, CAST(CASE WHEN months_of_coverage IN ('', 'Infinity') THEN '0' ELSE months_of_coverage END AS FLOAT) %s",
			infRank, finiteRank, dir)
	}
	return column + " " + dir
}

// QueryInventory runs one filtered, sorted, paginated read and returns the
// page items plus the pre-pagination total.
func QueryInventory(db *gorm.DB, f InventoryFilter, page PageRequest) ([]InventoryItem, int64, error) {
	var total int64
	if err := f.Records(db).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]InventoryItem, 0)
	if total == 0 {
		return items, 0, nil
	}

	q := f.Records(db).Order(orderClause(page.SortBy, page.SortDir))
	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Offset)
	}

	var records []models.InventoryRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	for i := range records {
		items = append(items, RecordToItem(&records[i], page.Offset+i+1))
	}
	return items, total, nil
}

// RecordToItem converts a stored row into the external item shape, with the
// positional id the frontend keys rows on.
func RecordToItem(rec *models.InventoryRecord, id int) InventoryItem {
	item := InventoryItem{
		ID:               id,
		Entity:           rec.Entity,
		Branch:           rec.Branch,
		PartNumber:       rec.PartNumber,
		MfgName:          rec.MfgName,
		MfgPartNumber:    rec.MfgPartNumber,
		Description:      rec.Description,
		Family:           rec.Family,
		Category:         rec.Category,
		InventoryBalance: utils.SafeFloat(rec.InventoryBalance, 0),
		QuantityOnHand:   rec.QuantityOnHand,
		AverageCost:      utils.SafeFloat(rec.AverageCost, 0),
		LatestCost:       utils.SafeFloat(rec.LatestCost, 0),
		QuantityOnOrder:  rec.QuantityOnOrder,
		T3MQtyUsed:       rec.T3MQtyUsed,
		T6MQtyUsed:       rec.T6MQtyUsed,
		TTMQtyUsed:       rec.TTMQtyUsed,
		Status:           RecordStatus(rec),
		CompanyStatus:    rec.NetworkStatus,
	}
	if item.CompanyStatus == "" {
		item.CompanyStatus = StatusUnknown
	}
	// strconv accepts the "Infinity" sentinel directly, yielding +Inf, which
	// the JSONFloat marshaler turns back into the quoted sentinel.
	if raw := strings.TrimSpace(rec.MonthsOfCoverage); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			v := utils.JSONFloat(parsed)
			item.MonthsOfCoverage = &v
		}
	}
	if rec.LastReceipt != nil {
		s := rec.LastReceipt.Format(time.RFC3339)
		item.LastReceipt = &s
	}
	return item
}

// PartBranchSummary maps every manufacturer part number to the sorted list of
// branches stocking it.
func PartBranchSummary(db *gorm.DB) (map[string][]string, error) {
	var rows []struct {
		MfgPartNumber string `gorm:"column:mfg_part_number"`
		Branch        string `gorm:"column:branch"`
	}
	err := db.Model(&models.InventoryRecord{}).
		Distinct("mfg_part_number", "branch").
		Where("mfg_part_number <> '' AND branch <> ''").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make(map[string][]string)
	for _, row := range rows {
		summary[row.MfgPartNumber] = append(summary[row.MfgPartNumber], row.Branch)
	}
	for _, branches := range summary {
		sort.Strings(branches)
	}
	return summary, nil
}
