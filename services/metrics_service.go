package services

import (
	"zentroq-backend/models"
	"zentroq-backend/utils"

	"gorm.io/gorm"
)

// SummaryTotals carries every count, value, quantity and COGS total for a
// filtered inventory set, computed by a single aggregate query.
type SummaryTotals struct {
	TotalItems     int
	ExcessItems    int
	LowStockItems  int
	DeadStockItems int

	TotalValue  float64
	ExcessValue float64
	LowValue    float64
	DeadValue   float64

	TotalQuantity  int
	ExcessQuantity int
	LowQuantity    int
	DeadQuantity   int

	TotalCOGS  float64
	ExcessCOGS float64
	LowCOGS    float64
	DeadCOGS   float64

	EntityCount int
	BranchCount int
}

// The annualized cost of goods sold proxy for a row: everything on hand plus
// the trailing twelve month usage, priced at average cost.
const cogsExpr = "(quantity_on_hand + COALESCE(ttm_qty_used, 0)) * COALESCE(average_cost, 0)"

const summarySelect = `
	COUNT(*) AS total_items,
	SUM(CASE WHEN status = 'excess' THEN 1 ELSE 0 END) AS excess_items,
	SUM(CASE WHEN status = 'low' THEN 1 ELSE 0 END) AS low_items,
	SUM(CASE WHEN status = 'dead' THEN 1 ELSE 0 END) AS dead_items,
	SUM(inventory_balance) AS total_value,
	SUM(CASE WHEN status = 'excess' THEN inventory_balance ELSE 0 END) AS excess_value,
	SUM(CASE WHEN status = 'low' THEN inventory_balance ELSE 0 END) AS low_value,
	SUM(CASE WHEN status = 'dead' THEN inventory_balance ELSE 0 END) AS dead_value,
	SUM(quantity_on_hand) AS total_quantity,
	SUM(CASE WHEN status = 'excess' THEN quantity_on_hand ELSE 0 END) AS excess_quantity,
	SUM(CASE WHEN status = 'low' THEN quantity_on_hand ELSE 0 END) AS low_quantity,
	SUM(CASE WHEN status = 'dead' THEN quantity_on_hand ELSE 0 END) AS dead_quantity,
	SUM(` + cogsExpr + `) AS total_cogs,
	SUM(CASE WHEN status = 'excess' THEN ` + cogsExpr + ` ELSE 0 END) AS excess_cogs,
	SUM(CASE WHEN status = 'low' THEN ` + cogsExpr + ` ELSE 0 END) AS low_cogs,
	SUM(CASE WHEN status = 'dead' THEN ` + cogsExpr + ` ELSE 0 END) AS dead_cogs,
	COUNT(DISTINCT entity) AS entity_count,
	COUNT(DISTINCT branch) AS branch_count`

// CollectSummary runs the one-pass aggregate over the filtered set. Aggregates
// come back with driver-dependent types (and NULLs on an empty set), so the raw
// row goes through the safe converters rather than a typed scan.
func CollectSummary(db *gorm.DB, f InventoryFilter) (SummaryTotals, error) {
	row := map[string]interface{}{}
	if err := f.Records(db).Select(summarySelect).Take(&row).Error; err != nil {
		return SummaryTotals{}, err
	}

	return SummaryTotals{
		TotalItems:     utils.SafeInt(row["total_items"], 0),
		ExcessItems:    utils.SafeInt(row["excess_items"], 0),
		LowStockItems:  utils.SafeInt(row["low_items"], 0),
		DeadStockItems: utils.SafeInt(row["dead_items"], 0),

		TotalValue:  utils.SafeFloat(row["total_value"], 0),
		ExcessValue: utils.SafeFloat(row["excess_value"], 0),
		LowValue:    utils.SafeFloat(row["low_value"], 0),
		DeadValue:   utils.SafeFloat(row["dead_value"], 0),

		TotalQuantity:  utils.SafeInt(row["total_quantity"], 0),
		ExcessQuantity: utils.SafeInt(row["excess_quantity"], 0),
		LowQuantity:    utils.SafeInt(row["low_quantity"], 0),
		DeadQuantity:   utils.SafeInt(row["dead_quantity"], 0),

		TotalCOGS:  utils.SafeFloat(row["total_cogs"], 0),
		ExcessCOGS: utils.SafeFloat(row["excess_cogs"], 0),
		LowCOGS:    utils.SafeFloat(row["low_cogs"], 0),
		DeadCOGS:   utils.SafeFloat(row["dead_cogs"], 0),

		EntityCount: utils.SafeInt(row["entity_count"], 0),
		BranchCount: utils.SafeInt(row["branch_count"], 0),
	}, nil
}

// Turnover is annualized COGS over inventory value. A non-positive value means
// the ratio is undefined and yields exactly 0 rather than a division error or
// a non-finite float.
func Turnover(totalCOGS, totalValue float64) float64 {
	if totalValue > 0 {
		return totalCOGS / totalValue
	}
	return 0.0
}

func (s SummaryTotals) OverviewTurnover() float64 { return Turnover(s.TotalCOGS, s.TotalValue) }
func (s SummaryTotals) ExcessTurnover() float64   { return Turnover(s.ExcessCOGS, s.ExcessValue) }
func (s SummaryTotals) LowTurnover() float64      { return Turnover(s.LowCOGS, s.LowValue) }
func (s SummaryTotals) DeadTurnover() float64     { return Turnover(s.DeadCOGS, s.DeadValue) }

// BranchMetric is one branch row of the per-entity breakdown.
type BranchMetric struct {
	Branch         string  `json:"branch" gorm:"column:branch"`
	ItemCount      int     `json:"itemCount" gorm:"column:item_count"`
	ExcessCount    int     `json:"excessCount" gorm:"column:excess_count"`
	LowStockCount  int     `json:"lowStockCount" gorm:"column:low_stock_count"`
	DeadStockCount int     `json:"deadStockCount" gorm:"column:dead_stock_count"`
	InventoryValue float64 `json:"inventoryValue" gorm:"column:inventory_value"`
}

// BranchBreakdown groups an entity's totals by branch, ordered by branch name.
func BranchBreakdown(db *gorm.DB, entity string) ([]BranchMetric, error) {
	rows := make([]BranchMetric, 0)
	err := db.Model(&models.InventoryRecord{}).
		Select(`branch,
			COUNT(*) AS item_count,
			SUM(CASE WHEN status = 'excess' THEN 1 ELSE 0 END) AS excess_count,
			SUM(CASE WHEN status = 'low' THEN 1 ELSE 0 END) AS low_stock_count,
			SUM(CASE WHEN status = 'dead' THEN 1 ELSE 0 END) AS dead_stock_count,
			COALESCE(SUM(inventory_balance), 0) AS inventory_value`).
		Where("entity = ?", entity).
		Group("branch").
		Order("branch").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
