package models

import (
	"time"
)

// InventoryRecord represents one SKU-at-location row of the inventory table.
// monthsOfCoverage is stored as text because the source data uses the literal
// "Infinity" as a sentinel for unbounded coverage (zero usage).
type InventoryRecord struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Entity           string     `json:"entity" gorm:"index"`
	Branch           string     `json:"branch" gorm:"index"`
	PartNumber       string     `json:"partNumber" gorm:"column:part_number;index"`
	MfgName          string     `json:"mfgName" gorm:"column:mfg_name"`
	MfgPartNumber    string     `json:"mfgPartNumber" gorm:"column:mfg_part_number;index"`
	Description      string     `json:"description"`
	Family           string     `json:"family" gorm:"default:''"`
	Category         string     `json:"category" gorm:"default:''"`
	InventoryBalance *float64   `json:"inventoryBalance" gorm:"column:inventory_balance"`
	QuantityOnHand   int        `json:"quantityOnHand" gorm:"column:quantity_on_hand"`
	AverageCost      *float64   `json:"averageCost" gorm:"column:average_cost"`
	LatestCost       *float64   `json:"latestCost" gorm:"column:latest_cost"`
	QuantityOnOrder  int        `json:"quantityOnOrder" gorm:"column:quantity_on_order"`
	T3MQtyUsed       int        `json:"t3mQtyUsed" gorm:"column:t3m_qty_used"`
	T6MQtyUsed       int        `json:"t6mQtyUsed" gorm:"column:t6m_qty_used"`
	TTMQtyUsed       int        `json:"ttmQtyUsed" gorm:"column:ttm_qty_used"`
	MonthsOfCoverage string     `json:"monthsOfCoverage" gorm:"column:months_of_coverage;default:''"`
	LastReceipt      *time.Time `json:"lastReceipt" gorm:"column:last_receipt"`
	Status           string     `json:"status" gorm:"index;default:''"`
	NetworkStatus    string     `json:"networkStatus" gorm:"column:network_status;index;default:''"`
}

// TableName overrides the default table name.
func (InventoryRecord) TableName() string {
	return "inventory_records"
}
