package services

import (
	"zentroq-backend/models"
	"zentroq-backend/utils"

	"gorm.io/gorm"
)

// Inventory status labels.
const (
	StatusExcess  = "excess"
	StatusDead    = "dead"
	StatusLow     = "low"
	StatusOptimal = "optimal"
	StatusUnknown = "unknown"
)

// Business rule constants, shared by every aggregation scope.
const (
	ExcessThresholdMonths = 6.0
	LowThresholdMonths    = 1.0
	MonthsPerYear         = 12.0
	// CoverageSentinel stands in for unbounded coverage (zero usage). Kept
	// finite so it survives JSON encoding without special handling.
	CoverageSentinel = 999.0
)

// ClassifyStatus applies the business rule ladder to one aggregation scope.
// First match wins; the categories are not mutually exclusive under the raw
// numbers, so the order is significant.
func ClassifyStatus(monthsOfCoverage float64, ttmQtyUsed, quantityOnHand int) string {
	switch {
	case monthsOfCoverage > ExcessThresholdMonths:
		return StatusExcess
	case ttmQtyUsed == 0 && quantityOnHand > 0:
		return StatusDead
	case monthsOfCoverage < LowThresholdMonths && ttmQtyUsed > 0:
		return StatusLow
	default:
		return StatusOptimal
	}
}

// RecordStatus returns the stored branch-local status when present; the
// classifier is a fallback, not an override.
func RecordStatus(rec *models.InventoryRecord) string {
	if rec.Status != "" {
		return rec.Status
	}
	coverage := utils.SafeFloat(rec.MonthsOfCoverage, CoverageSentinel)
	return ClassifyStatus(coverage, rec.TTMQtyUsed, rec.QuantityOnHand)
}

// ClassifyNetworkStatus classifies company-wide sums for one part. Zero usage
// with stock on hand is dead stock regardless of the coverage sentinel, which
// would otherwise shadow it behind the excess rule.
func ClassifyNetworkStatus(totalOnHand, totalTTMUsed float64) string {
	if totalTTMUsed == 0 && totalOnHand > 0 {
		return StatusDead
	}
	coverage := CoverageSentinel
	if totalTTMUsed > 0 {
		coverage = totalOnHand / (totalTTMUsed / MonthsPerYear)
	}
	return ClassifyStatus(coverage, int(totalTTMUsed), int(totalOnHand))
}

type networkAggregate struct {
	MfgPartNumber string  `gorm:"column:mfg_part_number"`
	TotalOnHand   float64 `gorm:"column:total_on_hand"`
	TotalTTMUsed  float64 `gorm:"column:total_ttm_used"`
}

// NetworkStatuses computes the company-wide status for each given manufacturer
// part number, summed across all branches except Corporate, in one grouped
// query. Parts with no matching rows come back as unknown.
func NetworkStatuses(db *gorm.DB, mfgPartNumbers []string) (map[string]string, error) {
	statuses := make(map[string]string, len(mfgPartNumbers))
	if len(mfgPartNumbers) == 0 {
		return statuses, nil
	}

	unique := make([]string, 0, len(mfgPartNumbers))
	seen := make(map[string]bool, len(mfgPartNumbers))
	for _, pn := range mfgPartNumbers {
		if !seen[pn] {
			seen[pn] = true
			unique = append(unique, pn)
		}
	}

	var rows []networkAggregate
	err := db.Model(&models.InventoryRecord{}).
		Select("mfg_part_number, SUM(quantity_on_hand) AS total_on_hand, SUM(ttm_qty_used) AS total_ttm_used").
		Where("mfg_part_number IN ? AND branch <> ?", unique, CorporateBranch).
		Group("mfg_part_number").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		statuses[row.MfgPartNumber] = ClassifyNetworkStatus(row.TotalOnHand, row.TotalTTMUsed)
	}
	for _, pn := range unique {
		if _, ok := statuses[pn]; !ok {
			statuses[pn] = StatusUnknown
		}
	}
	return statuses, nil
}

// RefreshNetworkStatuses rederives the stored network_status column for every
// record from branch-summed aggregates. The read paths consume the stored
// column only; this is the single derivation routine. Returns the number of
// parts classified.
func RefreshNetworkStatuses(db *gorm.DB) (int, error) {
	var rows []networkAggregate
	err := db.Model(&models.InventoryRecord{}).
		Select("mfg_part_number, SUM(quantity_on_hand) AS total_on_hand, SUM(ttm_qty_used) AS total_ttm_used").
		Where("branch <> ?", CorporateBranch).
		Group("mfg_part_number").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	byStatus := make(map[string][]string)
	for _, row := range rows {
		status := ClassifyNetworkStatus(row.TotalOnHand, row.TotalTTMUsed)
		byStatus[status] = append(byStatus[status], row.MfgPartNumber)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Parts present only at Corporate have no network aggregate and stay unknown.
		if err := tx.Model(&models.InventoryRecord{}).
			Where("1 = 1").
			Update("network_status", StatusUnknown).Error; err != nil {
			return err
		}
		for status, parts := range byStatus {
			if err := tx.Model(&models.InventoryRecord{}).
				Where("mfg_part_number IN ?", parts).
				Update("network_status", status).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
