package services

import (
	"strings"

	"zentroq-backend/models"

	"gorm.io/gorm"
)

// CorporateBranch is the virtual aggregate branch, not a real stocking
// location. Inventory views exclude it unless a filter opts back in.
const CorporateBranch = "Corporate"

// filterableStatuses are the status values that translate into a predicate;
// "overview" and anything else mean no status filtering.
var filterableStatuses = map[string]bool{
	StatusExcess: true,
	StatusLow:    true,
	StatusDead:   true,
}

// InventoryFilter is the typed set of predicates applied to inventory queries.
// Every clause renders into a parameterized condition; filter values never end
// up concatenated into query text.
type InventoryFilter struct {
	Search           string
	Entities         []string
	Branches         []string
	Status           string
	NetworkStatus    string
	IncludeCorporate bool
	// PartSearchOnly narrows free-text search to the part-related columns,
	// used by the entity-scoped endpoints.
	PartSearchOnly bool
}

// Apply renders the filter onto a query.
func (f InventoryFilter) Apply(q *gorm.DB) *gorm.DB {
	if !f.IncludeCorporate {
		q = q.Where("branch <> ?", CorporateBranch)
	}
	if len(f.Entities) > 0 {
		q = q.Where("entity IN ?", f.Entities)
	}
	if len(f.Branches) > 0 {
		q = q.Where("branch IN ?", f.Branches)
	}
	if filterableStatuses[f.Status] {
		q = q.Where("status = ?", f.Status)
	}
	if f.NetworkStatus != "" {
		q = q.Where("network_status = ?", f.NetworkStatus)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		if f.PartSearchOnly {
			q = q.Where(
				"(LOWER(mfg_part_number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(mfg_name) LIKE ? OR LOWER(part_number) LIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		} else {
			q = q.Where(
				"(LOWER(mfg_part_number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(mfg_name) LIKE ? OR LOWER(part_number) LIKE ? OR LOWER(entity) LIKE ? OR LOWER(branch) LIKE ?)",
				pattern, pattern, pattern, pattern, pattern, pattern,
			)
		}
	}
	return q
}

// Records returns a fresh filtered query over the inventory table.
func (f InventoryFilter) Records(db *gorm.DB) *gorm.DB {
	return f.Apply(db.Model(&models.InventoryRecord{}))
}

// SplitList parses a comma-separated query value into trimmed non-empty parts.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
