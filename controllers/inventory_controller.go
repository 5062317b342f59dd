package controllers

import (
	"fmt"
	"time"

	"zentroq-backend/models"
	"zentroq-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InventoryController serves the inventory projection endpoints.
type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

func pageFromQuery(c *fiber.Ctx) services.PageRequest {
	return services.PageRequest{
		Limit:   c.QueryInt("limit", 20),
		Offset:  c.QueryInt("offset", 0),
		SortBy:  c.Query("sort_by", "mfgPartNumber"),
		SortDir: c.Query("sort_dir", "asc"),
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func queryError(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   true,
		"message": message + ": " + err.Error(),
	})
}

func executionTime(start time.Time) string {
	return fmt.Sprintf("%.3fs", time.Since(start).Seconds())
}

// GetInventory handles GET /inventory: the paginated company-wide view with a
// metrics block computed over the same filtered set.
func (ic *InventoryController) GetInventory(c *fiber.Ctx) error {
	start := time.Now()

	page := pageFromQuery(c)
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

	items, total, err := services.QueryInventory(ic.DB, filter, page)
	if err != nil {
		return queryError(c, "Error reading inventory data", err)
	}

	summary, err := services.CollectSummary(ic.DB, filter)
	if err != nil {
		return queryError(c, "Error computing inventory metrics", err)
	}

	// Turnover is only meaningful over the whole view; a filtered subset
	// reports 0 instead of a misleading partial ratio.
	turnover := 0.0
	if filter.Search == "" && len(filter.Entities) == 0 && len(filter.Branches) == 0 && filter.Status == "" {
		turnover = summary.OverviewTurnover()
	}

	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": total,
		"limit":      page.Limit,
		"offset":     page.Offset,
		"hasMore":    int64(page.Offset+len(items)) < total,
		"metrics": fiber.Map{
			"totalSKUs":           summary.TotalItems,
			"excessItems":         summary.ExcessItems,
			"lowStockItems":       summary.LowStockItems,
			"deadStockItems":      summary.DeadStockItems,
			"totalInventoryValue": summary.TotalValue,
			"inventoryTurnover":   turnover,
			"entityCount":         summary.EntityCount,
			"branchCount":         summary.BranchCount,
		},
		"executionTime": executionTime(start),
	})
}

// GetEntityInventory handles GET /inventory/:entity, the single-entity view.
// Free-text search covers the part columns only here.
func (ic *InventoryController) GetEntityInventory(c *fiber.Ctx) error {
	start := time.Now()

	page := pageFromQuery(c)
	filter := services.InventoryFilter{
		Search:         c.Query("search"),
		Entities:       []string{c.Params("entity")},
		Status:         c.Query("status"),
		NetworkStatus:  c.Query("network_status"),
		PartSearchOnly: true,
	}
	if branch := c.Query("branch"); branch != "" {
		filter.Branches = []string{branch}
	}

	items, total, err := services.QueryInventory(ic.DB, filter, page)
	if err != nil {
		return queryError(c, "Error reading entity inventory", err)
	}

	summary, err := services.CollectSummary(ic.DB, filter)
	if err != nil {
		return queryError(c, "Error computing entity metrics", err)
	}

	turnover := 0.0
	if filter.Status == "" {
		turnover = summary.OverviewTurnover()
	}

	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": total,
		"limit":      page.Limit,
		"offset":     page.Offset,
		"hasMore":    int64(page.Offset+len(items)) < total,
		"metrics": fiber.Map{
			"totalSKUs":           summary.TotalItems,
			"excessItems":         summary.ExcessItems,
			"lowStockItems":       summary.LowStockItems,
			"deadStockItems":      summary.DeadStockItems,
			"totalInventoryValue": summary.TotalValue,
			"inventoryTurnover":   turnover,
		},
		"executionTime": executionTime(start),
	})
}

// GetAdvancedInventory handles GET /inventory/advanced: multi-entity and
// multi-branch selection via comma-separated lists, Corporate rows included.
func (ic *InventoryController) GetAdvancedInventory(c *fiber.Ctx) error {
	start := time.Now()

	page := pageFromQuery(c)
	filter := services.InventoryFilter{
		Search:           c.Query("search"),
		Entities:         services.SplitList(c.Query("entities")),
		Branches:         services.SplitList(c.Query("branches")),
		Status:           c.Query("status"),
		NetworkStatus:    c.Query("network_status"),
		IncludeCorporate: true,
	}

	items, total, err := services.QueryInventory(ic.DB, filter, page)
	if err != nil {
		return queryError(c, "Error reading inventory data", err)
	}

	summary, err := services.CollectSummary(ic.DB, filter)
	if err != nil {
		return queryError(c, "Error computing inventory metrics", err)
	}

	return c.JSON(fiber.Map{
		"items":      items,
		"totalCount": total,
		"limit":      page.Limit,
		"offset":     page.Offset,
		"hasMore":    int64(page.Offset+len(items)) < total,
		"metrics": fiber.Map{
			"totalSKUs":           summary.TotalItems,
			"totalInventoryValue": summary.TotalValue,
		},
		"executionTime": executionTime(start),
	})
}

// GetEntities handles GET /entities: distinct entity names plus the branch
// list under each.
func (ic *InventoryController) GetEntities(c *fiber.Ctx) error {
	var entities []string
	err := ic.DB.Model(&models.InventoryRecord{}).
		Distinct().
		Where("entity <> ''").
		Order("entity").
		Pluck("entity", &entities).Error
	if err != nil {
		return queryError(c, "Error reading entities", err)
	}

	entityBranches := make(map[string][]string, len(entities))
	for _, entity := range entities {
		var branches []string
		err := ic.DB.Model(&models.InventoryRecord{}).
			Distinct().
			Where("entity = ? AND branch <> ''", entity).
			Order("branch").
			Pluck("branch", &branches).Error
		if err != nil {
			return queryError(c, "Error reading entity branches", err)
		}
		entityBranches[entity] = branches
	}

	return c.JSON(fiber.Map{
		"entities":       entities,
		"entityBranches": entityBranches,
	})
}

// GetPartBranchSummary handles GET /part-branch-summary.
func (ic *InventoryController) GetPartBranchSummary(c *fiber.Ctx) error {
	summary, err := services.PartBranchSummary(ic.DB)
	if err != nil {
		return queryError(c, "Error reading part branch summary", err)
	}
	return c.JSON(summary)
}

// GetPartDetails handles GET /part-details/all/:partNumber, matching either
// the internal or the manufacturer part number across every branch.
func (ic *InventoryController) GetPartDetails(c *fiber.Ctx) error {
	partNumber := c.Params("partNumber")

	var records []models.InventoryRecord
	err := ic.DB.
		Where("part_number = ? OR mfg_part_number = ?", partNumber, partNumber).
		Order("entity, branch").
		Find(&records).Error
	if err != nil {
		return queryError(c, "Error reading part details", err)
	}

	items := make([]services.InventoryItem, 0, len(records))
	for i := range records {
		items = append(items, services.RecordToItem(&records[i], i+1))
	}
	return c.JSON(items)
}

// RefreshNetworkStatuses handles POST /network-status/refresh, rederiving the
// stored company-wide status for every part.
func (ic *InventoryController) RefreshNetworkStatuses(c *fiber.Ctx) error {
	parts, err := services.RefreshNetworkStatuses(ic.DB)
	if err != nil {
		return queryError(c, "Error refreshing network statuses", err)
	}
	return c.JSON(fiber.Map{
		"message":         "Network statuses refreshed",
		"partsClassified": parts,
	})
}
