package controllers

import (
	"time"

	"zentroq-backend/models"
	"zentroq-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MetricsController serves the aggregate reporting endpoints.
type MetricsController struct {
	DB *gorm.DB
}

func NewMetricsController(db *gorm.DB) *MetricsController {
	return &MetricsController{DB: db}
}

// GetMetrics handles GET /metrics: the company-wide headline numbers.
func (mc *MetricsController) GetMetrics(c *fiber.Ctx) error {
	summary, err := services.CollectSummary(mc.DB, services.InventoryFilter{})
	if err != nil {
		return queryError(c, "Error computing metrics", err)
	}

	return c.JSON(fiber.Map{
		"totalSKUs":           summary.TotalItems,
		"excessItems":         summary.ExcessItems,
		"lowStockItems":       summary.LowStockItems,
		"deadStockItems":      summary.DeadStockItems,
		"totalInventoryValue": summary.TotalValue,
		"inventoryTurnover":   summary.OverviewTurnover(),
	})
}

// GetEntityMetrics handles GET /metrics/:entity with a per-branch breakdown.
// Unknown entities are a 404, not an empty result.
func (mc *MetricsController) GetEntityMetrics(c *fiber.Ctx) error {
	entity := c.Params("entity")

	var exists int64
	if err := mc.DB.Model(&models.InventoryRecord{}).
		Where("entity = ?", entity).
		Count(&exists).Error; err != nil {
		return queryError(c, "Error computing entity metrics", err)
	}
	if exists == 0 {
		return notFound(c, "Entity '"+entity+"' not found")
	}

	filter := services.InventoryFilter{
		Entities:         []string{entity},
		IncludeCorporate: true,
	}
	summary, err := services.CollectSummary(mc.DB, filter)
	if err != nil {
		return queryError(c, "Error computing entity metrics", err)
	}

	branchMetrics, err := services.BranchBreakdown(mc.DB, entity)
	if err != nil {
		return queryError(c, "Error computing branch metrics", err)
	}
	branches := make([]string, 0, len(branchMetrics))
	for _, bm := range branchMetrics {
		branches = append(branches, bm.Branch)
	}

	return c.JSON(fiber.Map{
		"entity":              entity,
		"totalSKUs":           summary.TotalItems,
		"excessItems":         summary.ExcessItems,
		"lowStockItems":       summary.LowStockItems,
		"deadStockItems":      summary.DeadStockItems,
		"totalInventoryValue": summary.TotalValue,
		"inventoryTurnover":   summary.OverviewTurnover(),
		"branchCount":         len(branches),
		"branches":            branches,
		"branchMetrics":       branchMetrics,
		"filterCounts": fiber.Map{
			"total":  summary.TotalItems,
			"excess": summary.ExcessItems,
			"low":    summary.LowStockItems,
			"dead":   summary.DeadStockItems,
		},
	})
}

// GetAllCompleteMetrics handles GET /metrics/all/complete: the company-wide
// numbers plus the full entity and branch rosters.
func (mc *MetricsController) GetAllCompleteMetrics(c *fiber.Ctx) error {
	summary, err := services.CollectSummary(mc.DB, services.InventoryFilter{})
	if err != nil {
		return queryError(c, "Error computing metrics", err)
	}

	var entities []string
	if err := mc.DB.Model(&models.InventoryRecord{}).
		Distinct().
		Where("entity <> ''").
		Order("entity").
		Pluck("entity", &entities).Error; err != nil {
		return queryError(c, "Error reading entities", err)
	}

	var branches []string
	if err := mc.DB.Model(&models.InventoryRecord{}).
		Distinct().
		Where("branch <> '' AND branch <> ?", services.CorporateBranch).
		Order("branch").
		Pluck("branch", &branches).Error; err != nil {
		return queryError(c, "Error reading branches", err)
	}

	return c.JSON(fiber.Map{
		"entity":              "All Entities",
		"totalSKUs":           summary.TotalItems,
		"excessItems":         summary.ExcessItems,
		"lowStockItems":       summary.LowStockItems,
		"deadStockItems":      summary.DeadStockItems,
		"totalInventoryValue": summary.TotalValue,
		"inventoryTurnover":   summary.OverviewTurnover(),
		"entityCount":         len(entities),
		"branchCount":         len(branches),
		"entities":            entities,
		"branches":            branches,
		"filterCounts": fiber.Map{
			"total":  summary.TotalItems,
			"excess": summary.ExcessItems,
			"low":    summary.LowStockItems,
			"dead":   summary.DeadStockItems,
		},
	})
}

// bucketSummaries renders the overview/excess/lowStock/deadStock blocks shared
// by the advanced metrics and filter count endpoints.
func bucketSummaries(s services.SummaryTotals, entityCount, branchCount int) fiber.Map {
	return fiber.Map{
		"overview": fiber.Map{
			"totalValue":        s.TotalValue,
			"totalQuantity":     s.TotalQuantity,
			"inventoryTurnover": s.OverviewTurnover(),
			"entityCount":       entityCount,
			"branchCount":       branchCount,
		},
		"excess": fiber.Map{
			"totalValue":        s.ExcessValue,
			"totalQuantity":     s.ExcessQuantity,
			"inventoryTurnover": s.ExcessTurnover(),
			"entityCount":       entityCount,
			"branchCount":       branchCount,
		},
		"lowStock": fiber.Map{
			"totalValue":        s.LowValue,
			"totalQuantity":     s.LowQuantity,
			"inventoryTurnover": s.LowTurnover(),
			"entityCount":       entityCount,
			"branchCount":       branchCount,
		},
		"deadStock": fiber.Map{
			"totalValue":        s.DeadValue,
			"totalQuantity":     s.DeadQuantity,
			"inventoryTurnover": s.DeadTurnover(),
			"entityCount":       entityCount,
			"branchCount":       branchCount,
		},
	}
}

// GetAdvancedMetrics handles GET /metrics/advanced: bucketed summaries over a
// multi-entity, multi-branch selection, reporting which entities and branches
// actually appear in the result.
func (mc *MetricsController) GetAdvancedMetrics(c *fiber.Ctx) error {
	start := time.Now()

	filter := services.InventoryFilter{
		Search:           c.Query("search"),
		Entities:         services.SplitList(c.Query("entities")),
		Branches:         services.SplitList(c.Query("branches")),
		Status:           c.Query("status_filter"),
		IncludeCorporate: true,
	}

	summary, err := services.CollectSummary(mc.DB, filter)
	if err != nil {
		return queryError(c, "Error computing advanced metrics", err)
	}

	// The roster of entities and branches in the selection, independent of
	// the status bucket filter.
	scope := services.InventoryFilter{
		Entities:         filter.Entities,
		Branches:         filter.Branches,
		IncludeCorporate: true,
	}
	var entitiesInResult []string
	if err := scope.Records(mc.DB).
		Distinct().
		Where("entity <> ''").
		Order("entity").
		Pluck("entity", &entitiesInResult).Error; err != nil {
		return queryError(c, "Error reading entities", err)
	}
	var branchesInResult []string
	if err := scope.Records(mc.DB).
		Distinct().
		Where("branch <> ''").
		Order("branch").
		Pluck("branch", &branchesInResult).Error; err != nil {
		return queryError(c, "Error reading branches", err)
	}

	return c.JSON(fiber.Map{
		"totalSKUs":          summary.TotalItems,
		"excessItems":        summary.ExcessItems,
		"lowStockItems":      summary.LowStockItems,
		"deadStockItems":     summary.DeadStockItems,
		"summaries":          bucketSummaries(summary, len(entitiesInResult), len(branchesInResult)),
		"entities_in_result": entitiesInResult,
		"branches_in_result": branchesInResult,
		"executionTime":      executionTime(start),
	})
}

// GetFilterCounts handles GET /filtercounts/:entity: status bucket counts and
// summaries for one entity under the current search and branch filters.
func (mc *MetricsController) GetFilterCounts(c *fiber.Ctx) error {
	filter := services.InventoryFilter{
		Search:         c.Query("search"),
		Entities:       []string{c.Params("entity")},
		PartSearchOnly: true,
	}
	branch := c.Query("branch")
	if branch != "" {
		filter.Branches = []string{branch}
	}

	summary, err := services.CollectSummary(mc.DB, filter)
	if err != nil {
		return queryError(c, "Error computing filter counts", err)
	}

	return c.JSON(fiber.Map{
		"entity":         c.Params("entity"),
		"branch":         branch,
		"totalItems":     summary.TotalItems,
		"excessItems":    summary.ExcessItems,
		"lowStockItems":  summary.LowStockItems,
		"deadStockItems": summary.DeadStockItems,
		"summaries":      bucketSummaries(summary, summary.EntityCount, summary.BranchCount),
	})
}

// GetAllFilterCounts handles GET /filtercounts/all, the company-wide variant.
func (mc *MetricsController) GetAllFilterCounts(c *fiber.Ctx) error {
	filter := services.InventoryFilter{
		Search: c.Query("search"),
	}
	if branch := c.Query("branch"); branch != "" {
		filter.Branches = []string{branch}
	}

	summary, err := services.CollectSummary(mc.DB, filter)
	if err != nil {
		return queryError(c, "Error computing filter counts", err)
	}

	return c.JSON(fiber.Map{
		"entity":         "all",
		"totalItems":     summary.TotalItems,
		"excessItems":    summary.ExcessItems,
		"lowStockItems":  summary.LowStockItems,
		"deadStockItems": summary.DeadStockItems,
		"summaries":      bucketSummaries(summary, summary.EntityCount, summary.BranchCount),
	})
}
