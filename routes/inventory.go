package routes

import (
	"zentroq-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes registers the inventory endpoints. The fixed-path
// routes must come before /inventory/:entity or the param route shadows them.
func SetupInventoryRoutes(app *fiber.App, ic *controllers.InventoryController, ec *controllers.ExportController) {
	app.Get("/inventory", ic.GetInventory)
	app.Get("/inventory/advanced", ic.GetAdvancedInventory)
	app.Get("/inventory/export", ec.Export)
	app.Get("/inventory/:entity", ic.GetEntityInventory)

	app.Get("/entities", ic.GetEntities)
	app.Get("/part-branch-summary", ic.GetPartBranchSummary)
	app.Get("/part-details/all/:partNumber", ic.GetPartDetails)

	app.Post("/network-status/refresh", ic.RefreshNetworkStatuses)
}
