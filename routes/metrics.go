package routes

import (
	"zentroq-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupMetricsRoutes registers the aggregate reporting endpoints. Fixed paths
// come before the :entity routes.
func SetupMetricsRoutes(app *fiber.App, mc *controllers.MetricsController) {
	app.Get("/metrics", mc.GetMetrics)
	app.Get("/metrics/advanced", mc.GetAdvancedMetrics)
	app.Get("/metrics/all/complete", mc.GetAllCompleteMetrics)
	app.Get("/metrics/:entity", mc.GetEntityMetrics)

	app.Get("/filtercounts/all", mc.GetAllFilterCounts)
	app.Get("/filtercounts/:entity", mc.GetFilterCounts)
}
