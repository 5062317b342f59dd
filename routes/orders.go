package routes

import (
	"zentroq-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupOrderRoutes registers the order lifecycle and cart endpoints. Paths
// follow the legacy API for frontend compatibility.
func SetupOrderRoutes(app *fiber.App, oc *controllers.OrderController) {
	app.Post("/submit-orders", oc.SubmitOrders)
	app.Get("/pending-orders", oc.GetPendingOrders)
	app.Get("/completed-orders", oc.GetCompletedOrders)
	app.Get("/cancelled-orders", oc.GetCancelledOrders)
	app.Put("/order-request/:id/status", oc.UpdateOrderStatus)

	app.Get("/active-orders", oc.GetActiveOrders)
	app.Post("/active-orders/item", oc.AddActiveOrderItem)
	app.Put("/active-orders/item/:id/quantity", oc.UpdateActiveOrderQuantity)
	app.Delete("/active-orders/item/:id", oc.RemoveActiveOrderItem)
	app.Delete("/active-orders/all", oc.ClearActiveOrders)
	app.Post("/submit-active-orders", oc.SubmitActiveOrders)
}
