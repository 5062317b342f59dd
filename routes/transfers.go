package routes

import (
	"zentroq-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupTransferRoutes registers the transfer lifecycle and cart endpoints.
// Paths follow the legacy API for frontend compatibility.
func SetupTransferRoutes(app *fiber.App, tc *controllers.TransferController) {
	app.Post("/submit-transfer-requests", tc.SubmitTransfers)
	app.Get("/pending-transfers", tc.GetPendingTransfers)
	app.Get("/completed-transfers", tc.GetCompletedTransfers)
	app.Get("/cancelled-transfers", tc.GetCancelledTransfers)
	app.Put("/transfer-request/:id/status", tc.UpdateTransferStatus)

	app.Get("/active-transfers", tc.GetActiveTransfers)
	app.Post("/active-transfers/item", tc.AddActiveTransferItem)
	app.Put("/active-transfers/item/:id/quantity", tc.UpdateActiveTransferQuantity)
	app.Delete("/active-transfers/item/:id", tc.RemoveActiveTransferItem)
	app.Delete("/active-transfers/all", tc.ClearActiveTransfers)
	app.Post("/submit-active-transfers", tc.SubmitActiveTransfers)
}
