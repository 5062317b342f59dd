package routes

import (
	"zentroq-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the authentication endpoints.
func SetupAuthRoutes(app *fiber.App, ac *controllers.AuthController) {
	app.Post("/auth/verify", ac.Verify)
}
