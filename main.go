package main

import (
	"log"
	"os"
	"time"

	"zentroq-backend/controllers"
	"zentroq-backend/models"
	"zentroq-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	db, err := models.InitDB(models.LoadDBConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = db.AutoMigrate(
		&models.InventoryRecord{},
		&models.OrderRequest{},
		&models.TransferRequest{},
		&models.AuthorizedUser{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "ZentroQ Inventory API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	authController := controllers.NewAuthController(db)
	inventoryController := controllers.NewInventoryController(db)
	metricsController := controllers.NewMetricsController(db)
	orderController := controllers.NewOrderController(db)
	transferController := controllers.NewTransferController(db)
	exportController := controllers.NewExportController(db)

	routes.SetupAuthRoutes(app, authController)
	routes.SetupInventoryRoutes(app, inventoryController, exportController)
	routes.SetupMetricsRoutes(app, metricsController)
	routes.SetupOrderRoutes(app, orderController)
	routes.SetupTransferRoutes(app, transferController)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the ZentroQ Inventory API",
		})
	})

	// Liveness probe against the store.
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.Exec("SELECT 1").Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"database":  "connected",
			"timestamp": time.Now().Unix(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
