package main

import (
	"fmt"
	"sync/atomic"

	"zentroq-backend/controllers"
	"zentroq-backend/models"
	"zentroq-backend/routes"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB creates an in-memory test database. Each call gets a uniquely
// named shared-cache database so every pooled connection sees the same schema
// while tests stay isolated from one another.
func setupTestDB() *gorm.DB {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, _ := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	db.AutoMigrate(
		&models.InventoryRecord{},
		&models.OrderRequest{},
		&models.TransferRequest{},
		&models.AuthorizedUser{},
	)
	return db
}

// setupTestApp wires a fiber app with every route against the given database
func setupTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupInventoryRoutes(app, controllers.NewInventoryController(db), controllers.NewExportController(db))
	routes.SetupMetricsRoutes(app, controllers.NewMetricsController(db))
	routes.SetupOrderRoutes(app, controllers.NewOrderController(db))
	routes.SetupTransferRoutes(app, controllers.NewTransferController(db))

	return app
}

func floatPtr(v float64) *float64 {
	return &v
}

// seedInventory loads a small fixed dataset: four regular ACME rows across two
// branches, one Corporate aggregate row and one BETA row.
func seedInventory(db *gorm.DB) {
	rows := []models.InventoryRecord{
		{
			Entity: "ACME", Branch: "DAL",
			PartNumber: "P-1", MfgName: "Acme Mfg", MfgPartNumber: "M-1",
			Description:      "Widget bolt",
			InventoryBalance: floatPtr(800), QuantityOnHand: 8,
			AverageCost: floatPtr(10), LatestCost: floatPtr(11),
			TTMQtyUsed: 12, T6MQtyUsed: 6, T3MQtyUsed: 3,
			MonthsOfCoverage: "8.0", Status: "excess",
		},
		{
			Entity: "ACME", Branch: "DAL",
			PartNumber: "P-2", MfgName: "Acme Mfg", MfgPartNumber: "M-2",
			Description:      "Gasket",
			InventoryBalance: floatPtr(50), QuantityOnHand: 1,
			AverageCost: floatPtr(50), LatestCost: floatPtr(55),
			TTMQtyUsed: 24, T6MQtyUsed: 12, T3MQtyUsed: 6,
			MonthsOfCoverage: "0.5", Status: "low",
		},
		{
			Entity: "ACME", Branch: "FTW",
			PartNumber: "P-3", MfgName: "Sealco", MfgPartNumber: "M-3",
			Description:      "Seal kit",
			InventoryBalance: floatPtr(500), QuantityOnHand: 5,
			AverageCost: floatPtr(100), LatestCost: floatPtr(100),
			TTMQtyUsed:       0,
			MonthsOfCoverage: "Infinity", Status: "dead",
		},
		{
			Entity: "ACME", Branch: "FTW",
			PartNumber: "P-4", MfgName: "Sealco", MfgPartNumber: "M-4",
			Description:      "Bearing",
			InventoryBalance: floatPtr(300), QuantityOnHand: 3,
			AverageCost: floatPtr(100), LatestCost: floatPtr(95),
			TTMQtyUsed: 12, T6MQtyUsed: 6, T3MQtyUsed: 3,
			MonthsOfCoverage: "3.0", Status: "optimal",
		},
		{
			Entity: "ACME", Branch: "Corporate",
			PartNumber: "P-1", MfgName: "Acme Mfg", MfgPartNumber: "M-1",
			Description:      "Widget bolt",
			InventoryBalance: floatPtr(9999), QuantityOnHand: 99,
			AverageCost: floatPtr(10), LatestCost: floatPtr(11),
			TTMQtyUsed: 120, T6MQtyUsed: 60, T3MQtyUsed: 30,
			MonthsOfCoverage: "1.5", Status: "excess",
		},
		{
			Entity: "BETA", Branch: "HOU",
			PartNumber: "P-5", MfgName: "Flexco", MfgPartNumber: "M-5",
			Description:      "Hose",
			InventoryBalance: floatPtr(200), QuantityOnHand: 1,
			AverageCost: floatPtr(200), LatestCost: floatPtr(210),
			TTMQtyUsed: 6, T6MQtyUsed: 3, T3MQtyUsed: 1,
			MonthsOfCoverage: "2.0", Status: "optimal",
		},
	}
	for i := range rows {
		db.Create(&rows[i])
	}
}
