package FiberConfig

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"ParkSys/Controllers"
	"ParkSys/Models"
	"ParkSys/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	vehicleController := Controllers.NewVehicleController(db)
	invoiceController := Controllers.NewInvoiceController(db)
	analyticsController := Controllers.NewAnalyticsController(db)

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/user", middleware.Verify(0), authController.CurrentUser)

	// Vehicle session routes
	vehicles := api.Group("/vehicles", middleware.Verify(Models.PermissionOperator))
	vehicles.Post("/entry/:license_plate", vehicleController.RegisterEntry)
	vehicles.Put("/exit/:license_plate", vehicleController.RegisterExit)
	vehicles.Get("/active", vehicleController.GetActiveVehicles)
	vehicles.Get("/today", vehicleController.GetTodayVehicles)
	vehicles.Get("/history", vehicleController.GetVehicleHistory)
	vehicles.Get("/estimate", vehicleController.EstimateStay)

	// Invoice routes - place /report BEFORE the :number route to avoid conflicts
	invoices := api.Group("/invoices", middleware.Verify(Models.PermissionOperator))
	invoices.Get("/", invoiceController.GetInvoices)
	invoices.Get("/report", invoiceController.DailyReport)
	invoices.Get("/:number", invoiceController.GetInvoice)

	// Analytics routes
	analytics := api.Group("/analytics", middleware.Verify(Models.PermissionOperator))
	analytics.Get("/summary", analyticsController.Summary)
	analytics.Get("/revenue-by-class", analyticsController.RevenueByClass)
	analytics.Get("/daily-revenue", analyticsController.DailyRevenue)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// NewApp builds the Fiber app with the full middleware chain and route table.
func NewApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))
	SetupRoutes(app, db)
	return app
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := NewApp(Models.DB)
	log.Fatal(app.Listen(":8000"))
}
