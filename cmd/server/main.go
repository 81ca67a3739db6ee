package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/adapters/http/routes"
	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "langson-benefits/docs" // Swagger docs
)

// @title Lang Son Benefits API
// @version 1.0
// @description Cổng dịch vụ an sinh xã hội tỉnh Lạng Sơn - Benefits portal API

// @contact.name API Support
// @contact.email support@langson.gov.vn

// @host api.anngiep.langson.gov.vn
// @BasePath /api
// @schemes https

// @securityDefinitions.apikey GatewayUserID
// @in header
// @name x-user-id
// @description Authenticated user ID, injected by the API gateway.

// @securityDefinitions.apikey GatewayUserRole
// @in header
// @name x-user-role
// @description Authenticated role (CITIZEN, OFFICER, ADMIN), injected by the API gateway.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account and initial programs
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Lang Son Benefits API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cronService := routes.Setup(app, db, cfg)

	// Scheduled housekeeping (program expiry, stale review reminders)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron jobs: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
