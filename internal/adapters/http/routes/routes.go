package routes

import (
	"langson-benefits/internal/adapters/http/handlers"
	"langson-benefits/internal/adapters/http/middleware"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/config"
	"langson-benefits/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the cron
// service so main can start and stop it with the server.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	historyRepo := repositories.NewApplicationHistoryRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	itemRepo := repositories.NewPayoutItemRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	sequenceRepo := repositories.NewSequenceRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(notificationRepo)
	userService := services.NewUserService(userRepo)
	programService := services.NewProgramService(programRepo)
	appService := services.NewApplicationService(db, appRepo, historyRepo, programRepo, sequenceRepo, notifyService)
	payoutService := services.NewPayoutService(db, payoutRepo, itemRepo, appRepo, historyRepo, sequenceRepo, notifyService)
	complaintService := services.NewComplaintService(db, complaintRepo, sequenceRepo, notifyService)
	dashboardService := services.NewDashboardService(appRepo, payoutRepo, programRepo, userRepo, complaintRepo)
	cronService := services.NewCronService(programRepo, appRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	programHandler := handlers.NewProgramHandler(programService)
	appHandler := handlers.NewApplicationHandler(appService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Auth routes (public, stricter rate limit)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(), authHandler.Me)
	auth.Put("/me", middleware.AuthMiddleware(), authHandler.UpdateProfile)
	auth.Post("/change-password", middleware.AuthMiddleware(), authHandler.ChangePassword)

	// Program routes
	programs := api.Group("/programs", middleware.AuthMiddleware())
	programs.Get("/", programHandler.List)
	programs.Get("/:id", programHandler.Get)
	programs.Post("/", middleware.AdminOnly(), programHandler.Create)
	programs.Put("/:id", middleware.AdminOnly(), programHandler.Update)
	programs.Delete("/:id", middleware.AdminOnly(), programHandler.Delete)

	// Application routes
	applications := api.Group("/applications", middleware.AuthMiddleware())
	applications.Post("/", appHandler.Create)
	applications.Get("/", appHandler.List)
	applications.Get("/:id", appHandler.Get)
	applications.Get("/:id/history", appHandler.History)
	applications.Put("/:id/status", middleware.OfficerOrAdmin(), appHandler.UpdateStatus)

	// Payout routes (staff only)
	payouts := api.Group("/payouts", middleware.AuthMiddleware(), middleware.OfficerOrAdmin())
	payouts.Post("/", payoutHandler.CreateBatch)
	payouts.Get("/", payoutHandler.List)
	payouts.Get("/stats", payoutHandler.Stats)
	payouts.Post("/import", payoutHandler.ImportResults)
	payouts.Get("/:id", payoutHandler.Get)
	payouts.Put("/:id/status", payoutHandler.UpdateStatus)

	// Complaint routes
	complaints := api.Group("/complaints", middleware.AuthMiddleware())
	complaints.Post("/", complaintHandler.Create)
	complaints.Get("/", complaintHandler.List)
	complaints.Get("/stats", middleware.OfficerOrAdmin(), complaintHandler.Stats)
	complaints.Get("/:id", complaintHandler.Get)
	complaints.Put("/:id/assign", middleware.OfficerOrAdmin(), complaintHandler.Assign)
	complaints.Put("/:id/resolve", middleware.OfficerOrAdmin(), complaintHandler.Resolve)

	// Notification routes
	notifications := api.Group("/notifications", middleware.AuthMiddleware())
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Dashboard routes (staff only)
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware(), middleware.OfficerOrAdmin())
	dashboard.Get("/stats", middleware.AdminOnly(), dashboardHandler.Stats)
	dashboard.Get("/officer-stats", dashboardHandler.OfficerStats)
	dashboard.Get("/reports/yearly", dashboardHandler.YearlyReport)

	// User management routes
	users := api.Group("/users", middleware.AuthMiddleware())
	users.Get("/officers", middleware.OfficerOrAdmin(), userHandler.Officers)
	users.Get("/stats", middleware.AdminOnly(), userHandler.Stats)
	users.Get("/", middleware.AdminOnly(), userHandler.List)
	users.Post("/", middleware.AdminOnly(), userHandler.Create)
	users.Put("/:id", middleware.AdminOnly(), userHandler.Update)
	users.Delete("/:id", middleware.AdminOnly(), userHandler.Delete)

	return cronService
}
