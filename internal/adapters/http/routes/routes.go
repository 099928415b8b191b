package routes

import (
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/http/handlers"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/http/middleware"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, store *datastore.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(store)
	otpRepo := repositories.NewOTPRepository(store)
	sessionRepo := repositories.NewSessionRepository(store)
	voterRepo := repositories.NewVoterIDRepository(store)
	adminRepo := repositories.NewAdminRepository(store)

	// Initialize services
	smsService := services.NewSMSService(cfg)
	otpService := services.NewOTPService(otpRepo, smsService, cfg)
	authService := services.NewAuthService(userRepo, sessionRepo, voterRepo, otpService, cfg)
	adminService := services.NewAdminService(adminRepo, cfg)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	adminHandler := handlers.NewAdminHandler(adminService)
	userHandler := handlers.NewUserHandler(userService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Citizen authentication
	auth := api.Group("/auth")
	auth.Post("/send-otp", middleware.AuthRateLimiter(), authHandler.SendOTP)
	auth.Post("/verify-otp", middleware.AuthRateLimiter(), authHandler.VerifyOTP)
	auth.Get("/validate-voter-id/:voterId", authHandler.ValidateVoterID)

	citizenOnly := middleware.CitizenAuth(authService)
	auth.Get("/me", citizenOnly, authHandler.Me)
	auth.Put("/profile", citizenOnly, authHandler.UpdateProfile)
	auth.Post("/logout", citizenOnly, authHandler.Logout)

	// Admin authentication & management
	adminAuth := api.Group("/admin/auth")
	adminAuth.Post("/login", middleware.AuthRateLimiter(), adminHandler.Login)

	adminOnly := middleware.AdminAuth(adminService)
	adminAuth.Get("/me", adminOnly, adminHandler.Me)
	adminAuth.Post("/logout", adminOnly, adminHandler.Logout)
	adminAuth.Get("/validate", adminOnly, adminHandler.Validate)
	adminAuth.Post("/create", adminOnly, adminHandler.Create)
	adminAuth.Get("/list", adminOnly, adminHandler.List)
	adminAuth.Put("/update/:adminId", adminOnly, adminHandler.Update)
	adminAuth.Delete("/delete/:adminId", adminOnly, adminHandler.Delete)

	// Admin-facing user management
	adminUsers := api.Group("/admin/users", adminOnly)
	adminUsers.Get("", userHandler.List)
	adminUsers.Get("/:userId", userHandler.Get)
	adminUsers.Put("/:userId", userHandler.Update)
	adminUsers.Delete("/:userId", userHandler.Deactivate)
}
