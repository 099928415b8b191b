package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/http/middleware"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/http/routes"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/datastore"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/adapters/persistence/repositories"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/config"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/mohanbhogavarapu07/bolisetti-fast-api/docs" // Swagger docs
)

// @title Bolisetti Citizen Services API
// @version 1.0
// @description Citizen OTP authentication and admin management backend

// @contact.name API Support

// @BasePath /api
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Record-store client (all persistence is remote)
	store := datastore.New(cfg.DataStore.URL, time.Duration(cfg.DataStore.TimeoutSeconds)*time.Second)

	// Start cleanup scheduler for expired OTP and session rows
	otpRepo := repositories.NewOTPRepository(store)
	sessionRepo := repositories.NewSessionRepository(store)
	otpService := services.NewOTPService(otpRepo, services.NewSMSService(cfg), cfg)
	cronService := services.NewCronService(otpService, sessionRepo)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Bolisetti Citizen Services API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass store and cfg for dependency injection)
	routes.Setup(app, store, cfg)

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
