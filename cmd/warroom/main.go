package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"

	"github.com/warroom/warroom/internal/config"
	"github.com/warroom/warroom/internal/database"
	"github.com/warroom/warroom/internal/handlers"
	"github.com/warroom/warroom/internal/middleware"
	"github.com/warroom/warroom/internal/notify"
	"github.com/warroom/warroom/internal/services"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting War Room incident analyzer...")

	// Initialize database connection
	if err := database.Connect(cfg.DatabaseURL, logger.Warn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Database connection established")

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	if cfg.GeminiAPIKey == "" {
		log.Printf("Warning: GEMINI_API_KEY not set; troubleshoot requests must carry their own api_key")
	}

	// Initialize the optional Slack verdict notifier
	var notifier services.VerdictNotifier
	if cfg.SlackEnabled() {
		notifier = notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannel)
		log.Printf("Slack verdict delivery enabled for channel %s", cfg.SlackChannel)
	} else {
		log.Printf("Slack verdict delivery disabled")
	}

	db := database.GetDB()

	// Set up HTTP server routes
	httpHandler := handlers.NewHTTPHandler(
		handlers.NewWebhookHandler(db),
		handlers.NewIncidentsHandler(db),
		handlers.NewTroubleshootHandler(db, notifier, cfg.GeminiAPIKey),
	)
	mux := http.NewServeMux()
	httpHandler.SetupRoutes(mux)

	// Wrap all routes with request-ID tagging and CORS
	corsMiddleware := middleware.NewCORSMiddleware() // Allow all origins
	handler := corsMiddleware.Wrap(middleware.RequestIDMiddleware(mux))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Printf("Trigger webhook endpoint: http://localhost:%d/webhook/trigger", cfg.HTTPPort)
	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")
	if err := httpServer.Close(); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Shutdown complete")
}
