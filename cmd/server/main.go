package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "agriconnect-backend/internal/api/http"
	"agriconnect-backend/internal/config"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/jobs"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository/postgres"
	"agriconnect-backend/internal/scheduler"
	"agriconnect-backend/internal/security"
	"agriconnect-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgriConnect Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Event Hub
	hub := events.NewHub()

	// Initialize Services
	walletSvc := service.NewWalletService(store, hub)
	biddingSvc := service.NewBiddingService(store, hub, cfg.Ledger.EscrowAccountID)
	settlementSvc := service.NewSettlementService(store, hub, cfg.Ledger.EscrowAccountID)
	bookingSvc := service.NewBookingService(store, hub)
	noteSvc := service.NewNotificationService(store.Notifications())

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(walletSvc, biddingSvc, settlementSvc, bookingSvc, noteSvc, hub)
	router := httpapi.NewRouter(handlers, tokenManager)

	// Run the deadline sweeper in-process alongside the API server.
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Settlement: settlementSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
