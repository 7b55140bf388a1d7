package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	httpapi "librarium-backend/internal/api/http"
	"librarium-backend/internal/clock"
	"librarium-backend/internal/config"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository/postgres"
	"librarium-backend/internal/security"
	"librarium-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Librarium Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Notification Gateway
	gateway := service.NewSendGridNotifier(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		store.MemberRepository,
	)

	clk := clock.System()
	policy := service.Policy{
		MaxActiveLoansPerMember: cfg.Policy.MaxActiveLoansPerMember,
		LoanPeriodDays:          cfg.Policy.LoanPeriodDays,
		LateFeePerDayCents:      cfg.Policy.LateFeePerDayCents,
	}

	// Initialize Services
	loanSvc := service.NewLoanService(
		store,
		store.LoanRepository,
		store.MemberRepository,
		store.BookRepository,
		store.StockRepository,
		store.ReservationRepository,
		store.HistoryRepository,
		store.ActivityLogRepository,
		store.NotificationRepository,
		gateway,
		clk,
		policy,
	)
	resSvc := service.NewReservationService(
		store,
		store.ReservationRepository,
		store.MemberRepository,
		store.ActivityLogRepository,
		clk,
	)
	stockSvc := service.NewStockService(store.StockRepository, clk)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	loanHandler := httpapi.NewLoanHandler(loanSvc)
	resHandler := httpapi.NewReservationHandler(resSvc)
	stockHandler := httpapi.NewStockHandler(stockSvc)
	noteHandler := httpapi.NewNotificationHandler(noteSvc)

	router := httpapi.NewRouter(tokenManager, loanHandler, resHandler, stockHandler, noteHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
