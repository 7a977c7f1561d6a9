package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"bomne-rental-backend/internal/config"
	"bomne-rental-backend/internal/jobs"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/repository/postgres"
	"bomne-rental-backend/internal/scheduler"
	"bomne-rental-backend/internal/service"
	"bomne-rental-backend/internal/validator"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-remaining', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BOMNE Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	jobServices := &jobs.Services{
		Rental: service.NewRentalService(store.RentalRepository, validator.New(), cfg.Assistant.PhoneRegion),
		Ledger: service.NewLedgerService(store.LedgerRepository, store.RentalRepository, cfg.Assistant.PhoneRegion),
	}

	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "reconcile-remaining":
		jobRunner.ReconcileRemainingAmounts()
	case "overdue-rentals":
		jobRunner.LogOverdueRentals()
	case "ledger-summary":
		jobRunner.LogLedgerSummary()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - reconcile-remaining\n")
		fmt.Printf("  - overdue-rentals\n")
		fmt.Printf("  - ledger-summary\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
