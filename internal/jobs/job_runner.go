package jobs

import (
	"context"
	"time"

	"bomne-rental-backend/internal/config"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental service.RentalService
	Ledger service.LedgerService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	loc := cfg.Assistant.Location()
	return &JobRunner{
		services: services,
		config:   cfg,
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and a per-run timeout
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	log.Info("Starting job")
	jobFunc(ctx)
	log.Info("Job completed", "took", time.Since(start).String())
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ReconcileRemainingAmounts()
	jr.LogOverdueRentals()
	jr.LogLedgerSummary()
}
