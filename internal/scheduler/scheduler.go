package scheduler

import (
	"github.com/robfig/cron/v3"

	"bomne-rental-backend/internal/jobs"
	"bomne-rental-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner.
// Schedules are evaluated in the shop's time zone with seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Assistant.Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"ReconcileRemainingAmounts", cfg.ReconcileRemaining, s.jobs.ReconcileRemainingAmounts},
		{"LogOverdueRentals", cfg.OverdueRentals, s.jobs.LogOverdueRentals},
		{"LogLedgerSummary", cfg.LedgerSummary, s.jobs.LogLedgerSummary},
	}

	registered := 0
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			logger.Error("Failed to register job", "job", e.name, "schedule", e.spec, "error", err)
			continue
		}
		registered++
	}

	logger.Info("Cron jobs registered", "count", registered)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
