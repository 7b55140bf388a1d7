package jobs

import (
	"database/sql"

	"librarium-backend/internal/clock"
	"librarium-backend/internal/config"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository/postgres"
	"librarium-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db      *sql.DB
	store   *postgres.Store
	gateway service.NotificationGateway
	clock   clock.Clock
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, gateway service.NotificationGateway, clk clock.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:      db,
		store:   store,
		gateway: gateway,
		clock:   clk,
		config:  cfg,
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpireStaleReservations()
	jr.SendDueDateReminders()
}
