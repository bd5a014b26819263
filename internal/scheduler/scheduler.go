// Package scheduler runs periodic database maintenance in the background.
package scheduler

import (
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled maintenance tasks for the SQLite database.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins the scheduler.
// A WAL checkpoint runs hourly; query-planner statistics are refreshed nightly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.checkpointWAL(); err != nil {
			s.logger.Error("failed to checkpoint WAL", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.optimize(); err != nil {
			s.logger.Error("failed to optimize database", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// checkpointWAL folds the write-ahead log back into the main database file
// so it does not grow unbounded between restarts.
func (s *Scheduler) checkpointWAL() error {
	_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	if err == nil {
		s.logger.Debug("WAL checkpoint complete")
	}
	return err
}

// optimize refreshes the query planner statistics.
func (s *Scheduler) optimize() error {
	_, err := s.db.Exec("PRAGMA optimize")
	if err == nil {
		s.logger.Debug("database optimize complete")
	}
	return err
}
