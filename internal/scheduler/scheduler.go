// Package scheduler runs the collection pipeline on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RunFunc is one pipeline run.
type RunFunc func(ctx context.Context) error

// Scheduler manages scheduled collection runs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	ctx             context.Context
	cancel          context.CancelFunc
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. Expressions carry a leading seconds
// field, and a run still in progress makes the next tick a no-op.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	cronLogger := cron.PrintfLogger(entry)

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:          entry,
		jobIDs:          make([]cron.EntryID, 0),
		ctx:             ctx,
		cancel:          cancel,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleCollection registers a pipeline run on the cron expression.
func (s *Scheduler) ScheduleCollection(cronExpression string, run RunFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		started := time.Now()
		s.logger.Info("Starting scheduled collection")

		if err := run(s.ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled collection failed")
			return
		}
		s.logger.WithField("duration", time.Since(started).String()).Info("Scheduled collection completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Infof("Scheduled collection job with cron expression: %s", cronExpression)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop cancels running jobs and waits for them up to the graceful timeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()
	timer := time.NewTimer(s.gracefulTimeout)
	defer timer.Stop()

	var err error
	select {
	case <-s.cron.Stop().Done():
	case <-timer.C:
		err = fmt.Errorf("scheduled jobs still running after %s", s.gracefulTimeout)
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return err
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
