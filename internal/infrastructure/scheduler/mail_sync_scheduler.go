// Package scheduler runs periodic background work, currently mailbox
// polling.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Syncer performs one mailbox ingestion pass
type Syncer interface {
	SyncOnce(ctx context.Context) error
}

// MailSyncSchedulerConfig holds scheduler configuration
type MailSyncSchedulerConfig struct {
	// PollSchedule is a standard 5-field cron expression
	PollSchedule string
	// SyncTimeout bounds a single ingestion pass
	SyncTimeout time.Duration
}

// DefaultMailSyncSchedulerConfig returns default scheduler configuration
func DefaultMailSyncSchedulerConfig() MailSyncSchedulerConfig {
	return MailSyncSchedulerConfig{
		PollSchedule: "*/5 * * * *",
		SyncTimeout:  2 * time.Minute,
	}
}

// MailSyncScheduler triggers mailbox ingestion on a cron schedule.
// A failed pass is logged and retried at the next tick.
type MailSyncScheduler struct {
	config   MailSyncSchedulerConfig
	schedule cron.Schedule
	syncer   Syncer
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewMailSyncScheduler creates a scheduler from a cron expression
func NewMailSyncScheduler(config MailSyncSchedulerConfig, syncer Syncer, logger *zap.Logger) (*MailSyncScheduler, error) {
	if config.PollSchedule == "" {
		config.PollSchedule = "*/5 * * * *"
	}
	if config.SyncTimeout == 0 {
		config.SyncTimeout = 2 * time.Minute
	}

	schedule, err := cron.ParseStandard(config.PollSchedule)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", config.PollSchedule, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &MailSyncScheduler{
		config:   config,
		schedule: schedule,
		syncer:   syncer,
		logger:   logger,
	}, nil
}

// newMailSyncSchedulerWithSchedule allows tests to inject a schedule
func newMailSyncSchedulerWithSchedule(config MailSyncSchedulerConfig, schedule cron.Schedule, syncer Syncer, logger *zap.Logger) *MailSyncScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailSyncScheduler{
		config:   config,
		schedule: schedule,
		syncer:   syncer,
		logger:   logger,
	}
}

// Start starts the polling loop
func (s *MailSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Mail sync scheduler started",
		zap.String("poll_schedule", s.config.PollSchedule),
		zap.Duration("sync_timeout", s.config.SyncTimeout),
	)

	return nil
}

// Stop gracefully stops the polling loop
func (s *MailSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Mail sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Mail sync scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop sleeps until the next cron tick and runs one ingestion pass
func (s *MailSyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single bounded ingestion pass
func (s *MailSyncScheduler) runOnce(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, s.config.SyncTimeout)
	defer cancel()

	start := time.Now()
	if err := s.syncer.SyncOnce(syncCtx); err != nil {
		s.logger.Warn("Mail sync pass failed, will retry next tick",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Mail sync pass completed",
		zap.Duration("elapsed", time.Since(start)),
	)
}
