package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const enqueueTimeout = 10 * time.Second

// DigestQueue defines methods for enqueueing due digests
type DigestQueue interface {
	// EnqueueDueDigest schedules the digest for the day of "now"
	EnqueueDueDigest(ctx context.Context, now time.Time) error
}

// Scheduler enqueues the due digest on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	queue  DigestQueue
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new scheduler instance
//
// "spec" is a standard five-field cron expression.
func NewScheduler(spec string, queue DigestQueue, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		queue:  queue,
		logger: logger,
		now:    time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.enqueueDigest); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Time("next_run", s.NextRun()))
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// NextRun returns the time the digest is enqueued next
//
// Zero is returned while the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// enqueueDigest enqueues the due digest for today
func (s *Scheduler) enqueueDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	now := s.now()
	if err := s.queue.EnqueueDueDigest(ctx, now); err != nil {
		s.logger.Error("Failed to enqueue due digest", zap.Error(err))
		return
	}
	s.logger.Info("Due digest enqueued", zap.String("day", now.Format(time.DateOnly)))
}
