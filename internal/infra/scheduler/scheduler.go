package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/app" // For Waiter interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Poller is the long-running loop driven by the scheduler.
type Poller interface {
	Run(ctx context.Context, waiter app.Waiter) error
}

// Waiter blocks until the next activation of a cron schedule.
type Waiter struct {
	schedule cron.Schedule
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

// NewWaiter parses spec with the standard cron parser. An empty spec means
// a constant delay of interval between cycles.
func NewWaiter(spec string, interval time.Duration) (*Waiter, error) {
	var schedule cron.Schedule
	if spec == "" {
		schedule = cron.Every(interval)
	} else {
		parsed, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
		}
		schedule = parsed
	}
	return &Waiter{schedule: schedule, now: time.Now, after: time.After}, nil
}

// Wait sleeps until the next scheduled time or until ctx is done.
func (w *Waiter) Wait(ctx context.Context) error {
	now := w.now()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.after(w.schedule.Next(now).Sub(now)):
		return nil
	}
}

type PollScheduler struct {
	poller Poller
	waiter *Waiter
	logger *logrus.Entry
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPollScheduler(poller Poller, waiter *Waiter, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		poller: poller,
		waiter: waiter,
		logger: logger,
	}
}

func (s *PollScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting homework poller...")
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		err := s.poller.Run(ctx, s.waiter)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.WithError(err).Error("Homework poller stopped unexpectedly")
		}
	}()
}

// Stop cancels the poll loop and waits for the current cycle to return.
func (s *PollScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.logger.Info("Stopping homework poller...")
	s.cancel()
	<-s.done
	s.logger.Info("Homework poller gracefully stopped.")
}
