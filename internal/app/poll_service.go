// internal/app/poll_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Waiter blocks between two poll cycles.
type Waiter interface {
	Wait(ctx context.Context) error
}

// PollService owns the request cursor and runs fetch, validate, describe and notify in sequence.
type PollService struct {
	fetcher  homework.Fetcher
	notifier *Notifier
	logger   *logrus.Entry
	lookBack int64 // seconds
	cursor   int64 // unix seconds
}

func NewPollService(
	fetcher homework.Fetcher,
	notifier *Notifier,
	cursor int64, // usually time.Now().Unix()
	lookBack time.Duration,
	logger *logrus.Entry,
) *PollService {
	return &PollService{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		lookBack: int64(lookBack / time.Second),
		cursor:   cursor,
	}
}

// Cursor returns the from_date the next cycle will request.
func (s *PollService) Cursor() int64 {
	return s.cursor
}

// RunCycle performs one poll. The cursor moves back by the look-back window only when
// every stage succeeds; a failed delivery does not count as a failure.
//
// The cursor never re-anchors to the server's current_date, so it drifts further into
// the past on every successful cycle. This mirrors the established behaviour.
func (s *PollService) RunCycle(ctx context.Context) error {
	logCtx := s.logger.WithField("from_date", s.cursor)

	raw, err := s.fetcher.Fetch(ctx, s.cursor)
	if err != nil {
		return fmt.Errorf("failed to fetch homework statuses: %w", err)
	}

	records, err := homework.ValidateResponse(raw)
	if err != nil {
		return fmt.Errorf("failed to validate API response: %w", err)
	}
	if date, ok := homework.CurrentDate(raw); ok {
		logCtx = logCtx.WithField("current_date", date)
	}
	logCtx.WithField("homeworks", len(records)).Debug("API response validated")

	message, ok, err := homework.Describe(records)
	if err != nil {
		return fmt.Errorf("failed to describe homework status: %w", err)
	}
	if ok {
		s.notifier.Notify(message)
	} else {
		logCtx.Debug("Latest homework has no name, nothing to send")
	}

	s.cursor -= s.lookBack
	return nil
}

// Run polls until ctx is cancelled. Cycle errors are logged and never stop the loop.
func (s *PollService) Run(ctx context.Context, waiter Waiter) error {
	for {
		if err := s.RunCycle(ctx); err != nil {
			s.logCycleError(ctx, err)
		}
		if err := waiter.Wait(ctx); err != nil {
			return err
		}
	}
}

func (s *PollService) logCycleError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, homework.ErrNoUpdate):
		s.logger.WithFields(logrus.Fields{"from_date": s.cursor, "condition": "no_update"}).Errorf("Program failure: %v", err)
	case ctx.Err() != nil:
		s.logger.WithError(err).Debug("Cycle interrupted by shutdown")
	default:
		s.logger.WithField("from_date", s.cursor).Errorf("Program failure: %v", err)
	}
}
