// Package expiry retires tenders whose deadline has passed.
//
// A sweep moves every active tender with a deadline before today to expired,
// or to expired_saved when any user saved it. The status change runs in a
// storage transaction, so it cannot interleave with an embedding write that
// activates the same tender.
package expiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// ErrTenderRepositoryRequired is returned when a tender repository is not provided.
var ErrTenderRepositoryRequired = errors.New("tender repository required")

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDailyTime sets the UTC hour and minute Run sweeps at. Invalid values are ignored.
func WithDailyTime(hour, minute int) Option {
	return func(s *Sweeper) {
		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			s.hour, s.minute = hour, minute
		}
	}
}

// Sweeper expires tenders past their deadline.
type Sweeper struct {
	tenders storage.TenderRepository
	clock   func() time.Time
	hour    int
	minute  int
	logger  *slog.Logger
}

// NewSweeper creates a Sweeper. By default Run sweeps daily at 00:05 UTC.
func NewSweeper(tenders storage.TenderRepository, opts ...Option) (*Sweeper, error) {
	if tenders == nil {
		return nil, ErrTenderRepositoryRequired
	}
	s := &Sweeper{
		tenders: tenders,
		clock:   func() time.Time { return time.Now().UTC() },
		minute:  5,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "expiry-sweeper")
	return s, nil
}

// Sweep runs a single expiry pass.
func (s *Sweeper) Sweep(ctx context.Context) (*core.ExpiryReport, error) {
	now := s.clock()
	report, err := s.tenders.ExpireTenders(ctx, now)
	if err != nil {
		s.logger.Error("expiry sweep failed", "err", err)
		return nil, err
	}
	s.logger.Info("expiry sweep complete", "expired", report.Expired, "expired_saved", report.ExpiredSaved)
	return report, nil
}

// NextRun returns the first scheduled sweep time strictly after now.
func (s *Sweeper) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run sweeps once immediately and then daily until ctx is cancelled.
// Failed sweeps are logged and retried at the next scheduled time.
func (s *Sweeper) Run(ctx context.Context) error {
	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		now := s.clock()
		next := s.NextRun(now)
		s.logger.Debug("next sweep scheduled", "at", next)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
