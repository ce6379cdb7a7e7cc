package matching

import (
	"log/slog"
	"time"
)

const (
	// DefaultOverFetch multiplies the requested limit when retrieving candidates.
	DefaultOverFetch = 3
	// DefaultUrgencyDays is the deadline horizon that earns the urgency bonus.
	DefaultUrgencyDays = 14
	// DefaultUrgencyBonus is the flat score added for urgent tenders.
	DefaultUrgencyBonus = 5.0
)

type settings struct {
	overFetch    int
	urgencyDays  int
	urgencyBonus float64
	clock        func() time.Time
	logger       *slog.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		overFetch:    DefaultOverFetch,
		urgencyDays:  DefaultUrgencyDays,
		urgencyBonus: DefaultUrgencyBonus,
		clock:        func() time.Time { return time.Now().UTC() },
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures the types in this package.
type Option func(*settings)

// WithOverFetch sets the candidate over-fetch factor. Values below 1 are ignored.
func WithOverFetch(factor int) Option {
	return func(s *settings) {
		if factor >= 1 {
			s.overFetch = factor
		}
	}
}

// WithUrgency sets the urgency horizon in days and the bonus it earns.
func WithUrgency(days int, bonus float64) Option {
	return func(s *settings) {
		s.urgencyDays = days
		s.urgencyBonus = bonus
	}
}

// WithClock sets the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
