package embedding

import (
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/catalog"
)

type options struct {
	retry             RetryPolicy
	descriptionBudget int
	catalog           *catalog.Catalog
	tagger            ai.Tagger
	clock             func() time.Time
	logger            *slog.Logger
}

func defaultOptions() options {
	return options{
		retry:             DefaultRetryPolicy(),
		descriptionBudget: DefaultDescriptionBudget,
		catalog:           catalog.Default(),
		clock:             func() time.Time { return time.Now().UTC() },
		logger:            slog.Default(),
	}
}

// Option configures a builder.
type Option func(*options)

// WithRetryPolicy sets how provider calls are retried.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(o *options) {
		o.retry = policy
	}
}

// WithDescriptionBudget sets the number of description runes kept in tender text.
// Non-positive values keep the whole description.
func WithDescriptionBudget(runes int) Option {
	return func(o *options) {
		o.descriptionBudget = runes
	}
}

// WithCatalog sets the lookup tables used for text construction.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *options) {
		if cat != nil {
			o.catalog = cat
		}
	}
}

// WithTagger enables keyword tagging of tenders that carry no tags.
// Ignored by the profile builder.
func WithTagger(tagger ai.Tagger) Option {
	return func(o *options) {
		o.tagger = tagger
	}
}

// WithClock sets the source of completion timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
