package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

const (
	// DefaultSimilarLimit is the number of similar tenders returned when none is requested.
	DefaultSimilarLimit = 5
	// SimilarMinDaysAhead is how many days a similar tender's deadline must be away.
	SimilarMinDaysAhead = 7
)

// SimilarityFinder finds tenders with similar content.
type SimilarityFinder struct {
	tenders storage.TenderRepository
	clock   func() time.Time
	logger  *slog.Logger
}

// NewSimilarityFinder creates a finder reading from tenders.
func NewSimilarityFinder(tenders storage.TenderRepository, opts ...Option) (*SimilarityFinder, error) {
	if tenders == nil {
		return nil, ErrTenderRepositoryRequired
	}
	s := newSettings(opts)
	return &SimilarityFinder{
		tenders: tenders,
		clock:   s.clock,
		logger:  s.logger.With("component", "similarity-finder"),
	}, nil
}

// FindSimilar returns up to limit active, embedded tenders whose deadline is at
// least SimilarMinDaysAhead days away, ordered by content similarity to the
// reference tender. A missing or un-embedded reference yields an empty result.
func (f *SimilarityFinder) FindSimilar(ctx context.Context, tenderID core.ID, limit int) ([]*core.SimilarTender, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	reference, err := f.tenders.GetTender(ctx, tenderID)
	if errors.Is(err, core.ErrNotFound) {
		f.logger.Debug("reference tender not found", "tender", tenderID)
		return []*core.SimilarTender{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !reference.HasEmbedding() {
		f.logger.Debug("reference tender has no embedding", "tender", tenderID)
		return []*core.SimilarTender{}, nil
	}

	earliest := core.StartOfDay(f.clock()).AddDate(0, 0, SimilarMinDaysAhead)
	filter := func(t *core.Tender) bool {
		return t.Id != tenderID &&
			t.Status == core.StatusActive &&
			!core.StartOfDay(t.Deadline).Before(earliest)
	}

	matches, err := f.tenders.FindSimilarTenders(ctx, reference.Vector, filter, limit)
	if err != nil {
		f.logger.Error("error querying for similar tenders", "tender", tenderID, "err", err)
		return nil, err
	}
	if matches == nil {
		matches = []*core.SimilarTender{}
	}
	return matches, nil
}
