package matching

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// Retriever selects eligible tenders for a profile, ranked by similarity.
type Retriever struct {
	tenders   storage.TenderRepository
	overFetch int
	clock     func() time.Time
	logger    *slog.Logger
}

// NewRetriever creates a retriever reading from tenders.
func NewRetriever(tenders storage.TenderRepository, opts ...Option) (*Retriever, error) {
	if tenders == nil {
		return nil, ErrTenderRepositoryRequired
	}
	s := newSettings(opts)
	return &Retriever{
		tenders:   tenders,
		overFetch: s.overFetch,
		clock:     s.clock,
		logger:    s.logger.With("component", "retriever"),
	}, nil
}

// FetchSize returns how many candidates are retrieved for a result limit.
func (r *Retriever) FetchSize(limit int) int {
	return limit * r.overFetch
}

// Eligibility returns the hard filter for a profile. A tender passes when it
// is active, its deadline day is within [today, today+daysAhead], the user has
// not dismissed it, and its category and region are among the profile's
// active sectors and preferred regions whenever those lists are non-empty.
func Eligibility(profile *core.Profile, dismissed map[core.ID]struct{}, now time.Time, daysAhead int) storage.TenderFilter {
	today := core.StartOfDay(now)
	last := today.AddDate(0, 0, daysAhead)

	return func(t *core.Tender) bool {
		if t.Status != core.StatusActive || !t.HasEmbedding() {
			return false
		}
		deadline := core.StartOfDay(t.Deadline)
		if deadline.Before(today) || deadline.After(last) {
			return false
		}
		if _, ok := dismissed[t.Id]; ok {
			return false
		}
		if len(profile.ActiveSectors) > 0 && !containsFold(profile.ActiveSectors, t.Category) {
			return false
		}
		if len(profile.PreferredRegions) > 0 && !containsFold(profile.PreferredRegions, t.Region) {
			return false
		}
		return true
	}
}

// Retrieve returns up to fetch eligible tenders ordered by similarity to the
// profile embedding. The profile must have an embedding.
func (r *Retriever) Retrieve(ctx context.Context, profile *core.Profile, dismissed map[core.ID]struct{}, daysAhead, fetch int) ([]*core.TenderMatch, error) {
	if !profile.HasEmbedding() {
		return nil, core.ErrNotReady
	}

	filter := Eligibility(profile, dismissed, r.clock(), daysAhead)
	matches, err := r.tenders.FindSimilarTenders(ctx, profile.Vector, filter, fetch)
	if err != nil {
		r.logger.Error("error querying for similar tenders", "profile", profile.Id, "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved candidates", "profile", profile.Id, "fetch", fetch, "candidates", len(matches))
	return matches, nil
}
