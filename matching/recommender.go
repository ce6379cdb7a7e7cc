package matching

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

const (
	// DefaultLimit is the number of recommendations returned when none is requested.
	DefaultLimit = 20
	// DefaultDaysAhead is the deadline window used when none is requested.
	DefaultDaysAhead = 30
)

// Request holds the optional parameters of a recommendation query.
type Request struct {
	Limit     int      // Zero means DefaultLimit
	MinScore  *float64 // Nil means the profile's threshold
	DaysAhead int      // Zero means DefaultDaysAhead
}

// Recommender serves ranked tender recommendations for profiles.
type Recommender struct {
	profiles     storage.ProfileRepository
	interactions storage.InteractionRepository
	retriever    *Retriever
	scorer       *Scorer
	logger       *slog.Logger
}

// NewRecommender creates a recommender. Options apply to the retriever and scorer too.
func NewRecommender(
	tenders storage.TenderRepository,
	profiles storage.ProfileRepository,
	interactions storage.InteractionRepository,
	opts ...Option,
) (*Recommender, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if interactions == nil {
		return nil, ErrInteractionRepositoryRequired
	}
	retriever, err := NewRetriever(tenders, opts...)
	if err != nil {
		return nil, err
	}

	s := newSettings(opts)
	return &Recommender{
		profiles:     profiles,
		interactions: interactions,
		retriever:    retriever,
		scorer:       NewScorer(opts...),
		logger:       s.logger.With("component", "recommender"),
	}, nil
}

// Recommend returns the best matching tenders for a profile.
// Returns a wrapped core.ErrNotFound if the profile doesn't exist and
// core.ErrNotReady if it has not been embedded yet.
func (r *Recommender) Recommend(ctx context.Context, profileID core.ID, req Request) ([]*core.MatchResult, error) {
	return r.RecommendWithMonitor(ctx, profileID, req, nil)
}

// RecommendWithMonitor is Recommend with callbacks at each stage.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, profileID core.ID, req Request, monitor RecommendationMonitor) ([]*core.MatchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	req, err := req.normalized()
	if err != nil {
		return nil, err
	}
	monitor.Start(profileID, req)

	profile, err := r.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("profile %d: %w", profileID, err)
	}
	if !profile.HasEmbedding() {
		return nil, fmt.Errorf("%w: profile %d", core.ErrNotReady, profileID)
	}

	minScore := profile.MinMatchThreshold
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	dismissed, err := r.interactions.DismissedTenderIDs(ctx, profile.UserId)
	if err != nil {
		r.logger.Error("error loading dismissed tenders", "user", profile.UserId, "err", err)
		return nil, err
	}
	monitor.AfterDismissedLookup(len(dismissed))

	// Widen the candidate pool until enough results survive scoring or the
	// store has no more eligible tenders.
	fetch := r.retriever.FetchSize(req.Limit)
	for {
		candidates, err := r.retriever.Retrieve(ctx, profile, dismissed, req.DaysAhead, fetch)
		if err != nil {
			return nil, err
		}
		monitor.AfterRetrieval(fetch, candidates)

		results := r.scorer.Score(profile, candidates, minScore, req.Limit)
		monitor.AfterScoring(results)

		if len(results) >= req.Limit || len(candidates) < fetch {
			r.logger.Debug("recommendations ready", "profile", profileID, "results", len(results), "candidates", len(candidates))
			monitor.Finish(results)
			return results, nil
		}
		fetch *= 2
	}
}

func (req Request) normalized() (Request, error) {
	if req.Limit < 0 || req.DaysAhead < 0 {
		return req, fmt.Errorf("%w: limit and days ahead must not be negative", ErrInvalidRequest)
	}
	if req.MinScore != nil && (*req.MinScore < 0 || *req.MinScore > MaxScore) {
		return req, fmt.Errorf("%w: minimum score %v outside 0-100", ErrInvalidRequest, *req.MinScore)
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.DaysAhead == 0 {
		req.DaysAhead = DefaultDaysAhead
	}
	return req, nil
}
