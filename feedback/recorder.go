package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// Request describes a single interaction to record.
type Request struct {
	UserID           core.ID
	TenderID         core.ID
	Type             string // Interaction type or feedback alias, see core.ParseInteractionType
	Reason           string
	MatchScoreAtTime *float64
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the source of interaction timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// Recorder stores user interactions and maintains engagement counters.
type Recorder struct {
	tenders      storage.TenderRepository
	profiles     storage.ProfileRepository
	interactions storage.InteractionRepository
	clock        func() time.Time
	logger       *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(
	tenders storage.TenderRepository,
	profiles storage.ProfileRepository,
	interactions storage.InteractionRepository,
	opts ...Option,
) (*Recorder, error) {
	if tenders == nil {
		return nil, ErrTenderRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if interactions == nil {
		return nil, ErrInteractionRepositoryRequired
	}

	r := &Recorder{
		tenders:      tenders,
		profiles:     profiles,
		interactions: interactions,
		clock:        func() time.Time { return time.Now().UTC() },
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "feedback-recorder")
	return r, nil
}

// Record stores the interaction and bumps the user's engagement counters.
// Returns a wrapped core.ErrNotFound if the tender doesn't exist and
// core.ErrInvalidInteractionType for an unknown type.
func (r *Recorder) Record(ctx context.Context, req Request) (*core.Interaction, error) {
	interactionType, err := core.ParseInteractionType(req.Type)
	if err != nil {
		return nil, err
	}
	if s := req.MatchScoreAtTime; s != nil && (*s < 0 || *s > 100) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScore, *s)
	}

	tender, err := r.tenders.GetTender(ctx, req.TenderID)
	if err != nil {
		return nil, fmt.Errorf("tender %d: %w", req.TenderID, err)
	}

	now := r.clock()
	stored, err := r.interactions.UpsertInteraction(ctx, &core.Interaction{
		UserId:           req.UserID,
		TenderId:         tender.Id,
		Type:             interactionType,
		Weight:           interactionType.Weight(),
		Reason:           req.Reason,
		MatchScoreAtTime: req.MatchScoreAtTime,
		TenderCategory:   tender.Category,
		TenderRegion:     tender.Region,
		TenderBudget:     tender.Budget,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		r.logger.Error("error storing interaction", "user", req.UserID, "tender", req.TenderID, "type", interactionType, "err", err)
		return nil, err
	}

	// Users without a profile still get their interactions recorded
	if err := r.profiles.RecordEngagement(ctx, req.UserID, now); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			r.logger.Error("error recording engagement", "user", req.UserID, "err", err)
			return nil, err
		}
		r.logger.Debug("user has no profile, engagement not counted", "user", req.UserID)
	}

	r.logger.Debug("recorded interaction", "user", req.UserID, "tender", req.TenderID, "type", interactionType)
	return stored, nil
}

// Undismiss removes the user's dismissal of a tender so it can be recommended again.
// Returns a wrapped core.ErrNotFound if the tender was not dismissed.
func (r *Recorder) Undismiss(ctx context.Context, userID, tenderID core.ID) error {
	if err := r.interactions.DeleteInteraction(ctx, userID, tenderID, core.InteractionDismiss); err != nil {
		return fmt.Errorf("dismissal of tender %d by user %d: %w", tenderID, userID, err)
	}
	r.logger.Debug("removed dismissal", "user", userID, "tender", tenderID)
	return nil
}

// History returns every interaction the user recorded.
func (r *Recorder) History(ctx context.Context, userID core.ID) ([]*core.Interaction, error) {
	return r.interactions.ListUserInteractions(ctx, userID)
}
