package embedding

import (
	"context"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// ProfileBuilder embeds company profiles.
type ProfileBuilder struct {
	base
	profiles storage.ProfileRepository
}

// NewProfileBuilder creates a builder that reads and writes profiles through repo.
func NewProfileBuilder(repo storage.ProfileRepository, embedder ai.Embedder, opts ...Option) (*ProfileBuilder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.retry.MaxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	return &ProfileBuilder{
		base: base{
			embedder: embedder,
			opts:     o,
			logger:   o.logger.With("component", "profile-embedder"),
		},
		profiles: repo,
	}, nil
}

// Text returns the descriptor text embedded for the profile.
func (b *ProfileBuilder) Text(profile *core.Profile) string {
	return BuildProfileText(b.opts.catalog, profile)
}

// Build embeds the profile with the given ID and stores the vector.
// Returns storage.ErrNotFound if the profile doesn't exist and a wrapped
// core.ErrProviderFailure if the provider keeps failing.
func (b *ProfileBuilder) Build(ctx context.Context, id core.ID) (*Result, error) {
	ref := core.EntityRef{Kind: core.EntityProfile, Id: id}

	profile, err := b.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	vector, zero, err := b.vectorFor(ctx, ref, b.Text(profile))
	if err != nil {
		return nil, err
	}

	embeddedAt := b.opts.clock()
	applied, err := b.profiles.StoreProfileEmbedding(ctx, id, vector, embeddedAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		b.logger.Debug("newer embedding already stored", "id", id)
	}

	return &Result{Ref: ref, EmbeddedAt: embeddedAt, Applied: applied, ZeroVector: zero}, nil
}
