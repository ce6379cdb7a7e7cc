package embedding

import (
	"context"
	"strings"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// TenderBuilder embeds tenders and activates them for matching.
type TenderBuilder struct {
	base
	tenders storage.TenderRepository
}

// NewTenderBuilder creates a builder that reads and writes tenders through repo.
func NewTenderBuilder(repo storage.TenderRepository, embedder ai.Embedder, opts ...Option) (*TenderBuilder, error) {
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

	return &TenderBuilder{
		base: base{
			embedder: embedder,
			opts:     o,
			logger:   o.logger.With("component", "tender-embedder"),
		},
		tenders: repo,
	}, nil
}

// Text returns the descriptor text embedded for the tender.
func (b *TenderBuilder) Text(tender *core.Tender) string {
	return BuildTenderText(b.opts.catalog, tender, b.opts.descriptionBudget)
}

// Build embeds the tender with the given ID and stores the vector.
// A stored tender that is pending or active becomes active.
// Returns storage.ErrNotFound if the tender doesn't exist and a wrapped
// core.ErrProviderFailure if the provider keeps failing; in both cases
// nothing is written.
func (b *TenderBuilder) Build(ctx context.Context, id core.ID) (*Result, error) {
	ref := core.EntityRef{Kind: core.EntityTender, Id: id}

	tender, err := b.tenders.GetTender(ctx, id)
	if err != nil {
		return nil, err
	}

	text := b.Text(tender)
	tags := b.extractTags(ctx, tender)

	vector, zero, err := b.vectorFor(ctx, ref, text)
	if err != nil {
		return nil, err
	}

	embeddedAt := b.opts.clock()
	applied, err := b.tenders.StoreTenderEmbedding(ctx, id, vector, embeddedAt, tags)
	if err != nil {
		return nil, err
	}
	if !applied {
		b.logger.Debug("newer embedding already stored", "id", id)
	}

	return &Result{Ref: ref, EmbeddedAt: embeddedAt, Applied: applied, ZeroVector: zero, Tags: tags}, nil
}

// extractTags tags untagged tenders from their title and description when a
// tagger is configured. Tagging failures are logged and yield no tags.
func (b *TenderBuilder) extractTags(ctx context.Context, tender *core.Tender) []string {
	if b.opts.tagger == nil || len(tender.Tags) > 0 {
		return nil
	}
	text := strings.TrimSpace(tender.Title + "\n" + tender.Description)
	if text == "" {
		return nil
	}

	if b.opts.retry.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.retry.AttemptTimeout)
		defer cancel()
	}

	extracted, err := b.opts.tagger.ExtractTags(ctx, text)
	if err != nil {
		b.logger.Warn("tag extraction failed", "id", tender.Id, "err", err)
		return nil
	}
	return ai.TagNames(extracted)
}
