package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/core"
)

// Result describes the outcome of one embedding job.
type Result struct {
	Ref        core.EntityRef
	EmbeddedAt time.Time // Completion timestamp offered to the store
	Applied    bool      // False when a newer embedding was already stored
	ZeroVector bool      // True when the entity produced no text
	Tags       []string  // Tags extracted for a tender, if any
}

// base holds what both builders share.
type base struct {
	embedder ai.Embedder
	opts     options
	logger   *slog.Logger
}

// vectorFor embeds text, falling back to a zero vector when text is empty.
// The returned vector is unit length unless it is the zero vector.
func (b *base) vectorFor(ctx context.Context, ref core.EntityRef, text string) ([]float32, bool, error) {
	if text == "" {
		b.logger.Warn("entity has no descriptor text, storing zero vector", "kind", ref.Kind, "id", ref.Id)
		return make([]float32, b.embedder.Dimensions()), true, nil
	}

	var vector []float32
	err := RetryWithBackoff(ctx, b.opts.retry, func(ctx context.Context) error {
		v, err := b.embedder.EmbedText(ctx, text)
		if err != nil {
			return err
		}
		vector = v
		return nil
	})
	if err != nil {
		b.logger.Error("embedding failed after retries", "kind", ref.Kind, "id", ref.Id, "err", err)
		return nil, false, fmt.Errorf("%w: %s %d: %w", core.ErrProviderFailure, ref.Kind, ref.Id, err)
	}

	return NormalizeVector(vector), false, nil
}
