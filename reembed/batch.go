package reembed

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
	"github.com/poiesic/tenderfeed/storage"
)

// Builder embeds a single stored entity. Implemented by
// embedding.TenderBuilder and embedding.ProfileBuilder.
type Builder interface {
	Build(ctx context.Context, id core.ID) (*embedding.Result, error)
}

// BatchResult tallies the outcome of one batch.
type BatchResult struct {
	Embedded int // Stored a new vector
	Stale    int // A newer vector was already stored
	Missing  int // Deleted since the IDs were listed
	Failed   int // Provider or storage failure
}

func (r *BatchResult) add(other BatchResult) {
	r.Embedded += other.Embedded
	r.Stale += other.Stale
	r.Missing += other.Missing
	r.Failed += other.Failed
}

// Processed returns the number of entities the batch handled.
func (r BatchResult) Processed() int {
	return r.Embedded + r.Stale + r.Missing + r.Failed
}

// BatchProcessor embeds batches of entities on a worker pool.
type BatchProcessor struct {
	builder Builder
	pool    *ants.Pool
	logger  *slog.Logger
}

// NewBatchProcessor creates a processor running at most concurrency builds at once.
func NewBatchProcessor(builder Builder, concurrency int, logger *slog.Logger) (*BatchProcessor, error) {
	if builder == nil {
		return nil, ErrBuilderRequired
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return nil, err
	}
	return &BatchProcessor{builder: builder, pool: pool, logger: logger}, nil
}

// Process embeds every ID in the batch and waits for all of them.
// Per-entity failures are tallied, not returned; the returned error is
// reserved for cancellation and pool failures.
func (bp *BatchProcessor) Process(ctx context.Context, ids []core.ID) (BatchResult, error) {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result BatchResult
	)
	record := func(r BatchResult) {
		mu.Lock()
		result.add(r)
		mu.Unlock()
	}

	for _, id := range ids {
		wg.Add(1)
		err := bp.pool.Submit(func() {
			defer wg.Done()
			record(bp.buildOne(ctx, id))
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return result, err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (bp *BatchProcessor) buildOne(ctx context.Context, id core.ID) BatchResult {
	res, err := bp.builder.Build(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		bp.logger.Debug("entity disappeared before re-embedding", "id", id)
		return BatchResult{Missing: 1}
	case err != nil:
		bp.logger.Warn("re-embedding failed", "id", id, "err", err)
		return BatchResult{Failed: 1}
	case !res.Applied:
		return BatchResult{Stale: 1}
	default:
		return BatchResult{Embedded: 1}
	}
}

// Release stops the worker pool.
func (bp *BatchProcessor) Release() {
	bp.pool.Release()
}
