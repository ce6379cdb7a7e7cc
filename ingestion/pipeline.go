package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
	"github.com/poiesic/tenderfeed/storage"
)

// Pipeline persists tenders and profiles and embeds them asynchronously.
type Pipeline struct {
	tenders     storage.TenderRepository
	profiles    storage.ProfileRepository
	pool        *ants.Pool
	processors  map[core.EntityKind]processor
	builderOpts []embedding.Option
	tagging     bool
	logger      *slog.Logger

	mu      sync.Mutex
	queued  map[core.EntityRef]*Job
	running sync.WaitGroup
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBuilderOptions passes options through to both embedding builders.
func WithBuilderOptions(opts ...embedding.Option) Option {
	return func(p *Pipeline) error {
		p.builderOpts = append(p.builderOpts, opts...)
		return nil
	}
}

// WithTagging enables keyword tagging of untagged tenders with the provider's tagger.
func WithTagging(enabled bool) Option {
	return func(p *Pipeline) error {
		p.tagging = enabled
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	tenders storage.TenderRepository,
	profiles storage.ProfileRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if tenders == nil {
		return nil, ErrTenderRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		tenders:  tenders,
		profiles: profiles,
		pool:     pool,
		logger:   slog.Default(),
		queued:   make(map[core.EntityRef]*Job),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	// Builders are created after options so they get the final config
	builderOpts := append([]embedding.Option{embedding.WithLogger(p.logger)}, p.builderOpts...)
	tenderOpts := builderOpts
	if p.tagging && provider.Tagger() != nil {
		tenderOpts = append(tenderOpts[:len(tenderOpts):len(tenderOpts)], embedding.WithTagger(provider.Tagger()))
	}

	tenderBuilder, err := embedding.NewTenderBuilder(tenders, provider.Embedder(), tenderOpts...)
	if err != nil {
		p.Release()
		return nil, err
	}
	profileBuilder, err := embedding.NewProfileBuilder(profiles, provider.Embedder(), builderOpts...)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.processors = map[core.EntityKind]processor{
		core.EntityTender:  tenderBuilder,
		core.EntityProfile: profileBuilder,
	}

	return p, nil
}

// AddTenders stores new tenders and dispatches an embedding job for each.
func (p *Pipeline) AddTenders(ctx context.Context, tenders ...*core.Tender) ([]*Job, error) {
	added, err := p.tenders.AddTenders(ctx, tenders...)
	if err != nil {
		return nil, err
	}
	return p.triggerAll(ctx, core.EntityTender, tenderIDs(added))
}

// UpdateTenders stores edited tenders and dispatches a re-embedding job for each.
func (p *Pipeline) UpdateTenders(ctx context.Context, tenders ...*core.Tender) ([]*Job, error) {
	updated, err := p.tenders.UpdateTenders(ctx, tenders...)
	if err != nil {
		return nil, err
	}
	return p.triggerAll(ctx, core.EntityTender, tenderIDs(updated))
}

// AddProfiles stores new profiles and dispatches an embedding job for each.
func (p *Pipeline) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*Job, error) {
	added, err := p.profiles.AddProfiles(ctx, profiles...)
	if err != nil {
		return nil, err
	}
	return p.triggerAll(ctx, core.EntityProfile, profileIDs(added))
}

// UpdateProfiles stores edited profiles and dispatches a re-embedding job for each.
func (p *Pipeline) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*Job, error) {
	updated, err := p.profiles.UpdateProfiles(ctx, profiles...)
	if err != nil {
		return nil, err
	}
	return p.triggerAll(ctx, core.EntityProfile, profileIDs(updated))
}

// Trigger dispatches an embedding job for an existing entity.
// If a job for the same entity is queued but not started, that job is returned.
// Returns storage.ErrNotFound if the entity doesn't exist.
func (p *Pipeline) Trigger(ctx context.Context, ref core.EntityRef) (*Job, error) {
	if err := p.checkExists(ctx, ref); err != nil {
		return nil, err
	}
	return p.submit(ref)
}

// Wait blocks until every dispatched job has finished.
func (p *Pipeline) Wait() {
	p.running.Wait()
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) checkExists(ctx context.Context, ref core.EntityRef) error {
	switch ref.Kind {
	case core.EntityTender:
		_, err := p.tenders.GetTender(ctx, ref.Id)
		return err
	case core.EntityProfile:
		_, err := p.profiles.GetProfile(ctx, ref.Id)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownEntityKind, ref.Kind)
}

func (p *Pipeline) triggerAll(ctx context.Context, kind core.EntityKind, ids []core.ID) ([]*Job, error) {
	jobs := make([]*Job, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}
		job, err := p.submit(core.EntityRef{Kind: kind, Id: id})
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// submit queues a job for ref unless one is already waiting to start.
// It never blocks on a busy pool; queued jobs wait for a free worker.
func (p *Pipeline) submit(ref core.EntityRef) (*Job, error) {
	proc, ok := p.processors[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, ref.Kind)
	}
	if p.pool.IsClosed() {
		return nil, ErrPipelineReleased
	}

	p.mu.Lock()
	if job, ok := p.queued[ref]; ok {
		p.mu.Unlock()
		return job, nil
	}
	job := newJob(ref)
	p.queued[ref] = job
	p.running.Add(1)
	p.mu.Unlock()

	go func() {
		err := p.pool.Submit(func() {
			defer p.running.Done()
			p.run(proc, job)
		})
		if err != nil {
			p.dequeue(job)
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrPipelineReleased
			}
			p.logger.Warn("embedding job not dispatched", "job", job.ID, "kind", ref.Kind, "id", ref.Id, "err", err)
			job.finish(nil, err)
			p.running.Done()
		}
	}()

	return job, nil
}

func (p *Pipeline) dequeue(job *Job) {
	p.mu.Lock()
	if p.queued[job.Ref] == job {
		delete(p.queued, job.Ref)
	}
	p.mu.Unlock()
}

func (p *Pipeline) run(proc processor, job *Job) {
	p.dequeue(job)

	// Jobs outlive the request that triggered them
	result, err := proc.Build(context.Background(), job.Ref.Id)
	if err != nil {
		p.logger.Error("embedding job failed", "job", job.ID, "kind", job.Ref.Kind, "id", job.Ref.Id, "err", err)
	} else {
		p.logger.Debug("embedding job finished", "job", job.ID, "kind", job.Ref.Kind, "id", job.Ref.Id,
			"applied", result.Applied, "zero_vector", result.ZeroVector)
	}
	job.finish(result, err)
}

func tenderIDs(tenders []*core.Tender) []core.ID {
	ids := make([]core.ID, len(tenders))
	for i, t := range tenders {
		ids[i] = t.Id
	}
	return ids
}

func profileIDs(profiles []*core.Profile) []core.ID {
	ids := make([]core.ID, len(profiles))
	for i, pr := range profiles {
		ids[i] = pr.Id
	}
	return ids
}
