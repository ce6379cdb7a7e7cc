// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tenderfeed matches procurement tenders to company profiles.
//
// Engine wires storage, the embedding provider and the matching components
// together and exposes the operations the API layer consumes.
package tenderfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/poiesic/tenderfeed/ai/openai"
	"github.com/poiesic/tenderfeed/catalog"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
	"github.com/poiesic/tenderfeed/expiry"
	"github.com/poiesic/tenderfeed/feedback"
	"github.com/poiesic/tenderfeed/ingestion"
	"github.com/poiesic/tenderfeed/matching"
	"github.com/poiesic/tenderfeed/reembed"
	"github.com/poiesic/tenderfeed/storage"
	"github.com/poiesic/tenderfeed/storage/badger"
)

// ErrUnknownEntityKind is returned by Reembed for a kind other than tender or profile.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// Engine is the entry point to tenderfeed. It owns the badger store and the AI
// provider, runs the embedding pipeline, and serves recommendations,
// similar-tender lookups, feedback, and expiry sweeps over them.
// An Engine is safe for concurrent use; Close it when done.
type Engine struct {
	repos       *badger.Repositories
	provider    ai.AIProvider
	catalog     *catalog.Catalog
	pipeline    *ingestion.Pipeline
	recommender *matching.Recommender
	similar     *matching.SimilarityFinder
	recorder    *feedback.Recorder
	sweeper     *expiry.Sweeper
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	inMemory        bool
	aiConfig        *ai.Config
	provider        ai.AIProvider
	catalog         *catalog.Catalog
	clock           func() time.Time
	logger          *slog.Logger
	pipelineOpts    []ingestion.Option
	matchingOpts    []matching.Option
	conflictRetries int
}

// WithInMemory keeps all data in memory. The path given to NewEngine is ignored.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The engine takes ownership and closes it on Close.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithCatalog sets the lookup tables used for text construction.
func WithCatalog(cat *catalog.Catalog) EngineOption {
	return func(o *engineOptions) {
		o.catalog = cat
	}
}

// WithClock sets the source of the current time used for matching, feedback
// and expiry. Embedding completion times always use the wall clock.
func WithClock(clock func() time.Time) EngineOption {
	return func(o *engineOptions) {
		o.clock = clock
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithPipelineOptions passes options through to the ingestion pipeline.
func WithPipelineOptions(opts ...ingestion.Option) EngineOption {
	return func(o *engineOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// WithMatchingOptions passes options through to the recommender and similarity finder.
func WithMatchingOptions(opts ...matching.Option) EngineOption {
	return func(o *engineOptions) {
		o.matchingOpts = append(o.matchingOpts, opts...)
	}
}

// WithConflictRetries sets how often storage retries conflicting transactions.
// Negative values keep the storage default.
func WithConflictRetries(n int) EngineOption {
	return func(o *engineOptions) {
		o.conflictRetries = n
	}
}

// NewEngine opens the store at filePath and wires every component.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:        ai.DefaultConfig(),
		catalog:         catalog.Default(),
		clock:           func() time.Time { return time.Now().UTC() },
		logger:          slog.Default(),
		conflictRetries: -1,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.catalog == nil {
		options.catalog = catalog.Default()
	}
	logger := options.logger

	repos, err := badger.OpenRepositories(filePath, options.inMemory,
		badger.WithLogger(logger),
		badger.WithConflictRetries(options.conflictRetries))
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	e := &Engine{
		repos:    repos,
		provider: provider,
		catalog:  options.catalog,
		logger:   logger,
	}
	if err := e.wire(options); err != nil {
		e.closeStores()
		return nil, err
	}
	return e, nil
}

func (e *Engine) wire(o *engineOptions) error {
	pipelineOpts := append([]ingestion.Option{
		ingestion.WithLogger(o.logger),
		ingestion.WithBuilderOptions(embedding.WithCatalog(o.catalog)),
	}, o.pipelineOpts...)

	var err error
	e.pipeline, err = ingestion.NewPipeline(e.repos.Tenders, e.repos.Profiles, e.provider, pipelineOpts...)
	if err != nil {
		return err
	}

	matchingOpts := append([]matching.Option{
		matching.WithLogger(o.logger),
		matching.WithClock(o.clock),
	}, o.matchingOpts...)
	e.recommender, err = matching.NewRecommender(e.repos.Tenders, e.repos.Profiles, e.repos.Interactions, matchingOpts...)
	if err != nil {
		return err
	}
	e.similar, err = matching.NewSimilarityFinder(e.repos.Tenders, matchingOpts...)
	if err != nil {
		return err
	}

	e.recorder, err = feedback.NewRecorder(e.repos.Tenders, e.repos.Profiles, e.repos.Interactions,
		feedback.WithLogger(o.logger), feedback.WithClock(o.clock))
	if err != nil {
		return err
	}

	e.sweeper, err = expiry.NewSweeper(e.repos.Tenders, expiry.WithLogger(o.logger), expiry.WithClock(o.clock))
	return err
}

// Close waits for in-flight embedding jobs, then releases every resource.
func (e *Engine) Close() error {
	if e.pipeline != nil {
		e.pipeline.Wait()
	}
	return e.closeStores()
}

func (e *Engine) closeStores() error {
	if e.pipeline != nil {
		e.pipeline.Release()
	}

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.repos.Close(); err != nil {
		e.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// GetRecommendations returns the best matching tenders for a profile.
// limit and daysAhead fall back to their defaults when zero; a nil minScore
// uses the profile's own threshold.
// Returns a wrapped core.ErrNotFound or core.ErrNotReady.
func (e *Engine) GetRecommendations(ctx context.Context, profileID core.ID, limit int, minScore *float64, daysAhead int) ([]*core.MatchResult, error) {
	return e.recommender.Recommend(ctx, profileID, matching.Request{
		Limit:     limit,
		MinScore:  minScore,
		DaysAhead: daysAhead,
	})
}

// GetSimilarTenders returns tenders with content similar to the given one.
// A missing or un-embedded tender yields an empty result.
func (e *Engine) GetSimilarTenders(ctx context.Context, tenderID core.ID, limit int) ([]*core.SimilarTender, error) {
	return e.similar.FindSimilar(ctx, tenderID, limit)
}

// RecordInteraction stores a user's interaction with a tender.
// interactionType accepts both the interaction and the feedback vocabulary.
func (e *Engine) RecordInteraction(ctx context.Context, userID, tenderID core.ID, interactionType, reason string, matchScoreAtTime *float64) error {
	_, err := e.recorder.Record(ctx, feedback.Request{
		UserID:           userID,
		TenderID:         tenderID,
		Type:             interactionType,
		Reason:           reason,
		MatchScoreAtTime: matchScoreAtTime,
	})
	return err
}

// Undismiss lets a dismissed tender be recommended to the user again.
func (e *Engine) Undismiss(ctx context.Context, userID, tenderID core.ID) error {
	return e.recorder.Undismiss(ctx, userID, tenderID)
}

// TriggerReembedding schedules an embedding job for the entity and returns
// immediately. A trigger for an entity whose job has not started yet returns
// that job.
func (e *Engine) TriggerReembedding(ctx context.Context, ref core.EntityRef) (*ingestion.Job, error) {
	return e.pipeline.Trigger(ctx, ref)
}

// IngestTenders stores new tenders and schedules their embeddings.
func (e *Engine) IngestTenders(ctx context.Context, tenders ...*core.Tender) ([]*ingestion.Job, error) {
	return e.pipeline.AddTenders(ctx, tenders...)
}

// UpdateTenders replaces stored tenders and schedules fresh embeddings.
func (e *Engine) UpdateTenders(ctx context.Context, tenders ...*core.Tender) ([]*ingestion.Job, error) {
	return e.pipeline.UpdateTenders(ctx, tenders...)
}

// IngestProfiles stores new profiles and schedules their embeddings.
func (e *Engine) IngestProfiles(ctx context.Context, profiles ...*core.Profile) ([]*ingestion.Job, error) {
	return e.pipeline.AddProfiles(ctx, profiles...)
}

// UpdateProfiles replaces stored profiles and schedules fresh embeddings.
func (e *Engine) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*ingestion.Job, error) {
	return e.pipeline.UpdateProfiles(ctx, profiles...)
}

// WaitForEmbeddings blocks until every scheduled embedding job has finished.
func (e *Engine) WaitForEmbeddings() {
	e.pipeline.Wait()
}

// SweepExpired expires tenders whose deadline has passed.
func (e *Engine) SweepExpired(ctx context.Context) (*core.ExpiryReport, error) {
	return e.sweeper.Sweep(ctx)
}

// Reembed regenerates the embedding of every stored entity of the given kind.
// Progress is written to progress, which may be nil.
func (e *Engine) Reembed(ctx context.Context, kind core.EntityKind, config *reembed.Config, progress io.Writer) (*reembed.Stats, error) {
	builderOpts := []embedding.Option{
		embedding.WithCatalog(e.catalog),
		embedding.WithLogger(e.logger),
	}

	var (
		label   string
		source  reembed.IDSource
		builder reembed.Builder
		err     error
	)
	switch kind {
	case core.EntityTender:
		label, source = "tenders", reembed.TenderIDs(e.repos.Tenders)
		builder, err = embedding.NewTenderBuilder(e.repos.Tenders, e.provider.Embedder(), builderOpts...)
	case core.EntityProfile:
		label, source = "profiles", reembed.ProfileIDs(e.repos.Profiles)
		builder, err = embedding.NewProfileBuilder(e.repos.Profiles, e.provider.Embedder(), builderOpts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, kind)
	}
	if err != nil {
		return nil, err
	}

	r, err := reembed.NewReembedder(label, source, builder, config, progress, e.logger)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Catalog returns the lookup tables used for text construction.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// TenderRepository returns the tender store. Writes through it bypass the
// embedding pipeline; use IngestTenders or UpdateTenders to keep vectors current.
func (e *Engine) TenderRepository() storage.TenderRepository {
	return e.repos.Tenders
}

// ProfileRepository returns the profile store. Like TenderRepository, writes
// through it are not re-embedded.
func (e *Engine) ProfileRepository() storage.ProfileRepository {
	return e.repos.Profiles
}

// InteractionRepository returns the interaction store.
func (e *Engine) InteractionRepository() storage.InteractionRepository {
	return e.repos.Interactions
}
