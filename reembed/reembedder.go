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

package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/tenderfeed/core"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of entities handed to the worker pool at once
	BatchSize int

	// ReportInterval is how often to report progress (number of entities)
	ReportInterval int

	// Concurrency is the number of entities embedded in parallel
	Concurrency int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 100,
		Concurrency:    4,
	}
}

// Stats summarizes a reembedding run.
type Stats struct {
	BatchResult
	Total   int
	Elapsed time.Duration
}

// Reembedder re-embeds every stored entity of one kind.
type Reembedder struct {
	label     string
	iterator  *IDIterator
	processor *BatchProcessor
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
}

// NewReembedder creates a reembedder for the entities listed by source.
// label names the entities in progress output, e.g. "tenders".
// progress: where to write progress output (typically os.Stderr, or io.Discard)
func NewReembedder(label string, source IDSource, builder Builder, config *Config, progress io.Writer, logger *slog.Logger) (*Reembedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "reembedder", "entities", label)

	iterator, err := NewIDIterator(source, config.BatchSize)
	if err != nil {
		return nil, err
	}
	processor, err := NewBatchProcessor(builder, config.Concurrency, logger)
	if err != nil {
		return nil, err
	}

	return &Reembedder{
		label:     label,
		iterator:  iterator,
		processor: processor,
		config:    config,
		progress:  progress,
		logger:    logger,
	}, nil
}

// Run re-embeds every entity. Failures on single entities are counted in the
// returned Stats; an error is returned only if listing fails or ctx is cancelled.
func (r *Reembedder) Run(ctx context.Context) (*Stats, error) {
	defer r.processor.Release()

	ids, err := r.iterator.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.label, err)
	}

	stats := &Stats{Total: len(ids)}
	if len(ids) == 0 {
		fmt.Fprintf(r.progress, "No %s found (0 records)\n", r.label)
		return stats, nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d %s (batch size: %d)\n",
		len(ids), r.label, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, r.label, len(ids), r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, ids, func(batch []core.ID) error {
		result, err := r.processor.Process(ctx, batch)
		stats.add(result)
		tracker.Add(result)
		return err
	})
	stats.Elapsed = tracker.Elapsed()
	if err != nil {
		r.logger.Warn("reembedding interrupted", "processed", stats.Processed(), "total", stats.Total, "err", err)
		return stats, err
	}

	tracker.Finish()
	r.logger.Info("reembedding complete",
		"total", stats.Total, "embedded", stats.Embedded, "stale", stats.Stale,
		"missing", stats.Missing, "failed", stats.Failed, "elapsed", stats.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d %s in %v (%d failed)\n",
		stats.Processed(), r.label, stats.Elapsed.Round(time.Second), stats.Failed)

	return stats, nil
}
