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

package openai

import (
	"log/slog"

	"github.com/poiesic/tenderfeed/ai"
)

// Provider implements ai.AIProvider on OpenAI-compatible endpoints. The
// embedder and the keyword tagger may live on different hosts.
type Provider struct {
	config   ai.Config
	embedder *Embedder
	tagger   *Tagger
	logger   *slog.Logger
}

// NewProvider validates config and builds the embedder and tagger from a copy
// of it, so later changes to config do not reach the running services.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cfg := *config

	embedder, err := newEmbedder(&cfg)
	if err != nil {
		return nil, err
	}

	tagger, err := newTagger(&cfg)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		config:   cfg,
		embedder: embedder,
		tagger:   tagger,
		logger:   slog.Default().With("component", "openai-provider"),
	}
	p.logger.Debug("provider ready",
		"embedding_host", cfg.EmbeddingHost,
		"embedding_model", cfg.EmbeddingModel,
		"dimensions", cfg.EmbeddingDimensions,
		"tagger_host", cfg.TaggerHost,
		"tagger_model", cfg.TaggerModel,
		"min_importance", cfg.MinImportance)
	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Tagger returns the keyword tagger. Tags below the configured minimum
// importance are dropped before they reach the caller.
func (p *Provider) Tagger() ai.Tagger {
	return p.tagger
}

// Close is a no-op; the HTTP clients hold no resources that need releasing.
func (p *Provider) Close() error {
	p.logger.Debug("closing provider", "embedding_model", p.config.EmbeddingModel, "tagger_model", p.config.TaggerModel)
	return nil
}
