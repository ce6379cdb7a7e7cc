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

package mock

import "github.com/poiesic/tenderfeed/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	embedder *MockEmbedder
	tagger   *MockTagger
	closed   bool
}

// NewMockProvider creates a provider with a DefaultDimensions embedder and a
// word-picking tagger.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithServices(nil, nil)
}

// NewMockProviderWithServices creates a provider around the given services.
// A nil service is replaced by its default.
func NewMockProviderWithServices(embedder *MockEmbedder, tagger *MockTagger) ai.AIProvider {
	if embedder == nil {
		embedder = NewMockEmbedder(DefaultDimensions)
	}
	if tagger == nil {
		tagger = NewMockTagger()
	}
	return &MockProvider{
		embedder: embedder,
		tagger:   tagger,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Tagger returns the mock tagger.
func (p *MockProvider) Tagger() ai.Tagger {
	return p.tagger
}

// Close marks the provider closed. Engines own their provider, so tests check
// Closed to see that shutdown reached it.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockTagger returns the underlying mock tagger for test assertions.
func (p *MockProvider) GetMockTagger() *MockTagger {
	return p.tagger
}
