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

// Package ai provides abstractions for the AI services used by tenderfeed.
//
// The embedding model is treated as a black box: it turns a descriptor text into a
// fixed-length vector. A chat model is optionally used to tag tenders with keywords
// when the ingested record carries none.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - Tagger: Extracts keyword tags from tender text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types. Test constructors (mock.NewMockEmbedder, mock.NewMockTagger)
// return CONCRETE types so tests can inject behavior and read call counts.
//
//	provider, err := openai.NewProvider(ai.NewConfig(ai.WithHost("http://localhost:11434")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Supply of laptops")
//	tags, err := provider.Tagger().ExtractTags(ctx, "Supply of laptops and printers")
package ai
