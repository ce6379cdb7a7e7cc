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

// Package storage provides the storage abstraction layer for tenderfeed.
//
// This package defines repository interfaces that decouple storage implementation
// from the matching engine. The engine only needs three stores plus a filtered,
// ordered cosine-similarity query over tenders.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - TenderRepository: tenders, their embeddings and recommendation status
//   - ProfileRepository: company profiles, their embeddings and engagement counters
//   - InteractionRepository: user interactions keyed by (user, tender, type)
//
// Embedding columns, recommendation status and engagement counters are owned by
// dedicated write paths (StoreTenderEmbedding, ExpireTenders, RecordEngagement).
// Content updates through UpdateTenders/UpdateProfiles carry them over unchanged.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
