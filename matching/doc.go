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

// Package matching ranks tenders for company profiles.
//
// The Recommender combines two stages:
//   - The Retriever applies hard eligibility filters and ranks the remaining
//     tenders by cosine similarity to the profile embedding, over-fetching
//     to survive score filtering
//   - The Scorer turns each candidate into a 0-100 score with itemized reasons
//
// The SimilarityFinder answers "more like this" queries from tender content
// alone. All types in this package are read-only against storage.
package matching
