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

package core

import "errors"

// Engine-level errors surfaced to callers.
var (
	// ErrNotFound indicates a referenced profile or tender does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotReady indicates the entity exists but has no embedding yet.
	// Callers should treat it as "processing, try again shortly".
	ErrNotReady = errors.New("embedding not ready")

	// ErrProviderFailure indicates the embedding provider failed after all retries.
	ErrProviderFailure = errors.New("embedding provider failure")
)

// Domain validation errors
var (
	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidTender indicates a Tender failed validation.
	ErrInvalidTender = errors.New("invalid tender")

	// ErrInvalidBudgetRange indicates BudgetMax is below BudgetMin.
	ErrInvalidBudgetRange = errors.New("budget max must not be below budget min")

	// ErrInvalidThreshold indicates a match threshold outside 0-100.
	ErrInvalidThreshold = errors.New("match threshold must be between 0 and 100")

	// ErrInvalidInteractionType indicates an unknown interaction type.
	ErrInvalidInteractionType = errors.New("invalid interaction type")

	// ErrEmptyTitle indicates the tender Title field is empty.
	ErrEmptyTitle = errors.New("tender title cannot be empty")

	// ErrMissingDeadline indicates the tender has no deadline.
	ErrMissingDeadline = errors.New("tender deadline is required")
)
