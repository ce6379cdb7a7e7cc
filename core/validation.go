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

import (
	"fmt"
	"strings"
)

// ValidateProfile validates a Profile according to domain rules.
//
// Validation rules:
//   - BudgetMax must not be below BudgetMin when both are set
//   - MinMatchThreshold must be within 0-100
//
// NOT validated (checked upstream by the API layer):
//   - sector/keyword list lengths
//   - Vector (empty until the profile builder runs)
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.BudgetMin != nil && profile.BudgetMax != nil && *profile.BudgetMax < *profile.BudgetMin {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidBudgetRange)
	}

	if profile.MinMatchThreshold < 0 || profile.MinMatchThreshold > 100 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidThreshold)
	}

	return nil
}

// ValidateTender validates a Tender according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Deadline must be set
func ValidateTender(tender *Tender) error {
	if tender == nil {
		return fmt.Errorf("%w: tender is nil", ErrInvalidTender)
	}

	if strings.TrimSpace(tender.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrEmptyTitle)
	}

	if tender.Deadline.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrMissingDeadline)
	}

	return nil
}

// ValidateInteractionType validates that an InteractionType has a valid value.
func ValidateInteractionType(t InteractionType) error {
	if _, ok := interactionWeights[t]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidInteractionType, string(t))
	}
	return nil
}

// ParseInteractionType accepts both the internal interaction vocabulary
// (view, save, apply, dismiss, rate_positive, rate_negative) and the external
// feedback vocabulary (relevant, not_relevant, applied, saved, dismissed).
func ParseInteractionType(s string) (InteractionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := feedbackAliases[s]; ok {
		return t, nil
	}
	t := InteractionType(s)
	if err := ValidateInteractionType(t); err != nil {
		return "", err
	}
	return t, nil
}
