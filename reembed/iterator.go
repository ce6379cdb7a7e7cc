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

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

const (
	// DefaultBatchSize is the default number of entities handled per batch
	DefaultBatchSize = 100
)

// IDSource lists the IDs of every stored entity of one kind.
type IDSource func(ctx context.Context) ([]core.ID, error)

// TenderIDs returns an IDSource over every stored tender.
func TenderIDs(repo storage.TenderRepository) IDSource {
	return repo.ListTenderIDs
}

// ProfileIDs returns an IDSource over every stored profile.
func ProfileIDs(repo storage.ProfileRepository) IDSource {
	return repo.ListProfileIDs
}

// IDIterator walks entity IDs in batches.
type IDIterator struct {
	source    IDSource
	batchSize int
}

// NewIDIterator creates an iterator over source.
// batchSize: number of IDs handed to each call (defaults to DefaultBatchSize when <= 0)
func NewIDIterator(source IDSource, batchSize int) (*IDIterator, error) {
	if source == nil {
		return nil, ErrIDSourceRequired
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IDIterator{source: source, batchSize: batchSize}, nil
}

// IDs returns the full ID list. Entities added afterwards are not included.
func (it *IDIterator) IDs(ctx context.Context) ([]core.ID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return it.source(ctx)
}

// ForEach calls fn for each batch of ids.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func (it *IDIterator) ForEach(ctx context.Context, ids []core.ID, fn func([]core.ID) error) error {
	for start := 0; start < len(ids); start += it.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+it.batchSize, len(ids))
		if err := fn(ids[start:end]); err != nil {
			return err
		}
	}
	return nil
}
