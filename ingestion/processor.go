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

package ingestion

import (
	"context"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
)

// processor is an internal interface for embedding one kind of entity.
// embedding.TenderBuilder and embedding.ProfileBuilder satisfy it.
type processor interface {
	// Build embeds the entity with the given ID and stores the vector.
	Build(ctx context.Context, id core.ID) (*embedding.Result, error)
}

var (
	_ processor = (*embedding.TenderBuilder)(nil)
	_ processor = (*embedding.ProfileBuilder)(nil)
)
