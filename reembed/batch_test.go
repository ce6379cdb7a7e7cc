package reembed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/embedding"
	"github.com/poiesic/tenderfeed/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBuilder returns canned outcomes per ID and records every call.
type stubBuilder struct {
	mu      sync.Mutex
	failing map[core.ID]error
	stale   map[core.ID]bool
	calls   []core.ID
	onBuild func(id core.ID)
}

func (s *stubBuilder) Build(_ context.Context, id core.ID) (*embedding.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, id)
	hook := s.onBuild
	s.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	if err, ok := s.failing[id]; ok {
		return nil, err
	}
	return &embedding.Result{Ref: core.EntityRef{Kind: core.EntityTender, Id: id}, Applied: !s.stale[id]}, nil
}

func (s *stubBuilder) called() []core.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ID(nil), s.calls...)
}

func TestNewBatchProcessor_RequiresBuilder(t *testing.T) {
	_, err := NewBatchProcessor(nil, 2, nil)
	assert.ErrorIs(t, err, ErrBuilderRequired)
}

func TestBatchProcessor_TalliesOutcomes(t *testing.T) {
	builder := &stubBuilder{
		failing: map[core.ID]error{
			2: core.ErrProviderFailure,
			3: storage.ErrNotFound,
		},
		stale: map[core.ID]bool{4: true},
	}
	bp, err := NewBatchProcessor(builder, 3, nil)
	require.NoError(t, err)
	defer bp.Release()

	result, err := bp.Process(context.Background(), []core.ID{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Embedded: 2, Stale: 1, Missing: 1, Failed: 1}, result)
	assert.Equal(t, 5, result.Processed())
	assert.ElementsMatch(t, []core.ID{1, 2, 3, 4, 5}, builder.called())
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	bp, err := NewBatchProcessor(&stubBuilder{}, 1, nil)
	require.NoError(t, err)
	defer bp.Release()

	result, err := bp.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Processed())
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	builder := &stubBuilder{failing: map[core.ID]error{}}
	builder.onBuild = func(core.ID) { cancel() }

	bp, err := NewBatchProcessor(builder, 1, nil)
	require.NoError(t, err)
	defer bp.Release()

	_, err = bp.Process(ctx, []core.ID{1, 2})
	assert.True(t, errors.Is(err, context.Canceled))
}
