package badger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

// addEmbeddedTender stores a tender and gives it an embedding so it becomes active.
func addEmbeddedTender(t *testing.T, repos *Repositories, tender *core.Tender, vector []float32) *core.Tender {
	t.Helper()
	ctx := context.Background()
	_, err := repos.Tenders.AddTenders(ctx, tender)
	require.NoError(t, err)
	applied, err := repos.Tenders.StoreTenderEmbedding(ctx, tender.Id, vector, time.Now().UTC(), nil)
	require.NoError(t, err)
	require.True(t, applied)
	stored, err := repos.Tenders.GetTender(ctx, tender.Id)
	require.NoError(t, err)
	return stored
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(tmpDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

	_, err := OpenBackend(tmpFile, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	err = backend.View(context.Background(), func(tx *badger.Txn) error { return nil })
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestUpdate_RetriesOnConflict(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	key := []byte("counter")
	var calls atomic.Int32

	err = backend.Update(ctx, func(tx *badger.Txn) error {
		n := calls.Add(1)
		if _, err := tx.Get(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if n == 1 {
			// A competing writer commits the key this transaction has read.
			require.NoError(t, backend.Update(ctx, func(inner *badger.Txn) error {
				return inner.Set(key, []byte("other"))
			}))
		}
		return tx.Set(key, []byte("mine"))
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	err = backend.View(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		require.NoError(t, err)
		val, err := item.ValueCopy(nil)
		require.NoError(t, err)
		assert.Equal(t, "mine", string(val))
		return nil
	})
	require.NoError(t, err)
}

func TestUpdate_GivesUpAfterRetries(t *testing.T) {
	backend, err := OpenBackend("", true, WithConflictRetries(0))
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	key := []byte("k")
	err = backend.Update(ctx, func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		require.NoError(t, backend.Update(ctx, func(inner *badger.Txn) error {
			return inner.Set(key, []byte("other"))
		}))
		return tx.Set(key, []byte("mine"))
	})
	assert.ErrorIs(t, err, storage.ErrTransactionFailed)
}

func TestUpdate_CancelledContext(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = backend.Update(ctx, func(tx *badger.Txn) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindSimilarTenders_NoRecords(t *testing.T) {
	repos := newTestRepos(t)

	results, err := repos.Backend.FindSimilarTenders(context.Background(), []float32{0.1, 0.2, 0.3}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilarTenders_InvalidQuery(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Backend.FindSimilarTenders(context.Background(), nil, nil, 10)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	results, err := repos.Backend.FindSimilarTenders(context.Background(), []float32{1}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilarTenders_OrderFilterLimit(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	deadline := time.Now().UTC().Add(10 * 24 * time.Hour)

	near := addEmbeddedTender(t, repos, &core.Tender{Title: "near", Category: "IT", Deadline: deadline}, []float32{1, 0, 0})
	mid := addEmbeddedTender(t, repos, &core.Tender{Title: "mid", Category: "IT", Deadline: deadline}, []float32{0.7, 0.7, 0})
	far := addEmbeddedTender(t, repos, &core.Tender{Title: "far", Category: "IT", Deadline: deadline}, []float32{0, 1, 0})
	opposite := addEmbeddedTender(t, repos, &core.Tender{Title: "opposite", Category: "IT", Deadline: deadline}, []float32{-1, 0, 0})
	other := addEmbeddedTender(t, repos, &core.Tender{Title: "other", Category: "Construction", Deadline: deadline}, []float32{1, 0, 0})

	// Not embedded, must never appear
	_, err := repos.Tenders.AddTenders(ctx, &core.Tender{Title: "pending", Category: "IT", Deadline: deadline})
	require.NoError(t, err)

	query := []float32{1, 0, 0}
	onlyIT := func(tender *core.Tender) bool { return tender.Category == "IT" }

	results, err := repos.Backend.FindSimilarTenders(ctx, query, onlyIT, 10)
	require.NoError(t, err)
	require.Len(t, results, 4)

	ids := []core.ID{results[0].Tender.Id, results[1].Tender.Id, results[2].Tender.Id, results[3].Tender.Id}
	assert.Equal(t, []core.ID{near.Id, mid.Id, far.Id, opposite.Id}, ids)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
	assert.InDelta(t, 0.7071, results[1].Similarity, 1e-3)
	assert.InDelta(t, 0.0, results[2].Similarity, 1e-6)
	assert.Equal(t, 0.0, results[3].Similarity, "negative cosine is clamped")

	limited, err := repos.Backend.FindSimilarTenders(ctx, query, nil, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	// Equal similarity and deadline: lower ID first
	assert.Equal(t, near.Id, limited[0].Tender.Id)
	assert.Equal(t, other.Id, limited[1].Tender.Id)
}

func TestFindSimilarTenders_TieBreakByDeadline(t *testing.T) {
	repos := newTestRepos(t)
	now := time.Now().UTC()

	later := addEmbeddedTender(t, repos, &core.Tender{Title: "later", Deadline: now.Add(20 * 24 * time.Hour)}, []float32{1, 0})
	sooner := addEmbeddedTender(t, repos, &core.Tender{Title: "sooner", Deadline: now.Add(5 * 24 * time.Hour)}, []float32{1, 0})

	results, err := repos.Backend.FindSimilarTenders(context.Background(), []float32{1, 0}, nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, sooner.Id, results[0].Tender.Id)
	assert.Equal(t, later.Id, results[1].Tender.Id)
}

func TestFindSimilarTenders_ZeroAndMismatchedVectors(t *testing.T) {
	repos := newTestRepos(t)
	deadline := time.Now().UTC().Add(48 * time.Hour)

	zero := addEmbeddedTender(t, repos, &core.Tender{Title: "zero", Deadline: deadline}, []float32{0, 0, 0})
	addEmbeddedTender(t, repos, &core.Tender{Title: "short", Deadline: deadline}, []float32{1, 0})

	results, err := repos.Backend.FindSimilarTenders(context.Background(), []float32{1, 0, 0}, nil, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, zero.Id, results[0].Tender.Id)
	assert.Equal(t, 0.0, results[0].Similarity)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"unnormalized", []float32{2, 0}, []float32{5, 0}, 1},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, norm(tt.a), tt.b), 1e-9)
		})
	}
}

func TestGetSequence(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	seq, err := backend.GetSequence("test-seq")
	require.NoError(t, err)
	defer seq.Release()

	id1, err := nextID(seq)
	require.NoError(t, err)
	id2, err := nextID(seq)
	require.NoError(t, err)

	assert.NotZero(t, id1)
	assert.Greater(t, id2, id1)
}
