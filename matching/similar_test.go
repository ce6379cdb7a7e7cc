package matching

import (
	"context"
	"testing"

	"github.com/poiesic/tenderfeed/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSimilar(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	finder, err := NewSimilarityFinder(repos.Tenders, WithClock(fixedClock))
	require.NoError(t, err)

	reference := storeTender(t, repos, &core.Tender{Title: "reference", Deadline: days(30)}, []float32{1, 0})
	near := storeTender(t, repos, &core.Tender{Title: "close", Deadline: days(7)}, unit(0.95))
	farther := storeTender(t, repos, &core.Tender{Title: "farther", Deadline: days(40)}, unit(0.5))
	storeTender(t, repos, &core.Tender{Title: "too soon", Deadline: days(6)}, unit(0.99))
	storeTender(t, repos, &core.Tender{Title: "not embedded", Deadline: days(30)}, nil)

	results, err := finder.FindSimilar(ctx, reference.Id, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, near.Id, results[0].Tender.Id)
	assert.Equal(t, farther.Id, results[1].Tender.Id)
	assert.InDelta(t, 0.95, results[0].Similarity, 1e-5)

	limited, err := finder.FindSimilar(ctx, reference.Id, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFindSimilar_ExcludesInactive(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	finder, err := NewSimilarityFinder(repos.Tenders, WithClock(fixedClock))
	require.NoError(t, err)

	reference := storeTender(t, repos, &core.Tender{Title: "reference", Deadline: days(30)}, []float32{1, 0})
	expired := storeTender(t, repos, &core.Tender{Title: "old", Deadline: testNow.AddDate(0, 0, -400)}, unit(0.9))
	_, err = repos.Tenders.ExpireTenders(ctx, testNow)
	require.NoError(t, err)

	got, err := repos.Tenders.GetTender(ctx, expired.Id)
	require.NoError(t, err)
	require.Equal(t, core.StatusExpired, got.Status)

	results, err := finder.FindSimilar(ctx, reference.Id, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_MissingOrUnembeddedReference(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	finder, err := NewSimilarityFinder(repos.Tenders, WithClock(fixedClock))
	require.NoError(t, err)

	storeTender(t, repos, &core.Tender{Title: "candidate", Deadline: days(30)}, []float32{1, 0})
	pending := storeTender(t, repos, &core.Tender{Title: "pending", Deadline: days(30)}, nil)

	results, err := finder.FindSimilar(ctx, 999, 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	results, err = finder.FindSimilar(ctx, pending.Id, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
