package expiry

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func addActive(t *testing.T, repos *badger.Repositories, title string, deadline time.Time) *core.Tender {
	t.Helper()
	ctx := context.Background()
	tender := &core.Tender{Title: title, Deadline: deadline}
	_, err := repos.Tenders.AddTenders(ctx, tender)
	require.NoError(t, err)
	_, err = repos.Tenders.StoreTenderEmbedding(ctx, tender.Id, []float32{1, 0}, testNow, nil)
	require.NoError(t, err)
	return tender
}

func TestSweep(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	yesterday := addActive(t, repos, "yesterday", testNow.AddDate(0, 0, -1))
	saved := addActive(t, repos, "saved", testNow.AddDate(0, 0, -3))
	today := addActive(t, repos, "today", testNow.Add(-time.Hour))

	_, err = repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 1, TenderId: saved.Id, Type: core.InteractionSave})
	require.NoError(t, err)

	sweeper, err := NewSweeper(repos.Tenders, WithClock(fixedClock))
	require.NoError(t, err)

	report, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, &core.ExpiryReport{Expired: 1, ExpiredSaved: 1}, report)

	for id, want := range map[core.ID]core.RecommendationStatus{
		yesterday.Id: core.StatusExpired,
		saved.Id:     core.StatusExpiredSaved,
		today.Id:     core.StatusActive,
	} {
		got, err := repos.Tenders.GetTender(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status, got.Title)
	}
}

func TestNewSweeper_RequiresRepository(t *testing.T) {
	_, err := NewSweeper(nil)
	assert.ErrorIs(t, err, ErrTenderRepositoryRequired)
}

func TestNextRun(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	sweeper, err := NewSweeper(repos.Tenders, WithDailyTime(10, 30))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), sweeper.NextRun(testNow))
	assert.Equal(t, time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC), sweeper.NextRun(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)))

	// Out of range values keep the default
	fallback, err := NewSweeper(repos.Tenders, WithDailyTime(25, 0))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 5, 0, 0, time.UTC), fallback.NextRun(testNow))
}

func TestRun_StopsOnCancel(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	expired := addActive(t, repos, "old", testNow.AddDate(0, 0, -2))
	sweeper, err := NewSweeper(repos.Tenders, WithClock(fixedClock))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	require.Eventually(t, func() bool {
		got, err := repos.Tenders.GetTender(context.Background(), expired.Id)
		return err == nil && got.Status == core.StatusExpired
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
