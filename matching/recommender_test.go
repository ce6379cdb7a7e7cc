package matching

import (
	"context"
	"math"
	"testing"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

// unit returns a 2-d vector whose cosine similarity to {1, 0} is sim.
func unit(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func storeTender(t *testing.T, repos *badger.Repositories, tender *core.Tender, vector []float32) *core.Tender {
	t.Helper()
	ctx := context.Background()
	_, err := repos.Tenders.AddTenders(ctx, tender)
	require.NoError(t, err)
	if vector != nil {
		applied, err := repos.Tenders.StoreTenderEmbedding(ctx, tender.Id, vector, testNow, nil)
		require.NoError(t, err)
		require.True(t, applied)
	}
	stored, err := repos.Tenders.GetTender(ctx, tender.Id)
	require.NoError(t, err)
	return stored
}

func storeProfile(t *testing.T, repos *badger.Repositories, profile *core.Profile, vector []float32) *core.Profile {
	t.Helper()
	ctx := context.Background()
	_, err := repos.Profiles.AddProfiles(ctx, profile)
	require.NoError(t, err)
	if vector != nil {
		_, err = repos.Profiles.StoreProfileEmbedding(ctx, profile.Id, vector, testNow)
		require.NoError(t, err)
	}
	return profile
}

func newTestRecommender(t *testing.T, repos *badger.Repositories, opts ...Option) *Recommender {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	r, err := NewRecommender(repos.Tenders, repos.Profiles, repos.Interactions, opts...)
	require.NoError(t, err)
	return r
}

func TestNewRecommender_Validation(t *testing.T) {
	repos := newTestRepos(t)

	_, err := NewRecommender(nil, repos.Profiles, repos.Interactions)
	assert.ErrorIs(t, err, ErrTenderRepositoryRequired)
	_, err = NewRecommender(repos.Tenders, nil, repos.Interactions)
	assert.ErrorIs(t, err, ErrProfileRepositoryRequired)
	_, err = NewRecommender(repos.Tenders, repos.Profiles, nil)
	assert.ErrorIs(t, err, ErrInteractionRepositoryRequired)
}

func TestEligibility(t *testing.T) {
	profile := &core.Profile{ActiveSectors: []string{"IT"}, PreferredRegions: []string{"Oromia"}}
	dismissed := map[core.ID]struct{}{9: {}}
	filter := Eligibility(profile, dismissed, testNow, 30)

	base := func() *core.Tender {
		return &core.Tender{Id: 1, Category: "IT", Region: "Oromia", Status: core.StatusActive, Deadline: days(5), Vector: []float32{1}}
	}
	tests := []struct {
		name   string
		mutate func(*core.Tender)
		want   bool
	}{
		{"eligible", func(*core.Tender) {}, true},
		{"deadline later today", func(t *core.Tender) { t.Deadline = testNow.Add(-8 * 60 * 60 * 1e9) }, true},
		{"deadline at window end", func(t *core.Tender) { t.Deadline = days(30) }, true},
		{"deadline past window", func(t *core.Tender) { t.Deadline = days(31) }, false},
		{"deadline passed", func(t *core.Tender) { t.Deadline = days(-1) }, false},
		{"pending", func(t *core.Tender) { t.Status = core.StatusPending }, false},
		{"expired", func(t *core.Tender) { t.Status = core.StatusExpired }, false},
		{"no embedding", func(t *core.Tender) { t.Vector = nil }, false},
		{"dismissed", func(t *core.Tender) { t.Id = 9 }, false},
		{"other sector", func(t *core.Tender) { t.Category = "Construction" }, false},
		{"sector case-insensitive", func(t *core.Tender) { t.Category = "it" }, true},
		{"other region", func(t *core.Tender) { t.Region = "Amhara" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tender := base()
			tt.mutate(tender)
			assert.Equal(t, tt.want, filter(tender))
		})
	}

	open := Eligibility(&core.Profile{}, nil, testNow, 30)
	anywhere := base()
	anywhere.Category, anywhere.Region = "Construction", "Amhara"
	assert.True(t, open(anywhere), "empty sector and region lists admit everything")
}

func TestRecommend_NotFoundAndNotReady(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos)
	ctx := context.Background()

	_, err := r.Recommend(ctx, 404, Request{})
	assert.ErrorIs(t, err, core.ErrNotFound)

	profile := storeProfile(t, repos, &core.Profile{UserId: 1}, nil)
	_, err = r.Recommend(ctx, profile.Id, Request{})
	assert.ErrorIs(t, err, core.ErrNotReady)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestRecommend_InvalidRequest(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos)
	ctx := context.Background()

	for _, req := range []Request{{Limit: -1}, {DaysAhead: -3}, {MinScore: fptr(101)}, {MinScore: fptr(-1)}} {
		_, err := r.Recommend(ctx, 1, req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestRecommend_ScenarioA(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos)
	ctx := context.Background()

	profile := scenarioProfile()
	profile.Id = 0
	storeProfile(t, repos, profile, []float32{1, 0})
	match := storeTender(t, repos, &core.Tender{Title: "Laptop procurement", Category: "IT", Region: "Addis Ababa", Deadline: days(10)}, unit(0.6))
	storeTender(t, repos, &core.Tender{Title: "Bridge", Category: "Construction", Region: "Addis Ababa", Deadline: days(10)}, unit(1))
	storeTender(t, repos, &core.Tender{Title: "Far away", Category: "IT", Region: "Addis Ababa", Deadline: days(45)}, unit(1))

	results, err := r.Recommend(ctx, profile.Id, Request{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.Id, results[0].Tender.Id)
	assert.InDelta(t, 53.0, results[0].Score, 0.01)
}

func TestRecommend_DismissedNeverReturned(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos)
	ctx := context.Background()

	profile := storeProfile(t, repos, &core.Profile{UserId: 5, ActiveSectors: []string{"IT"}}, []float32{1, 0})
	best := storeTender(t, repos, &core.Tender{Title: "best", Category: "IT", Deadline: days(3)}, unit(1))
	other := storeTender(t, repos, &core.Tender{Title: "other", Category: "IT", Deadline: days(3)}, unit(0.2))

	_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 5, TenderId: best.Id, Type: core.InteractionDismiss})
	require.NoError(t, err)

	results, err := r.Recommend(ctx, profile.Id, Request{MinScore: fptr(0)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, other.Id, results[0].Tender.Id)

	// Another user's dismissal has no effect
	_, err = repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 6, TenderId: other.Id, Type: core.InteractionDismiss})
	require.NoError(t, err)
	results, err = r.Recommend(ctx, profile.Id, Request{MinScore: fptr(0)})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRecommend_WidensFetchWhenScoresFallShort(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos, WithOverFetch(1))
	ctx := context.Background()

	profile := storeProfile(t, repos, &core.Profile{UserId: 1, SubSectors: []string{"Roads"}}, []float32{1, 0})
	// Most similar, but below the threshold
	storeTender(t, repos, &core.Tender{Title: "a", Category: "IT", Deadline: days(20)}, unit(0.9))
	storeTender(t, repos, &core.Tender{Title: "b", Category: "IT", Deadline: days(20)}, unit(0.9))
	// Less similar, but qualify through sub-sector and urgency
	c := storeTender(t, repos, &core.Tender{Title: "c", Category: "Roads", Deadline: days(5)}, unit(0.5))
	d := storeTender(t, repos, &core.Tender{Title: "d", Category: "Roads", Deadline: days(6)}, unit(0.5))

	monitor := &recordingMonitor{}
	results, err := r.RecommendWithMonitor(ctx, profile.Id, Request{Limit: 2, MinScore: fptr(30)}, monitor)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, c.Id, results[0].Tender.Id)
	assert.Equal(t, d.Id, results[1].Tender.Id)
	assert.Equal(t, []int{2, 4}, monitor.fetches)
	assert.True(t, monitor.finished)
}

func TestRecommend_Defaults(t *testing.T) {
	repos := newTestRepos(t)
	r := newTestRecommender(t, repos)
	ctx := context.Background()

	profile := storeProfile(t, repos, &core.Profile{UserId: 1, MinMatchThreshold: 20}, []float32{1, 0})
	for i := 0; i < 25; i++ {
		storeTender(t, repos, &core.Tender{Title: "t", Deadline: days(1 + i)}, unit(0.9))
	}

	monitor := &recordingMonitor{}
	results, err := r.RecommendWithMonitor(ctx, profile.Id, Request{}, monitor)
	require.NoError(t, err)
	assert.Len(t, results, DefaultLimit)
	assert.Equal(t, Request{Limit: DefaultLimit, DaysAhead: DefaultDaysAhead}, monitor.request)

	// The profile threshold applies when no minimum is given
	for _, result := range results {
		assert.GreaterOrEqual(t, result.Score, 20.0)
	}
}

type recordingMonitor struct {
	noopMonitor
	request  Request
	fetches  []int
	finished bool
}

func (m *recordingMonitor) Start(_ core.ID, req Request) { m.request = req }
func (m *recordingMonitor) AfterRetrieval(fetch int, _ []*core.TenderMatch) {
	m.fetches = append(m.fetches, fetch)
}
func (m *recordingMonitor) Finish(_ []*core.MatchResult) { m.finished = true }
