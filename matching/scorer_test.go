package matching

import (
	"testing"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func days(n int) time.Time { return testNow.AddDate(0, 0, n) }

func fptr(v float64) *float64 { return &v }

func scenarioProfile() *core.Profile {
	return &core.Profile{
		Id:                1,
		UserId:            10,
		ActiveSectors:     []string{"IT"},
		Keywords:          []string{"servers", "cloud", "networking"},
		PreferredRegions:  []string{"Addis Ababa"},
		MinMatchThreshold: 40,
	}
}

func TestScore_ScenarioA(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	tender := &core.Tender{Id: 7, Category: "IT", Region: "Addis Ababa", Deadline: days(10)}

	results := scorer.Score(scenarioProfile(), []*core.TenderMatch{{Tender: tender, Similarity: 0.6}}, 40, 10)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, 53.0, result.Score)
	assert.Equal(t, 0.6, result.Similarity)
	assert.Equal(t, 10, result.DaysUntilDeadline)
	assert.Equal(t, []core.Reason{
		{Type: core.ReasonSemantic, Message: "Strong semantic match", Weight: 15},
		{Type: core.ReasonSector, Message: "Matches your sector: IT", Weight: 25},
		{Type: core.ReasonRegion, Message: "In your preferred region: Addis Ababa", Weight: 8},
		{Type: core.ReasonUrgency, Message: "Deadline in 10 days", Weight: 5},
	}, result.Reasons)
}

func TestScore_ScenarioB_SectorMismatchNotOverridden(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	tender := &core.Tender{Id: 8, Category: "Construction", Region: "Oromia", Deadline: days(20)}
	candidates := []*core.TenderMatch{{Tender: tender, Similarity: 1.0}}

	result := scorer.ScoreOne(scenarioProfile(), candidates[0], testNow)
	assert.Equal(t, 25.0, result.Score)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, core.ReasonSemantic, result.Reasons[0].Type)

	assert.Empty(t, scorer.Score(scenarioProfile(), candidates, 40, 10))
}

func TestScore_ClampedAt100(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	lo, hi := 10.0, 1000.0
	profile := &core.Profile{
		ActiveSectors:    []string{"IT"},
		SubSectors:       []string{"IT"},
		PreferredRegions: []string{"Oromia"},
		Keywords:         []string{"laptop"},
		BudgetMin:        &lo,
		BudgetMax:        &hi,
		Weights: &core.ScoringWeights{
			Semantic: 100, ActiveSectors: 100, Keywords: 100, SubSectors: 100, Region: 100, Budget: 100,
		},
	}
	tender := &core.Tender{Category: "IT", Region: "Oromia", Tags: []string{"laptop"}, Budget: fptr(500), Deadline: days(1)}

	result := scorer.ScoreOne(profile, &core.TenderMatch{Tender: tender, Similarity: 1}, testNow)
	assert.Equal(t, MaxScore, result.Score)
	assert.Len(t, result.Reasons, 7)
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := scenarioProfile()
	for _, sim := range []float64{-0.5, 0, 0.25, 0.5, 0.75, 1, 1.5} {
		for _, d := range []int{0, 7, 14, 15, 30} {
			tender := &core.Tender{Category: "IT", Region: "Addis Ababa", Deadline: days(d), Tags: profile.Keywords}
			result := scorer.ScoreOne(profile, &core.TenderMatch{Tender: tender, Similarity: sim}, testNow)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, MaxScore)
			assert.GreaterOrEqual(t, result.Similarity, 0.0)
			assert.LessOrEqual(t, result.Similarity, 1.0)
		}
	}
}

func TestScore_SemanticBands(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := &core.Profile{}
	tender := &core.Tender{Deadline: days(30)}

	tests := []struct {
		similarity float64
		score      float64
		message    string
	}{
		{0.8, 20, "Strong semantic match"},
		{0.5, 12.5, "Moderate semantic match"},
		{0.31, 7.75, "Moderate semantic match"},
		{0.3, 7.5, ""},
		{0.1, 2.5, ""},
		{0, 0, ""},
	}
	for _, tt := range tests {
		result := scorer.ScoreOne(profile, &core.TenderMatch{Tender: tender, Similarity: tt.similarity}, testNow)
		assert.Equal(t, tt.score, result.Score, "similarity %v", tt.similarity)
		if tt.message == "" {
			assert.Empty(t, result.Reasons, "similarity %v", tt.similarity)
			continue
		}
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, tt.message, result.Reasons[0].Message)
	}
}

func TestScore_Keywords(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := &core.Profile{Keywords: []string{"Solar Panel", "inverter", "battery", "cabling"}}

	tagged := &core.Tender{Deadline: days(30), Tags: []string{"solar panel", "INVERTER", "mounting"}}
	result := scorer.ScoreOne(profile, &core.TenderMatch{Tender: tagged}, testNow)
	assert.Equal(t, 10.0, result.Score)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, core.ReasonKeyword, result.Reasons[0].Type)
	assert.Equal(t, "Matches 2 of 4 keywords: Solar Panel, inverter", result.Reasons[0].Message)

	untagged := &core.Tender{Deadline: days(30)}
	result = scorer.ScoreOne(profile, &core.TenderMatch{Tender: untagged}, testNow)
	assert.Zero(t, result.Score)
	assert.Empty(t, result.Reasons)
}

func TestScore_SubSectorIsAdditive(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := &core.Profile{ActiveSectors: []string{"Roads"}, SubSectors: []string{"roads"}}
	tender := &core.Tender{Category: "Roads", Deadline: days(30)}

	result := scorer.ScoreOne(profile, &core.TenderMatch{Tender: tender}, testNow)
	assert.Equal(t, 40.0, result.Score)
	require.Len(t, result.Reasons, 2)
	assert.Equal(t, core.ReasonSector, result.Reasons[0].Type)
	assert.Equal(t, core.ReasonSubSector, result.Reasons[1].Type)
}

func TestBudgetFits(t *testing.T) {
	lo, hi := 100.0, 200.0
	tests := []struct {
		name    string
		profile core.Profile
		tender  core.Tender
		want    bool
	}{
		{"inside", core.Profile{BudgetMin: &lo, BudgetMax: &hi}, core.Tender{Budget: fptr(150)}, true},
		{"lower bound inclusive", core.Profile{BudgetMin: &lo, BudgetMax: &hi}, core.Tender{Budget: fptr(100)}, true},
		{"upper bound inclusive", core.Profile{BudgetMin: &lo, BudgetMax: &hi}, core.Tender{Budget: fptr(200)}, true},
		{"above", core.Profile{BudgetMin: &lo, BudgetMax: &hi}, core.Tender{Budget: fptr(201)}, false},
		{"missing min", core.Profile{BudgetMax: &hi}, core.Tender{Budget: fptr(150)}, false},
		{"missing max", core.Profile{BudgetMin: &lo}, core.Tender{Budget: fptr(150)}, false},
		{"missing tender budget", core.Profile{BudgetMin: &lo, BudgetMax: &hi}, core.Tender{}, false},
		{"same currency", core.Profile{BudgetMin: &lo, BudgetMax: &hi, BudgetCurrency: "ETB"}, core.Tender{Budget: fptr(150), Currency: "etb"}, true},
		{"different currency", core.Profile{BudgetMin: &lo, BudgetMax: &hi, BudgetCurrency: "ETB"}, core.Tender{Budget: fptr(150), Currency: "USD"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budgetFits(&tt.profile, &tt.tender))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := scenarioProfile()
	candidates := []*core.TenderMatch{
		{Tender: &core.Tender{Id: 1, Category: "IT", Region: "Addis Ababa", Deadline: days(3), Tags: []string{"cloud"}}, Similarity: 0.42},
		{Tender: &core.Tender{Id: 2, Category: "IT", Deadline: days(25)}, Similarity: 0.91},
		{Tender: &core.Tender{Id: 3, Category: "IT", Region: "Addis Ababa", Deadline: days(12)}, Similarity: 0.33},
	}

	first := scorer.Score(profile, candidates, 0, 10)
	second := scorer.Score(profile, candidates, 0, 10)
	assert.Equal(t, first, second)
}

func TestScore_MinScoreMonotonic(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := scenarioProfile()
	var candidates []*core.TenderMatch
	for i := 0; i < 20; i++ {
		candidates = append(candidates, &core.TenderMatch{
			Tender:     &core.Tender{Id: core.ID(i + 1), Category: "IT", Region: []string{"Addis Ababa", "Oromia"}[i%2], Deadline: days(i * 2)},
			Similarity: float64(i) / 20,
		})
	}

	previous := len(candidates) + 1
	for minScore := 0.0; minScore <= 100; minScore += 5 {
		n := len(scorer.Score(profile, candidates, minScore, 100))
		assert.LessOrEqual(t, n, previous, "minScore %v", minScore)
		previous = n
	}
}

func TestScore_OrderingAndLimit(t *testing.T) {
	scorer := NewScorer(WithClock(fixedClock))
	profile := &core.Profile{}
	candidates := []*core.TenderMatch{
		{Tender: &core.Tender{Id: 5, Deadline: days(20)}, Similarity: 0.5},
		{Tender: &core.Tender{Id: 4, Deadline: days(20)}, Similarity: 0.5},
		{Tender: &core.Tender{Id: 3, Deadline: days(18)}, Similarity: 0.5},
		{Tender: &core.Tender{Id: 2, Deadline: days(20)}, Similarity: 0.9},
	}

	results := scorer.Score(profile, candidates, 0, 3)
	require.Len(t, results, 3)
	assert.Equal(t, core.ID(2), results[0].Tender.Id)
	assert.Equal(t, core.ID(3), results[1].Tender.Id, "earlier deadline first")
	assert.Equal(t, core.ID(4), results[2].Tender.Id, "then lower ID")
}
