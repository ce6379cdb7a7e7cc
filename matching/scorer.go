package matching

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/tenderfeed/core"
)

// MaxScore is the upper bound of every match score.
const MaxScore = 100.0

// Semantic similarity bands that earn a reason.
const (
	strongSimilarity   = 0.5
	moderateSimilarity = 0.3
)

// Scorer turns retrieved candidates into explained match results.
// It is safe for concurrent use.
type Scorer struct {
	urgencyDays  int
	urgencyBonus float64
	clock        func() time.Time
}

// NewScorer creates a scorer.
func NewScorer(opts ...Option) *Scorer {
	s := newSettings(opts)
	return &Scorer{
		urgencyDays:  s.urgencyDays,
		urgencyBonus: s.urgencyBonus,
		clock:        s.clock,
	}
}

// Score scores every candidate against the profile, keeps results with a
// score of at least minScore, sorts them best first and returns at most limit.
func (s *Scorer) Score(profile *core.Profile, candidates []*core.TenderMatch, minScore float64, limit int) []*core.MatchResult {
	now := s.clock()
	results := make([]*core.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		result := s.ScoreOne(profile, c, now)
		if result.Score >= minScore {
			results = append(results, result)
		}
	}

	slices.SortFunc(results, compareResults)
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ScoreOne scores a single candidate. Reasons follow evaluation order and
// components that contribute nothing emit no reason.
func (s *Scorer) ScoreOne(profile *core.Profile, candidate *core.TenderMatch, now time.Time) *core.MatchResult {
	tender := candidate.Tender
	weights := profile.EffectiveWeights()
	similarity := clamp(candidate.Similarity, 0, 1)
	days := core.DaysUntil(now, tender.Deadline)

	var total float64
	var reasons []core.Reason
	add := func(reasonType core.ReasonType, message string, weight float64, explain bool) {
		if weight <= 0 {
			return
		}
		total += weight
		if explain {
			reasons = append(reasons, core.Reason{Type: reasonType, Message: message, Weight: round2(weight)})
		}
	}

	semantic := similarity * 100 * (weights.Semantic / 100)
	switch {
	case similarity > strongSimilarity:
		add(core.ReasonSemantic, "Strong semantic match", semantic, true)
	case similarity > moderateSimilarity:
		add(core.ReasonSemantic, "Moderate semantic match", semantic, true)
	default:
		add(core.ReasonSemantic, "", semantic, false)
	}

	if containsFold(profile.ActiveSectors, tender.Category) {
		add(core.ReasonSector, "Matches your sector: "+tender.Category, weights.ActiveSectors, true)
	}
	if containsFold(profile.SubSectors, tender.Category) {
		add(core.ReasonSubSector, "Matches your specialization: "+tender.Category, weights.SubSectors, true)
	}
	if containsFold(profile.PreferredRegions, tender.Region) {
		add(core.ReasonRegion, "In your preferred region: "+tender.Region, weights.Region, true)
	}

	if keywords := distinctTerms(profile.Keywords); keywords > 0 {
		if matched := matchedKeywords(profile.Keywords, tender.Tags); len(matched) > 0 {
			message := fmt.Sprintf("Matches %d of %d keywords: %s", len(matched), keywords, strings.Join(matched, ", "))
			add(core.ReasonKeyword, message, float64(len(matched))/float64(keywords)*weights.Keywords, true)
		}
	}

	if budgetFits(profile, tender) {
		add(core.ReasonBudget, "Budget within your range", weights.Budget, true)
	}

	if days <= s.urgencyDays {
		add(core.ReasonUrgency, fmt.Sprintf("Deadline in %d days", days), s.urgencyBonus, true)
	}

	return &core.MatchResult{
		Tender:            tender,
		Score:             round2(math.Min(MaxScore, total)),
		Reasons:           reasons,
		Similarity:        similarity,
		DaysUntilDeadline: days,
	}
}

// budgetFits reports whether the tender budget lies within the profile's
// inclusive range. Missing bounds, a missing budget or differing currencies
// never fit.
func budgetFits(profile *core.Profile, tender *core.Tender) bool {
	if profile.BudgetMin == nil || profile.BudgetMax == nil || tender.Budget == nil {
		return false
	}
	if profile.BudgetCurrency != "" && tender.Currency != "" && !strings.EqualFold(profile.BudgetCurrency, tender.Currency) {
		return false
	}
	budget := *tender.Budget
	return budget >= *profile.BudgetMin && budget <= *profile.BudgetMax
}

// compareResults orders by score descending, then earlier deadline, then lower ID.
func compareResults(a, b *core.MatchResult) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := a.Tender.Deadline.Compare(b.Tender.Deadline); c != 0 {
		return c
	}
	return cmp.Compare(a.Tender.Id, b.Tender.Id)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
