package matching

import "github.com/poiesic/tenderfeed/core"

// RecommendationMonitor provides hooks to observe the recommendation process.
// Implement this interface to track intermediate steps and results.
type RecommendationMonitor interface {
	Start(profileID core.ID, req Request)
	AfterDismissedLookup(dismissed int)
	AfterRetrieval(fetch int, candidates []*core.TenderMatch)
	AfterScoring(results []*core.MatchResult)
	Finish(results []*core.MatchResult)
}

// noopMonitor is a no-op implementation of RecommendationMonitor
type noopMonitor struct{}

var _ RecommendationMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.ID, _ Request)                  {}
func (n *noopMonitor) AfterDismissedLookup(_ int)                  {}
func (n *noopMonitor) AfterRetrieval(_ int, _ []*core.TenderMatch) {}
func (n *noopMonitor) AfterScoring(_ []*core.MatchResult)          {}
func (n *noopMonitor) Finish(_ []*core.MatchResult)                {}
