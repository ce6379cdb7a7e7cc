package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/tenderfeed/ai"
)

const maxMockTags = 5

// MockTagger is a test double for ai.Tagger.
// It allows custom behavior injection via function fields.
type MockTagger struct {
	// ExtractTagsFunc is called by ExtractTags if set.
	// If nil, uses default simple word extraction.
	ExtractTagsFunc func(ctx context.Context, text string) ([]ai.ExtractedTag, error)

	callCount atomic.Int64
}

// NewMockTagger creates a mock tagger with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockTagger().
func NewMockTagger() *MockTagger {
	return &MockTagger{}
}

// ExtractTags extracts simple mock tags from text.
// Default behavior: tags the first words longer than three letters,
// with importance decreasing from 10.
func (m *MockTagger) ExtractTags(ctx context.Context, text string) ([]ai.ExtractedTag, error) {
	m.callCount.Add(1)

	if m.ExtractTagsFunc != nil {
		return m.ExtractTagsFunc(ctx, text)
	}

	tags := make([]ai.ExtractedTag, 0, maxMockTags)
	seen := make(map[string]struct{})
	importance := 10
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(tags) == maxMockTags {
			break
		}
		word = strings.Trim(word, ".,!?;:\"'()[]{}—–-")
		if len(word) <= 3 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, ai.ExtractedTag{Name: word, Importance: importance})
		importance--
	}

	return tags, nil
}

// CallCount returns the number of times ExtractTags was called.
func (m *MockTagger) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockTagger) Reset() {
	m.callCount.Store(0)
	m.ExtractTagsFunc = nil
}
