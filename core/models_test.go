package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestInteractionID(t *testing.T) {
	a := InteractionID(1, 2, InteractionSave)
	if a != InteractionID(1, 2, InteractionSave) {
		t.Errorf("InteractionID() is not deterministic")
	}
	if a == InteractionID(1, 2, InteractionView) {
		t.Errorf("InteractionID() collides across types")
	}
	if InteractionID(12, 3, InteractionSave) == InteractionID(1, 23, InteractionSave) {
		t.Errorf("InteractionID() collides across user/tender boundaries")
	}
}

func TestInteractionType_Weight(t *testing.T) {
	want := map[InteractionType]float64{
		InteractionView:         0.1,
		InteractionSave:         0.5,
		InteractionApply:        1.0,
		InteractionDismiss:      -0.3,
		InteractionRatePositive: 0.8,
		InteractionRateNegative: -0.8,
	}
	for _, it := range InteractionTypes {
		if got := it.Weight(); got != want[it] {
			t.Errorf("%s.Weight() = %v, want %v", it, got, want[it])
		}
	}
}

func TestProfile_EffectiveWeights(t *testing.T) {
	p := &Profile{}
	if p.EffectiveWeights() != DefaultWeights() {
		t.Errorf("nil weights should fall back to defaults")
	}

	custom := ScoringWeights{Semantic: 50}
	p.Weights = &custom
	if p.EffectiveWeights() != custom {
		t.Errorf("EffectiveWeights() ignored the profile table")
	}
}

func TestRecommendationStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status RecommendationStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusActive, false},
		{StatusExpired, true},
		{StatusExpiredSaved, true},
		{StatusHistorical, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%q.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"same day earlier hour", time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC), 0},
		{"next day early morning", time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC), 1},
		{"ten days", time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC), 10},
		{"passed", time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(now, tt.deadline); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}
