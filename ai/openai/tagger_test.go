package openai

import (
	"testing"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid input untouched", `{"tags":[{"tag":"laptop","importance":9}]}`, `{"tags":[{"tag":"laptop","importance":9}]}`},
		{"missing opening quote", `{"tags":[{tag":"laptop", importance":9}]}`, `{"tags":[{"tag":"laptop", "importance":9}]}`},
		{"trailing commas", `{"tags":[{"tag":"a","importance":7},],}`, `{"tags":[{"tag":"a","importance":7}]}`},
		{"comma in string kept", `{"tag":"a, b"}`, `{"tag":"a, b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairJSON(tt.in))
		})
	}
}

func TestParseTagging(t *testing.T) {
	raw := "```json\n{\"tags\":[{\"tag\":\"Road Construction\",\"importance\":10},{tag\":\"drainage\",\"importance\":7},]}\n```"

	var result tagging
	require.NoError(t, parseTagging(raw, &result))
	require.Len(t, result.Tags, 2)
	assert.Equal(t, "Road Construction", result.Tags[0].Tag)
	assert.Equal(t, "drainage", result.Tags[1].Tag)

	assert.Error(t, parseTagging("not json at all", &result))
}

func TestFilterTags(t *testing.T) {
	tags := []tag{
		{Tag: "Laptop", Importance: 8},
		{Tag: "laptop", Importance: 10},
		{Tag: "  solar   panel ", Importance: 8},
		{Tag: "office", Importance: 3},
		{Tag: "", Importance: 10},
		{Tag: "audit", Importance: 8},
	}

	got := filterTags(tags, 6)
	assert.Equal(t, []ai.ExtractedTag{
		{Name: "laptop", Importance: 10},
		{Name: "audit", Importance: 8},
		{Name: "solar panel", Importance: 8},
	}, got)
}

func TestScrubString(t *testing.T) {
	assert.Equal(t, "Supply of e-learning tools Lot 2", scrubString("Supply of (e-learning) tools—Lot 2."))
	assert.Equal(t, "", scrubString(" ... "))
}
