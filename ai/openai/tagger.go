// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/tenderfeed/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxParseAttempts = 3

// Tagger implements ai.Tagger using OpenAI-compatible chat APIs.
type Tagger struct {
	client        llms.Model
	minImportance int
	logger        *slog.Logger
}

// tag is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type tag struct {
	Tag        string `json:"tag"`
	Importance int    `json:"importance"`
}

// tagging is the wrapper structure for the LLM's JSON response.
type tagging struct {
	Tags []tag `json:"tags"`
}

// newTagger is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTagger(config *ai.Config) (*Tagger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.TaggerHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.TaggerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Tagger{
		client:        client,
		minImportance: config.MinImportance,
		logger:        slog.Default().With("component", "openai-tagger"),
	}, nil
}

// NewTagger creates a new tagger using the provided configuration.
//
// Returns ai.Tagger interface to enforce abstraction.
func NewTagger(config *ai.Config) (ai.Tagger, error) {
	return newTagger(config)
}

// ExtractTags extracts keyword tags from tender text using an LLM.
// Tags below the minimum importance are dropped; duplicates keep their highest importance.
func (t *Tagger) ExtractTags(ctx context.Context, text string) ([]ai.ExtractedTag, error) {
	text = scrubString(text)
	if text == "" {
		return []ai.ExtractedTag{}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildTaggingPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	// Retry only on malformed JSON; transport errors go back to the caller
	var result tagging
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			t.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			t.logger.Debug("no choices returned from model")
			return []ai.ExtractedTag{}, nil
		}

		if err := parseTagging(response.Choices[0].Content, &result); err != nil {
			lastErr = err
			t.logger.Warn("error parsing tagger response", "attempt", attempt+1, "err", err)
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		t.logger.Error("failed to parse tagger response after retries", "err", lastErr)
		return nil, lastErr
	}

	extracted := filterTags(result.Tags, t.minImportance)
	t.logger.Debug("extracted tags", "total", len(result.Tags), "filtered", len(extracted))
	return extracted, nil
}

// parseTagging strips markdown fences, repairs common defects and decodes the response.
func parseTagging(raw string, out *tagging) error {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	text = repairJSON(text)
	return json.Unmarshal([]byte(text), out)
}

// filterTags normalizes names, drops low-importance and duplicate tags,
// and sorts by importance descending.
func filterTags(tags []tag, minImportance int) []ai.ExtractedTag {
	best := make(map[string]int, len(tags))
	for _, tg := range tags {
		name := strings.Join(strings.Fields(strings.ToLower(tg.Tag)), " ")
		if name == "" || tg.Importance < minImportance {
			continue
		}
		if tg.Importance > best[name] {
			best[name] = tg.Importance
		}
	}

	extracted := make([]ai.ExtractedTag, 0, len(best))
	for name, importance := range best {
		extracted = append(extracted, ai.ExtractedTag{Name: name, Importance: importance})
	}
	slices.SortFunc(extracted, func(a, b ai.ExtractedTag) int {
		if a.Importance != b.Importance {
			return b.Importance - a.Importance
		}
		return strings.Compare(a.Name, b.Name)
	})
	return extracted
}
