package ai

import (
	"context"
	"errors"
)

// ErrUnexpectedDimensions indicates the embedding service returned a vector
// whose length differs from the configured dimensions.
var ErrUnexpectedDimensions = errors.New("unexpected embedding dimensions")

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the length of every vector this embedder produces.
	Dimensions() int
}

// Tagger extracts keyword tags from tender text.
// Implementations must be thread-safe for concurrent use.
type Tagger interface {
	// ExtractTags returns the keywords that best describe what the text procures,
	// ordered by importance (highest first).
	// Returns an empty slice if no tags are found.
	ExtractTags(ctx context.Context, text string) ([]ExtractedTag, error)
}

// ExtractedTag is a keyword identified in tender text.
type ExtractedTag struct {
	// Name is the keyword in lowercase, 1-3 words.
	// Example: "laptop", "road construction", "solar panel"
	Name string

	// Importance is a score from 1-10 indicating how central this keyword
	// is to what the tender procures.
	Importance int
}

// TagNames returns the names of tags in order.
func TagNames(tags []ExtractedTag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Tagger returns the keyword tagging service.
	Tagger() Tagger

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
