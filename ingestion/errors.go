package ingestion

import "errors"

var (
	// ErrTenderRepositoryRequired is returned when a tender repository is not provided.
	ErrTenderRepositoryRequired = errors.New("tender repository required")

	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrUnknownEntityKind is returned when a trigger names neither a tender nor a profile.
	ErrUnknownEntityKind = errors.New("unknown entity kind")

	// ErrPipelineReleased is returned when work is submitted after Release.
	ErrPipelineReleased = errors.New("pipeline released")
)
