package embedding

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired is returned when a builder is created without a repository.
	ErrRepositoryRequired = errors.New("repository required")

	// ErrEmbedderRequired is returned when a builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")
)
