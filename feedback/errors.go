package feedback

import "errors"

var (
	// ErrTenderRepositoryRequired is returned when a tender repository is not provided.
	ErrTenderRepositoryRequired = errors.New("tender repository required")

	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrInteractionRepositoryRequired is returned when an interaction repository is not provided.
	ErrInteractionRepositoryRequired = errors.New("interaction repository required")

	// ErrInvalidScore is returned when a match score is outside 0-100.
	ErrInvalidScore = errors.New("match score must be between 0 and 100")
)
