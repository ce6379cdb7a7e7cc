package matching

import "errors"

var (
	// ErrTenderRepositoryRequired is returned when a tender repository is not provided.
	ErrTenderRepositoryRequired = errors.New("tender repository required")

	// ErrProfileRepositoryRequired is returned when a profile repository is not provided.
	ErrProfileRepositoryRequired = errors.New("profile repository required")

	// ErrInteractionRepositoryRequired is returned when an interaction repository is not provided.
	ErrInteractionRepositoryRequired = errors.New("interaction repository required")

	// ErrInvalidRequest is returned for negative limits, windows or scores out of range.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)
