package reembed

import "errors"

var (
	// ErrBuilderRequired is returned when no builder is provided for an entity kind.
	ErrBuilderRequired = errors.New("embedding builder required")

	// ErrIDSourceRequired is returned when an iterator has no ID source.
	ErrIDSourceRequired = errors.New("ID source required")
)
