package storage

import (
	"context"
	"time"

	"github.com/poiesic/tenderfeed/core"
)

// TenderFilter decides whether a tender is eligible for a similarity query.
// It is evaluated before similarity is computed.
type TenderFilter func(t *core.Tender) bool

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close releases resources held by the repository.
	Close() error
}

// TenderRepository provides operations for managing tenders.
type TenderRepository interface {
	Repository
	// AddTenders adds one or more tenders to storage.
	// Generates IDs from a sequence for tenders with ID=0.
	// Sets InsertedAt/UpdatedAt and resets embedding state and status to pending.
	AddTenders(ctx context.Context, tenders ...*core.Tender) ([]*core.Tender, error)

	// UpdateTenders updates the content fields of existing tenders.
	// Embedding, EmbeddedAt and Status are carried over from the stored record.
	// Returns ErrNotFound if any tender doesn't exist.
	UpdateTenders(ctx context.Context, tenders ...*core.Tender) ([]*core.Tender, error)

	// DeleteTenders removes tenders by their IDs.
	// Returns ErrNotFound if any tender doesn't exist.
	DeleteTenders(ctx context.Context, ids ...core.ID) error

	// GetTender retrieves a single tender by ID.
	// Returns ErrNotFound if the tender doesn't exist.
	GetTender(ctx context.Context, id core.ID) (*core.Tender, error)

	// GetTenders retrieves multiple tenders by their IDs.
	// Returns only the tenders that exist (no error for missing tenders).
	GetTenders(ctx context.Context, ids ...core.ID) ([]*core.Tender, error)

	// ListTenderIDs returns the IDs of every stored tender in ascending order.
	ListTenderIDs(ctx context.Context) ([]core.ID, error)

	// StoreTenderEmbedding writes an embedding if embeddedAt is newer than the stored one.
	// A pending or active tender becomes active; terminal statuses are left alone.
	// Non-empty tags replace the stored tags. Returns whether the write was applied.
	// Returns ErrNotFound if the tender doesn't exist.
	StoreTenderEmbedding(ctx context.Context, id core.ID, vector []float32, embeddedAt time.Time, tags []string) (bool, error)

	// FindSimilarTenders returns tenders passing filter, ordered by cosine similarity
	// to vector (highest first), up to limit results. Tenders without embeddings are skipped.
	FindSimilarTenders(ctx context.Context, vector []float32, filter TenderFilter, limit int) ([]*core.TenderMatch, error)

	// ExpireTenders moves every active tender whose deadline is before the day of now
	// to expired, or expired_saved if any user saved it.
	ExpireTenders(ctx context.Context, now time.Time) (*core.ExpiryReport, error)
}

// ProfileRepository provides operations for managing company profiles.
type ProfileRepository interface {
	Repository
	// AddProfiles adds one or more profiles to storage.
	// Generates IDs from a sequence for profiles with ID=0.
	// Returns a wrapped core.ErrInvalidProfile if validation fails.
	AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// UpdateProfiles updates the declared fields of existing profiles.
	// Embedding and engagement counters are carried over from the stored record.
	// Returns ErrNotFound if any profile doesn't exist.
	UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error)

	// DeleteProfiles removes profiles by their IDs.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteProfiles(ctx context.Context, ids ...core.ID) error

	// GetProfile retrieves a single profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.Profile, error)

	// GetProfileByUser retrieves the profile owned by a user.
	// Returns ErrNotFound if the user owns no profile.
	GetProfileByUser(ctx context.Context, userID core.ID) (*core.Profile, error)

	// ListProfileIDs returns the IDs of every stored profile in ascending order.
	ListProfileIDs(ctx context.Context) ([]core.ID, error)

	// StoreProfileEmbedding writes an embedding if embeddedAt is newer than the stored one.
	// Returns whether the write was applied.
	StoreProfileEmbedding(ctx context.Context, id core.ID, vector []float32, embeddedAt time.Time) (bool, error)

	// RecordEngagement increments the interaction counter of the user's profile
	// and sets its last interaction time. Returns ErrNotFound if the user owns no profile.
	RecordEngagement(ctx context.Context, userID core.ID, at time.Time) error
}

// InteractionRepository provides operations for managing user interactions.
type InteractionRepository interface {
	Repository
	// UpsertInteraction stores an interaction keyed by (UserId, TenderId, Type).
	// An existing record keeps its ID and CreatedAt; every other field is replaced.
	UpsertInteraction(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error)

	// GetInteraction retrieves the interaction for the triple.
	// Returns ErrNotFound if it doesn't exist.
	GetInteraction(ctx context.Context, userID, tenderID core.ID, interactionType core.InteractionType) (*core.Interaction, error)

	// DeleteInteraction removes the interaction for the triple.
	// Returns ErrNotFound if it doesn't exist.
	DeleteInteraction(ctx context.Context, userID, tenderID core.ID, interactionType core.InteractionType) error

	// ListUserInteractions returns every interaction recorded by a user.
	ListUserInteractions(ctx context.Context, userID core.ID) ([]*core.Interaction, error)

	// DismissedTenderIDs returns the set of tenders the user dismissed.
	DismissedTenderIDs(ctx context.Context, userID core.ID) (map[core.ID]struct{}, error)

	// HasInteraction reports whether any user recorded the given type on a tender.
	HasInteraction(ctx context.Context, tenderID core.ID, interactionType core.InteractionType) (bool, error)
}
