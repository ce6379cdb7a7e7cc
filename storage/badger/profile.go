package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (*ProfileRepository, error) {
	idSeq, err := backend.GetSequence(profileIDSeq)
	if err != nil {
		return nil, err
	}
	return &ProfileRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProfileRepository) Close() error {
	return r.idSeq.Release()
}

// AddProfiles adds one or more profiles to storage.
// A user owns at most one profile; adding a second returns storage.ErrDuplicateKey.
// Large batches are committed in chunks of the backend's write batch size; if
// a chunk fails, the profiles of earlier chunks stay stored.
func (r *ProfileRepository) AddProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	for chunk := range slices.Chunk(profiles, r.backend.WriteBatchSize()) {
		err := r.backend.Update(ctx, func(tx *badger.Txn) error {
			for _, profile := range chunk {
				if profile.Id == 0 {
					id, err := r.freeID(tx)
					if err != nil {
						return err
					}
					profile.Id = id
				} else if exists, err := keyExists(tx, makeProfileKey(profile.Id)); err != nil {
					return err
				} else if exists {
					return fmt.Errorf("%w: profile %d", storage.ErrDuplicateKey, profile.Id)
				}

				if err := claimUser(tx, profile.UserId, profile.Id); err != nil {
					return err
				}

				profile.Vector = nil
				profile.EmbeddedAt = time.Time{}
				profile.InteractionCount = 0
				profile.LastInteractionAt = time.Time{}
				profile.InsertedAt = now
				profile.UpdatedAt = now

				if err := tx.Set(makeProfileKey(profile.Id), storage.MarshalProfile(profile)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *ProfileRepository) freeID(tx *badger.Txn) (core.ID, error) {
	for {
		id, err := nextID(r.idSeq)
		if err != nil {
			return 0, err
		}
		exists, err := keyExists(tx, makeProfileKey(id))
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
}

// UpdateProfiles updates the declared fields of existing profiles.
// Large batches are committed in chunks like AddProfiles.
func (r *ProfileRepository) UpdateProfiles(ctx context.Context, profiles ...*core.Profile) ([]*core.Profile, error) {
	for _, profile := range profiles {
		if err := core.ValidateProfile(profile); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	for chunk := range slices.Chunk(profiles, r.backend.WriteBatchSize()) {
		err := r.backend.Update(ctx, func(tx *badger.Txn) error {
			for _, profile := range chunk {
				key := makeProfileKey(profile.Id)
				old, err := readProfile(tx, key)
				if err != nil {
					return err
				}
				if old == nil {
					return fmt.Errorf("%w: profile %d", storage.ErrNotFound, profile.Id)
				}

				// Update owner index if the owning user changed
				if old.UserId != profile.UserId {
					if err := claimUser(tx, profile.UserId, profile.Id); err != nil {
						return err
					}
					if old.UserId != 0 {
						if err := tx.Delete(makeProfileUserKey(old.UserId)); err != nil {
							return err
						}
					}
				}

				profile.Vector = old.Vector
				profile.EmbeddedAt = old.EmbeddedAt
				profile.InteractionCount = old.InteractionCount
				profile.LastInteractionAt = old.LastInteractionAt
				profile.InsertedAt = old.InsertedAt
				profile.UpdatedAt = now

				if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DeleteProfiles removes profiles by their IDs.
func (r *ProfileRepository) DeleteProfiles(ctx context.Context, ids ...core.ID) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProfileKey(id)
			profile, err := readProfile(tx, key)
			if err != nil {
				return err
			}
			if profile == nil {
				return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
			}
			if profile.UserId != 0 {
				if err := tx.Delete(makeProfileUserKey(profile.UserId)); err != nil {
					return err
				}
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetProfile retrieves a single profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readProfile(tx, makeProfileKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
		}
		return nil
	})
	return result, err
}

// GetProfileByUser retrieves the profile owned by a user.
func (r *ProfileRepository) GetProfileByUser(ctx context.Context, userID core.ID) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readProfileByUser(tx, userID)
		return err
	})
	return result, err
}

// ListProfileIDs returns the IDs of every stored profile in ascending order.
func (r *ProfileRepository) ListProfileIDs(ctx context.Context) ([]core.ID, error) {
	return listIDs(ctx, r.backend, profilePrefix)
}

// StoreProfileEmbedding writes an embedding guarded by its timestamp.
func (r *ProfileRepository) StoreProfileEmbedding(ctx context.Context, id core.ID, vector []float32, embeddedAt time.Time) (bool, error) {
	var applied bool
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		applied = false
		key := makeProfileKey(id)
		profile, err := readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("%w: profile %d", storage.ErrNotFound, id)
		}
		if !embeddedAt.After(profile.EmbeddedAt) {
			return nil
		}
		profile.Vector = vector
		profile.EmbeddedAt = embeddedAt.UTC()
		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// RecordEngagement increments the interaction counter of the user's profile.
func (r *ProfileRepository) RecordEngagement(ctx context.Context, userID core.ID, at time.Time) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		profile, err := readProfileByUser(tx, userID)
		if err != nil {
			return err
		}
		profile.InteractionCount++
		if at.After(profile.LastInteractionAt) {
			profile.LastInteractionAt = at.UTC()
		}
		return tx.Set(makeProfileKey(profile.Id), storage.MarshalProfile(profile))
	})
}

// claimUser points the owner index at profileID, failing if another profile owns the user.
func claimUser(tx *badger.Txn, userID, profileID core.ID) error {
	if userID == 0 {
		return nil
	}
	key := makeProfileUserKey(userID)
	owner, err := readID(tx, key)
	if err != nil {
		return err
	}
	if owner != 0 && owner != profileID {
		return fmt.Errorf("%w: user %d already owns profile %d", storage.ErrDuplicateKey, userID, owner)
	}
	return tx.Set(key, storage.MarshalID(profileID))
}

func readProfileByUser(tx *badger.Txn, userID core.ID) (*core.Profile, error) {
	profileID, err := readID(tx, makeProfileUserKey(userID))
	if err != nil {
		return nil, err
	}
	if profileID == 0 {
		return nil, fmt.Errorf("%w: no profile for user %d", storage.ErrNotFound, userID)
	}
	profile, err := readProfile(tx, makeProfileKey(profileID))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile %d", storage.ErrNotFound, profileID)
	}
	return profile, nil
}

// readID reads an ID-valued index entry. Returns 0 if absent.
func readID(tx *badger.Txn, key []byte) (core.ID, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var id core.ID
	err = item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}

// readProfile reads a profile from the transaction. Returns nil if absent.
func readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	return profile, err
}
