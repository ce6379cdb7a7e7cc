package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

// InteractionRepository implements storage.InteractionRepository for BadgerDB.
//
// Primary records are keyed by (user, tender, type), which makes the triple unique.
// A second index keyed by (tender, type, user) answers "did anyone save this tender".
type InteractionRepository struct {
	backend *Backend
}

var _ storage.InteractionRepository = (*InteractionRepository)(nil)

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(backend *Backend) (*InteractionRepository, error) {
	return &InteractionRepository{backend: backend}, nil
}

// Close releases resources. InteractionRepository has no resources to release.
func (r *InteractionRepository) Close() error {
	return nil
}

// UpsertInteraction stores an interaction keyed by (UserId, TenderId, Type).
func (r *InteractionRepository) UpsertInteraction(ctx context.Context, interaction *core.Interaction) (*core.Interaction, error) {
	if interaction == nil {
		return nil, fmt.Errorf("%w: interaction is nil", storage.ErrInvalidQuery)
	}
	if err := core.ValidateInteractionType(interaction.Type); err != nil {
		return nil, err
	}

	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		key := makeInteractionKey(interaction.UserId, interaction.TenderId, interaction.Type)
		old, err := readInteraction(tx, key)
		if err != nil {
			return err
		}

		if interaction.UpdatedAt.IsZero() {
			interaction.UpdatedAt = time.Now().UTC()
		}
		interaction.Id = core.InteractionID(interaction.UserId, interaction.TenderId, interaction.Type)
		if old != nil {
			interaction.CreatedAt = old.CreatedAt
		} else if interaction.CreatedAt.IsZero() {
			interaction.CreatedAt = interaction.UpdatedAt
		}

		if err := tx.Set(key, storage.MarshalInteraction(interaction)); err != nil {
			return err
		}
		indexKey := makeTenderIndexKey(interaction.TenderId, interaction.Type, interaction.UserId)
		return tx.Set(indexKey, nil)
	})
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

// GetInteraction retrieves the interaction for the triple.
func (r *InteractionRepository) GetInteraction(ctx context.Context, userID, tenderID core.ID, interactionType core.InteractionType) (*core.Interaction, error) {
	var result *core.Interaction
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readInteraction(tx, makeInteractionKey(userID, tenderID, interactionType))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: %s by user %d on tender %d", storage.ErrNotFound, interactionType, userID, tenderID)
		}
		return nil
	})
	return result, err
}

// DeleteInteraction removes the interaction for the triple.
func (r *InteractionRepository) DeleteInteraction(ctx context.Context, userID, tenderID core.ID, interactionType core.InteractionType) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		key := makeInteractionKey(userID, tenderID, interactionType)
		exists, err := keyExists(tx, key)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s by user %d on tender %d", storage.ErrNotFound, interactionType, userID, tenderID)
		}
		if err := tx.Delete(makeTenderIndexKey(tenderID, interactionType, userID)); err != nil {
			return err
		}
		return tx.Delete(key)
	})
}

// ListUserInteractions returns every interaction recorded by a user,
// ordered by tender ID then type.
func (r *InteractionRepository) ListUserInteractions(ctx context.Context, userID core.ID) ([]*core.Interaction, error) {
	var results []*core.Interaction
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserInteractionsPrefix(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var interaction *core.Interaction
			err := iter.Item().Value(func(val []byte) error {
				var err error
				interaction, err = storage.UnmarshalInteraction(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, interaction)
		}
		return nil
	})
	return results, err
}

// DismissedTenderIDs returns the set of tenders the user dismissed.
// Only keys are read.
func (r *InteractionRepository) DismissedTenderIDs(ctx context.Context, userID core.ID) (map[core.ID]struct{}, error) {
	dismissed := make(map[core.ID]struct{})
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserInteractionsPrefix(userID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			tenderID, interactionType, ok := parseInteractionKey(iter.Item().Key())
			if ok && interactionType == core.InteractionDismiss {
				dismissed[tenderID] = struct{}{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dismissed, nil
}

// HasInteraction reports whether any user recorded the given type on a tender.
func (r *InteractionRepository) HasInteraction(ctx context.Context, tenderID core.ID, interactionType core.InteractionType) (bool, error) {
	var found bool
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		found, err = hasTenderInteraction(tx, tenderID, interactionType)
		return err
	})
	return found, err
}

func hasTenderInteraction(tx *badger.Txn, tenderID core.ID, interactionType core.InteractionType) (bool, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeTenderTypePrefix(tenderID, interactionType)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	iter.Rewind()
	return iter.Valid(), nil
}

// readInteraction reads an interaction from the transaction. Returns nil if absent.
func readInteraction(tx *badger.Txn, key []byte) (*core.Interaction, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var interaction *core.Interaction
	err = item.Value(func(val []byte) error {
		var err error
		interaction, err = storage.UnmarshalInteraction(val)
		return err
	})
	return interaction, err
}
