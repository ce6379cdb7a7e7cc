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

// TenderRepository implements storage.TenderRepository for BadgerDB.
type TenderRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TenderRepository = (*TenderRepository)(nil)

// NewTenderRepository creates a new TenderRepository.
func NewTenderRepository(backend *Backend) (*TenderRepository, error) {
	idSeq, err := backend.GetSequence(tenderIDSeq)
	if err != nil {
		return nil, err
	}

	return &TenderRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TenderRepository) Close() error {
	return r.idSeq.Release()
}

// AddTenders adds one or more tenders to storage.
// Large batches are committed in chunks of the backend's write batch size; if
// a chunk fails, the tenders of earlier chunks stay stored.
func (r *TenderRepository) AddTenders(ctx context.Context, tenders ...*core.Tender) ([]*core.Tender, error) {
	for _, tender := range tenders {
		if err := core.ValidateTender(tender); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	for chunk := range slices.Chunk(tenders, r.backend.WriteBatchSize()) {
		err := r.backend.Update(ctx, func(tx *badger.Txn) error {
			for _, tender := range chunk {
				if tender.Id == 0 {
					id, err := r.freeID(tx)
					if err != nil {
						return err
					}
					tender.Id = id
				} else if exists, err := keyExists(tx, makeTenderKey(tender.Id)); err != nil {
					return err
				} else if exists {
					return fmt.Errorf("%w: tender %d", storage.ErrDuplicateKey, tender.Id)
				}

				tender.Status = core.StatusPending
				tender.Vector = nil
				tender.EmbeddedAt = time.Time{}
				tender.InsertedAt = now
				tender.UpdatedAt = now

				if err := tx.Set(makeTenderKey(tender.Id), storage.MarshalTender(tender)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return tenders, nil
}

// freeID draws sequence IDs until one is not taken by an externally assigned ID.
func (r *TenderRepository) freeID(tx *badger.Txn) (core.ID, error) {
	for {
		id, err := nextID(r.idSeq)
		if err != nil {
			return 0, err
		}
		exists, err := keyExists(tx, makeTenderKey(id))
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
}

// UpdateTenders updates the content fields of existing tenders.
// Large batches are committed in chunks like AddTenders.
func (r *TenderRepository) UpdateTenders(ctx context.Context, tenders ...*core.Tender) ([]*core.Tender, error) {
	for _, tender := range tenders {
		if err := core.ValidateTender(tender); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	for chunk := range slices.Chunk(tenders, r.backend.WriteBatchSize()) {
		err := r.backend.Update(ctx, func(tx *badger.Txn) error {
			for _, tender := range chunk {
				key := makeTenderKey(tender.Id)
				old, err := readTender(tx, key)
				if err != nil {
					return err
				}
				if old == nil {
					return fmt.Errorf("%w: tender %d", storage.ErrNotFound, tender.Id)
				}

				// Embedding and status have their own write paths
				tender.Vector = old.Vector
				tender.EmbeddedAt = old.EmbeddedAt
				tender.Status = old.Status
				tender.InsertedAt = old.InsertedAt
				tender.UpdatedAt = now

				if err := tx.Set(key, storage.MarshalTender(tender)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return tenders, nil
}

// DeleteTenders removes tenders by their IDs.
// Interactions referencing the tenders are kept.
func (r *TenderRepository) DeleteTenders(ctx context.Context, ids ...core.ID) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTenderKey(id)
			exists, err := keyExists(tx, key)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: tender %d", storage.ErrNotFound, id)
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTender retrieves a single tender by ID.
func (r *TenderRepository) GetTender(ctx context.Context, id core.ID) (*core.Tender, error) {
	var result *core.Tender
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readTender(tx, makeTenderKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: tender %d", storage.ErrNotFound, id)
		}
		return nil
	})
	return result, err
}

// GetTenders retrieves multiple tenders by their IDs.
func (r *TenderRepository) GetTenders(ctx context.Context, ids ...core.ID) ([]*core.Tender, error) {
	var result []*core.Tender
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			tender, err := readTender(tx, makeTenderKey(id))
			if err != nil {
				return err
			}
			if tender != nil {
				result = append(result, tender)
			}
		}
		return nil
	})
	return result, err
}

// ListTenderIDs returns the IDs of every stored tender in ascending order.
func (r *TenderRepository) ListTenderIDs(ctx context.Context) ([]core.ID, error) {
	return listIDs(ctx, r.backend, tenderPrefix)
}

// StoreTenderEmbedding writes an embedding guarded by its timestamp.
// The read of the current record and the write happen in one transaction,
// so a concurrent expiry sweep either sees the flip or forces a retry.
func (r *TenderRepository) StoreTenderEmbedding(ctx context.Context, id core.ID, vector []float32, embeddedAt time.Time, tags []string) (bool, error) {
	var applied bool
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		applied = false
		key := makeTenderKey(id)
		tender, err := readTender(tx, key)
		if err != nil {
			return err
		}
		if tender == nil {
			return fmt.Errorf("%w: tender %d", storage.ErrNotFound, id)
		}
		if !embeddedAt.After(tender.EmbeddedAt) {
			return nil
		}

		tender.Vector = vector
		tender.EmbeddedAt = embeddedAt.UTC()
		if len(tags) > 0 {
			tender.Tags = tags
		}
		if !tender.Status.IsTerminal() {
			tender.Status = core.StatusActive
		}
		if err := tx.Set(key, storage.MarshalTender(tender)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// FindSimilarTenders delegates to the backend.
func (r *TenderRepository) FindSimilarTenders(ctx context.Context, vector []float32, filter storage.TenderFilter, limit int) ([]*core.TenderMatch, error) {
	return r.backend.FindSimilarTenders(ctx, vector, filter, limit)
}

// ExpireTenders moves active tenders whose deadline day has passed to a terminal status.
// Due tenders are collected in a read transaction and flipped in write batches.
// Each tender is re-read inside its batch and skipped if it is no longer due.
func (r *TenderRepository) ExpireTenders(ctx context.Context, now time.Time) (*core.ExpiryReport, error) {
	today := core.StartOfDay(now)
	isDue := func(tender *core.Tender) bool {
		return tender.Status == core.StatusActive && core.StartOfDay(tender.Deadline).Before(today)
	}

	var due []core.ID
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tenderPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			var tender *core.Tender
			err := iter.Item().Value(func(val []byte) error {
				var err error
				tender, err = storage.UnmarshalTender(val)
				return err
			})
			if err != nil {
				return err
			}
			if isDue(tender) {
				due = append(due, tender.Id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &core.ExpiryReport{}
	for chunk := range slices.Chunk(due, r.backend.WriteBatchSize()) {
		var batch core.ExpiryReport
		err := r.backend.Update(ctx, func(tx *badger.Txn) error {
			batch = core.ExpiryReport{}
			for _, id := range chunk {
				key := makeTenderKey(id)
				tender, err := readTender(tx, key)
				if err != nil {
					return err
				}
				if tender == nil || !isDue(tender) {
					continue
				}
				saved, err := hasTenderInteraction(tx, id, core.InteractionSave)
				if err != nil {
					return err
				}
				if saved {
					tender.Status = core.StatusExpiredSaved
					batch.ExpiredSaved++
				} else {
					tender.Status = core.StatusExpired
					batch.Expired++
				}
				if err := tx.Set(key, storage.MarshalTender(tender)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		report.Expired += batch.Expired
		report.ExpiredSaved += batch.ExpiredSaved
	}
	return report, nil
}

// readTender reads a tender from the transaction. Returns nil if absent.
func readTender(tx *badger.Txn, key []byte) (*core.Tender, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var tender *core.Tender
	err = item.Value(func(val []byte) error {
		var err error
		tender, err = storage.UnmarshalTender(val)
		return err
	})
	return tender, err
}

// keyExists reports whether key is present.
func keyExists(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}

// listIDs returns the IDs of all primary keys under prefix, in key order.
func listIDs(ctx context.Context, backend *Backend, prefix string) ([]core.ID, error) {
	var ids []core.ID
	err := backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if id, ok := idFromKey(prefix, iter.Item().Key()); ok {
				ids = append(ids, id)
			}
		}
		return nil
	})
	return ids, err
}
