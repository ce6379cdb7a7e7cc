package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
)

const (
	defaultSequenceBandwidth = 100
	defaultConflictRetries   = 5
	defaultWriteBatchSize    = 256
	conflictBackoff          = 2 * time.Millisecond
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db              *badger.DB
	logger          *slog.Logger
	conflictRetries int
	writeBatchSize  int
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithLogger sets the logger used by the backend and by badger itself.
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConflictRetries sets how many times a read-write transaction is retried
// after badger reports a conflict.
func WithConflictRetries(n int) BackendOption {
	return func(b *Backend) {
		if n >= 0 {
			b.conflictRetries = n
		}
	}
}

// WithWriteBatchSize caps how many records a multi-record write commits per
// transaction. Badger rejects transactions past its size limit, so larger
// writes are split.
func WithWriteBatchSize(n int) BackendOption {
	return func(b *Backend) {
		if n > 0 {
			b.writeBatchSize = n
		}
	}
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool, opts ...BackendOption) (*Backend, error) {
	backend := &Backend{
		logger:          slog.Default(),
		conflictRetries: defaultConflictRetries,
		writeBatchSize:  defaultWriteBatchSize,
	}
	for _, opt := range opts {
		opt(backend)
	}

	var badgerOpts badger.Options
	if inMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		badgerOpts = badger.DefaultOptions(filePath)
	}

	badgerOpts.Logger = &badgerLoggerAdapter{logger: backend.logger.With("component", "badger")}
	badgerOpts.Compression = options.None

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	backend.db = db
	return backend, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction which fn must commit.
// The transaction is automatically discarded when fn returns.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// View runs fn in a read-only transaction.
func (b *Backend) View(ctx context.Context, fn func(tx *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.WithTx(fn, false)
}

// Update runs fn in a read-write transaction and commits it.
// When the commit fails with badger.ErrConflict the whole function is re-run
// against a fresh transaction, so fn must not keep state across attempts.
func (b *Backend) Update(ctx context.Context, fn func(tx *badger.Txn) error) error {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := b.WithTx(func(tx *badger.Txn) error {
			if err := fn(tx); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if attempt >= b.conflictRetries {
			return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}
		b.logger.Debug("transaction conflict, retrying", "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(conflictBackoff * time.Duration(attempt+1)):
		}
	}
}

// WriteBatchSize returns the number of records committed per transaction by
// multi-record writes.
func (b *Backend) WriteBatchSize() int {
	return b.writeBatchSize
}

// GetSequence returns a BadgerDB sequence for generating sequential IDs.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), defaultSequenceBandwidth)
}

// nextID draws the next non-zero ID from a sequence.
func nextID(seq *badger.Sequence) (core.ID, error) {
	for {
		next, err := seq.Next()
		if err != nil {
			return 0, err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if next != 0 {
			return core.ID(next), nil
		}
	}
}

// FindSimilarTenders scans every stored tender, keeps those with an embedding that pass
// filter, and returns up to limit of them ordered by cosine similarity to vector.
// Ties are broken by earlier deadline, then lower ID.
func (b *Backend) FindSimilarTenders(ctx context.Context, vector []float32, filter storage.TenderFilter, limit int) ([]*core.TenderMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}
	if limit <= 0 {
		return nil, nil
	}
	queryNorm := norm(vector)

	var results []*core.TenderMatch
	skipped := 0
	err := b.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tenderPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var tender *core.Tender
			err := iter.Item().Value(func(val []byte) error {
				var err error
				tender, err = storage.UnmarshalTender(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip records without embeddings
			if !tender.HasEmbedding() {
				continue
			}
			if filter != nil && !filter(tender) {
				continue
			}
			if len(tender.Vector) != len(vector) {
				skipped++
				continue
			}

			results = append(results, &core.TenderMatch{
				Tender:     tender,
				Similarity: cosineSimilarity(vector, queryNorm, tender.Vector),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		b.logger.Warn("skipped tenders with mismatched embedding dimensions", "count", skipped, "dimensions", len(vector))
	}

	slices.SortFunc(results, compareMatches)

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// compareMatches orders by similarity descending, then deadline ascending, then ID ascending.
func compareMatches(a, b *core.TenderMatch) int {
	if a.Similarity > b.Similarity {
		return -1
	}
	if a.Similarity < b.Similarity {
		return 1
	}
	if c := a.Tender.Deadline.Compare(b.Tender.Deadline); c != 0 {
		return c
	}
	switch {
	case a.Tender.Id < b.Tender.Id:
		return -1
	case a.Tender.Id > b.Tender.Id:
		return 1
	}
	return 0
}

// cosineSimilarity returns the cosine of the angle between a and b, clamped to [0,1].
// A zero vector on either side has similarity 0.
func cosineSimilarity(a []float32, normA float64, b []float32) float64 {
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	sim := dot / (normA * normB)
	return math.Max(0, math.Min(1, sim))
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
