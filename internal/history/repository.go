package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/apiarycd/release-manager/pkg/badgerfx"
)

type Repository struct {
	db      *badger.DB
	entries *badgerfx.Repository[*entryModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db:      db,
		entries: badgerfx.NewRepository[*entryModel](func() *entryModel { return new(entryModel) }),
	}
}

// Create stores a new entry.
func (r *Repository) Create(_ context.Context, draft EntryDraft) (*Entry, error) {
	model := newEntryModel(draft, time.Now())

	if err := r.db.Update(func(txn *badger.Txn) error {
		return r.entries.Write(txn, model)
	}); err != nil {
		return nil, fmt.Errorf("failed to create history entry: %w", err)
	}

	return newEntry(model), nil
}

// GetByID retrieves an entry by its id.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	var model *entryModel

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		model, err = r.entries.Read(txn, keyByID(id))
		return err
	})
	if errors.Is(err, badgerfx.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}

	return newEntry(model), nil
}

// List returns up to limit entries, newest first. A zero limit returns all.
func (r *Repository) List(_ context.Context, limit int) ([]Entry, error) {
	var models []*entryModel

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		models, err = r.entries.List(txn, prefixByID, newestFirst(), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return toEntries(models), nil
}

// ListByTarget returns up to limit entries of one target, newest first.
func (r *Repository) ListByTarget(_ context.Context, target string, limit int) ([]Entry, error) {
	var models []*entryModel

	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		models, err = r.entries.ListByIndex(txn, prefixForTarget(target), newestFirst(), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history for %s: %w", target, err)
	}

	return toEntries(models), nil
}

func newestFirst() badger.IteratorOptions {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 10
	opts.Reverse = true

	return opts
}

func toEntries(models []*entryModel) []Entry {
	entries := make([]Entry, 0, len(models))
	for _, model := range models {
		entries = append(entries, *newEntry(model))
	}

	return entries
}
