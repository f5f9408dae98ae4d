package badgerfx

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("entity not found")

type EntityFactory[T Entity] func() T

// Repository implements typed access to entities inside caller-managed
// transactions.
type Repository[T Entity] struct {
	factory EntityFactory[T]
}

func NewRepository[T Entity](factory EntityFactory[T]) *Repository[T] {
	return &Repository[T]{
		factory: factory,
	}
}

// List returns entities stored under prefix. When options.Reverse is set the
// newest keys come first. A positive limit caps the result.
func (r *Repository[T]) List(txn *badger.Txn, prefix string, options badger.IteratorOptions, limit int) ([]T, error) {
	entities := make([]T, 0)

	err := r.scan(txn, prefix, options, limit, func(item *badger.Item) error {
		entity, err := r.decode(item)
		if err != nil {
			return err
		}

		entities = append(entities, entity)

		return nil
	})

	return entities, err
}

// ListByIndex returns the entities referenced by index keys under prefix.
func (r *Repository[T]) ListByIndex(
	txn *badger.Txn,
	prefix string,
	options badger.IteratorOptions,
	limit int,
) ([]T, error) {
	entities := make([]T, 0)

	err := r.scan(txn, prefix, options, limit, func(item *badger.Item) error {
		key, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("failed to get entity key: %w", err)
		}

		entity, err := r.Read(txn, string(key))
		if err != nil {
			return err
		}

		entities = append(entities, entity)

		return nil
	})

	return entities, err
}

func (r *Repository[T]) Read(txn *badger.Txn, key string) (T, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get entity: %w", err)
	}

	return r.decode(item)
}

func (r *Repository[T]) Write(txn *badger.Txn, entity T) error {
	data, err := entity.MarshalStorage()
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	if indexErr := r.CreateIndexes(txn, entity); indexErr != nil {
		return indexErr
	}

	if setErr := txn.Set([]byte(entity.StorageKey()), data); setErr != nil {
		return fmt.Errorf("failed to update entity: %w", setErr)
	}

	return nil
}

func (r *Repository[T]) Delete(txn *badger.Txn, key string) error {
	entity, err := r.Read(txn, key)
	if err != nil {
		return err
	}

	if indexErr := r.DeleteIndexes(txn, entity); indexErr != nil {
		return indexErr
	}

	if delErr := txn.Delete([]byte(entity.StorageKey())); delErr != nil {
		return fmt.Errorf("failed to delete entity: %w", delErr)
	}

	return nil
}

func (r *Repository[T]) CreateIndexes(txn *badger.Txn, entity T) error {
	key := []byte(entity.StorageKey())
	for _, index := range entity.StorageIndexes() {
		if err := txn.Set([]byte(index), key); err != nil {
			return fmt.Errorf("failed to set entity index: %w", err)
		}
	}

	return nil
}

func (r *Repository[T]) DeleteIndexes(txn *badger.Txn, entity T) error {
	for _, index := range entity.StorageIndexes() {
		if err := txn.Delete([]byte(index)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to delete entity index: %w", err)
		}
	}

	return nil
}

func (r *Repository[T]) scan(
	txn *badger.Txn,
	prefix string,
	options badger.IteratorOptions,
	limit int,
	fn func(item *badger.Item) error,
) error {
	validPrefix := []byte(prefix)
	seekPrefix := []byte(prefix)
	if options.Reverse {
		seekPrefix = append(seekPrefix, SeekEnd)
	}

	it := txn.NewIterator(options)
	defer it.Close()

	count := 0
	for it.Seek(seekPrefix); it.ValidForPrefix(validPrefix); it.Next() {
		if limit > 0 && count >= limit {
			break
		}

		if err := fn(it.Item()); err != nil {
			return err
		}
		count++
	}

	return nil
}

func (r *Repository[T]) decode(item *badger.Item) (T, error) {
	entity := r.factory()
	if err := item.Value(func(val []byte) error {
		return entity.UnmarshalStorage(val)
	}); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal entity: %w", err)
	}

	return entity, nil
}
