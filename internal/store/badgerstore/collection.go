package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store"
)

// Collection is a BadgerDB-backed implementation of store.Collection.
// Records of one type share a key prefix; predicate lookups scan the
// prefix with an iterator.
type Collection[T store.Record] struct {
	db     *badger.DB
	prefix []byte
}

// NewCollection creates a collection under the given key prefix,
// e.g. "topics" or "topic_versions".
func NewCollection[T store.Record](db *DB, prefix string) *Collection[T] {
	return &Collection[T]{db: db.db, prefix: []byte(prefix + "/")}
}

func (c *Collection[T]) key(id uuid.UUID) []byte {
	return append(append([]byte{}, c.prefix...), id.String()...)
}

func decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode record: %w", err)
	}
	return v, nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	result := []T{}
	err := c.db.View(func(txn *badger.Txn) error {
		return c.scan(ctx, txn, func(item T) bool {
			result = append(result, item)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return result, nil
}

func (c *Collection[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	var out *T
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(id))
		if err != nil {
			return err
		}
		return item.Value(func(raw []byte) error {
			v, decErr := decode[T](raw)
			if decErr != nil {
				return decErr
			}
			out = &v
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return out, nil
}

func (c *Collection[T]) FindBy(ctx context.Context, p store.Predicate[T]) (*T, error) {
	var out *T
	err := c.db.View(func(txn *badger.Txn) error {
		return c.scan(ctx, txn, func(item T) bool {
			if p(item) {
				out = &item
				return false
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("find by predicate: %w", err)
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (c *Collection[T]) FindManyBy(ctx context.Context, p store.Predicate[T]) ([]T, error) {
	result := []T{}
	err := c.db.View(func(txn *badger.Txn) error {
		return c.scan(ctx, txn, func(item T) bool {
			if p(item) {
				result = append(result, item)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("find many by predicate: %w", err)
	}
	return result, nil
}

func (c *Collection[T]) Create(_ context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(c.key(item.RecordID()), raw)
	})
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, p store.Predicate[T], item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		var matchedID *uuid.UUID
		scanErr := c.scan(ctx, txn, func(existing T) bool {
			if p(existing) {
				id := existing.RecordID()
				matchedID = &id
				return false
			}
			return true
		})
		if scanErr != nil {
			return scanErr
		}
		if matchedID == nil {
			return nil // nothing matched, no-op
		}
		if *matchedID != item.RecordID() {
			if delErr := txn.Delete(c.key(*matchedID)); delErr != nil {
				return delErr
			}
		}
		return txn.Set(c.key(item.RecordID()), raw)
	})
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, p store.Predicate[T]) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		var doomed []uuid.UUID
		scanErr := c.scan(ctx, txn, func(existing T) bool {
			if p(existing) {
				doomed = append(doomed, existing.RecordID())
			}
			return true
		})
		if scanErr != nil {
			return scanErr
		}
		for _, id := range doomed {
			if delErr := txn.Delete(c.key(id)); delErr != nil {
				return delErr
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

// scan walks every record under the collection prefix, decoding each and
// passing it to visit. Returning false from visit stops the scan.
func (c *Collection[T]) scan(ctx context.Context, txn *badger.Txn, visit func(T) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = c.prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(c.prefix); it.ValidForPrefix(c.prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var item T
		err := it.Item().Value(func(raw []byte) error {
			v, decErr := decode[T](raw)
			if decErr != nil {
				return decErr
			}
			item = v
			return nil
		})
		if err != nil {
			return err
		}
		if !visit(item) {
			return nil
		}
	}
	return nil
}
