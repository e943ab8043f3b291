// Package memstore provides an in-memory record store. It backs the
// "ephemeral" storage mode and the service tests; semantics mirror the
// badger-backed store, including value-copy reads.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledgebase/internal/domain"
	"github.com/heartmarshall/knowledgebase/internal/store"
)

// Collection is an in-memory implementation of store.Collection.
type Collection[T store.Record] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID // insertion order, for deterministic FindAll
}

// NewCollection creates an empty in-memory collection.
func NewCollection[T store.Record]() *Collection[T] {
	return &Collection[T]{items: make(map[uuid.UUID]T)}
}

// clone returns an independent copy of v via a JSON round-trip, matching
// the value semantics of the file-backed store.
func clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func (c *Collection[T]) FindAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.order))
	for _, id := range c.order {
		cp, err := clone(c.items[id])
		if err != nil {
			return nil, err
		}
		result = append(result, cp)
	}
	return result, nil
}

func (c *Collection[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	cp, err := clone(item)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (c *Collection[T]) FindBy(_ context.Context, p store.Predicate[T]) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if p(c.items[id]) {
			cp, err := clone(c.items[id])
			if err != nil {
				return nil, err
			}
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *Collection[T]) FindManyBy(_ context.Context, p store.Predicate[T]) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []T
	for _, id := range c.order {
		if p(c.items[id]) {
			cp, err := clone(c.items[id])
			if err != nil {
				return nil, err
			}
			result = append(result, cp)
		}
	}
	if result == nil {
		result = []T{}
	}
	return result, nil
}

func (c *Collection[T]) Create(_ context.Context, item T) error {
	cp, err := clone(item)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := cp.RecordID()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = cp
	return nil
}

func (c *Collection[T]) Update(_ context.Context, p store.Predicate[T], item T) error {
	cp, err := clone(item)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.order {
		if p(c.items[id]) {
			// Replacement keeps the matched record's slot even when the
			// new value carries a different id.
			delete(c.items, id)
			newID := cp.RecordID()
			c.items[newID] = cp
			if newID != id {
				for i, oid := range c.order {
					if oid == id {
						c.order[i] = newID
						break
					}
				}
			}
			return nil
		}
	}
	return nil
}

func (c *Collection[T]) Delete(_ context.Context, p store.Predicate[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, id := range c.order {
		if p(c.items[id]) {
			delete(c.items, id)
		} else {
			kept = append(kept, id)
		}
	}
	c.order = kept
	return nil
}
