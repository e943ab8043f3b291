// Package store defines the record-store contract the domain engine is
// written against: a generic keyed collection with predicate lookups.
// Implementations must return independent copies on every read so callers
// can mutate results without aliasing stored state.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Record is any stored type that exposes its unique identifier.
type Record interface {
	RecordID() uuid.UUID
}

// Predicate selects records during find/update/delete operations.
type Predicate[T any] func(T) bool

// Collection is a keyed collection of records of one type. Each call is
// atomic with respect to itself; no atomicity is promised across calls.
type Collection[T Record] interface {
	// FindAll returns every record. Empty collection yields an empty slice.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID returns the record with the given id, or domain.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// FindBy returns the first record matching p, or domain.ErrNotFound.
	FindBy(ctx context.Context, p Predicate[T]) (*T, error)

	// FindManyBy returns all records matching p.
	FindManyBy(ctx context.Context, p Predicate[T]) ([]T, error)

	// Create inserts a new record.
	Create(ctx context.Context, item T) error

	// Update replaces the first record matching p with item.
	// A predicate that matches nothing is a no-op, not an error.
	Update(ctx context.Context, p Predicate[T], item T) error

	// Delete removes every record matching p.
	Delete(ctx context.Context, p Predicate[T]) error
}
