package repositories

import (
	"context"
	"sync"

	"salon_backend/internal/storage"
)

// Collection is one typed list of records stored under a single key.
//
// Every change is a full read-modify-write of the list. Mutate holds the
// collection's lock for the whole cycle, so concurrent writers are applied
// one after the other and none of them is lost.
type Collection[T any] struct {
	store    *storage.Store
	key      string
	defaults func() []T
	mu       sync.Mutex
}

// NewCollection creates a collection over key. defaults supplies the rows
// written by Initialize; nil means the collection starts empty.
func NewCollection[T any](store *storage.Store, key string, defaults func() []T) *Collection[T] {
	return &Collection[T]{store: store, key: key, defaults: defaults}
}

// Key returns the persisted key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// All returns a copy of every record. Missing or corrupted data reads as an
// empty list, never nil.
func (c *Collection[T]) All(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) load(ctx context.Context) []T {
	items := storage.Get(ctx, c.store, c.key, []T{})
	if items == nil {
		items = []T{}
	}
	return items
}

// Mutate applies fn to the current records and writes the result back.
// If fn returns an error nothing is written and the error is returned.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.load(ctx))
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	storage.Set(ctx, c.store, c.key, next)
	return nil
}

// Replace overwrites the whole collection with items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	storage.Set(ctx, c.store, c.key, items)
}

// Initialize writes the default rows when the key holds no value. Existing
// data is left alone. It reports whether anything was written.
func (c *Collection[T]) Initialize(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.Exists(ctx, c.key) {
		return false
	}
	seed := []T{}
	if c.defaults != nil {
		seed = c.defaults()
	}
	storage.Set(ctx, c.store, c.key, seed)
	return true
}
