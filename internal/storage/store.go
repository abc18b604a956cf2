// Package storage is the persistent key-value layer: JSON values addressed
// by namespaced keys, tolerant of missing and corrupted entries.
package storage

import (
	"bytes"
	"context"
	"encoding/json"

	"salon_backend/pkg/utils"
)

// Store adds JSON encoding on top of a Backend. Reads never fail and writes
// never propagate errors; problems are logged.
type Store struct {
	backend Backend
}

// New creates a Store over backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend exposes the underlying raw storage.
func (s *Store) Backend() Backend {
	return s.backend
}

// raw returns the stored bytes when the key holds a decodable non-null value.
func (s *Store) raw(ctx context.Context, key string) ([]byte, bool) {
	item, ok, err := s.backend.GetItem(ctx, key)
	if err != nil {
		utils.LogWarn(err, "storage: read failed, using default", map[string]interface{}{"key": key})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	b := bytes.TrimSpace([]byte(item))
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, false
	}
	return b, true
}

// Get decodes the value under key, returning defaultValue when the key is
// missing, holds null, or cannot be decoded into T.
func Get[T any](ctx context.Context, s *Store, key string, defaultValue T) T {
	b, ok := s.raw(ctx, key)
	if !ok {
		return defaultValue
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		utils.LogWarn(err, "storage: malformed value, using default", map[string]interface{}{"key": key})
		return defaultValue
	}
	return v
}

// Set encodes value and writes it under key. Failures are logged and
// swallowed, so callers cannot assume the write was durable.
func Set[T any](ctx context.Context, s *Store, key string, value T) {
	if err := TrySet(ctx, s, key, value); err != nil {
		utils.LogError(err, "storage: write failed", map[string]interface{}{"key": key})
	}
}

// TrySet is Set with the error returned instead of logged.
func TrySet[T any](ctx context.Context, s *Store, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.backend.SetItem(ctx, key, string(b))
}

// Exists reports whether key holds a non-null value that is valid JSON.
func (s *Store) Exists(ctx context.Context, key string) bool {
	b, ok := s.raw(ctx, key)
	return ok && json.Valid(b)
}

// Remove deletes key. Failures are logged.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.RemoveItem(ctx, key); err != nil {
		utils.LogError(err, "storage: remove failed", map[string]interface{}{"key": key})
	}
}
