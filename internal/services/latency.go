package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default simulated round-trip times of the facade.
const (
	DefaultAPILatency  = 300 * time.Millisecond
	DefaultAuthLatency = 500 * time.Millisecond
)

// simulateLatency blocks for d or until ctx is done. It runs before any
// collection lock is taken so concurrent callers wait in parallel.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newID returns prefix followed by a random UUID.
func newID(prefix string) string {
	return prefix + uuid.NewString()
}
