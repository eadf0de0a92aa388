package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for cross-process mutual exclusion.
// It lets several bot replicas share the per-user purchase guard.
type DistributedLocker interface {
	// TryLock acquires the lock for key without waiting.
	// Returns domain.ErrBusy if someone else holds it. On success the returned
	// UnlockFunc MUST be called to release the lock.
	TryLock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
