package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a previously acquired lock.
type UnlockFunc func(ctx context.Context) error

// Locker serializes per-user operations across processes. Commands for the
// same user may arrive from different processes; without a lock the
// read-modify-write cycle degrades to last-write-wins.
type Locker interface {
	// Lock acquires the lock for key, retrying until ctx is done. The ttl
	// bounds how long an orphaned lock can block others.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
