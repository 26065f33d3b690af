// Package lock serializes writes that must observe a check-then-act sequence
// atomically, such as inserting at most one sale per date.
package lock

import (
	"context"
	"sync"
)

// Locker obtains an exclusive lock for key. The returned function releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// MutexLocker is a single process-wide lock. Keys are ignored.
type MutexLocker struct {
	mu sync.Mutex
}

// NewMutexLocker creates an in-process locker
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{}
}

// Lock blocks until the lock is held or ctx is done
func (l *MutexLocker) Lock(ctx context.Context, _ string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	return l.mu.Unlock, nil
}
