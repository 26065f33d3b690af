package lock

import (
	"context"
	"sync"
	"testing"
)

func TestMutexLockerSerializes(t *testing.T) {
	l := NewMutexLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "daily-sales")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen)
	}
}

func TestMutexLockerHonoursCancelledContext(t *testing.T) {
	l := NewMutexLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Lock(ctx, "daily-sales"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
