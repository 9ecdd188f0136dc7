package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

func newTestManager() *UserLockManager {
	return NewUserLockManager(logger.NewLogger("test", "error"))
}

func TestLockSerializesPerUser(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	assert.NoError(t, m.Lock(ctx, 1))

	acquired := make(chan struct{})
	go func() {
		_ = m.Lock(ctx, 1)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	m.Unlock(1)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock never acquired after Unlock")
	}
	m.Unlock(1)
}

func TestLockPairOrderingPreventsDeadlock(t *testing.T) {
	m := newTestManager()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Two goroutines locking the same pair from opposite directions must
	// both complete because LockPair orders by ascending id.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := m.LockPair(ctx, 7, 9); err == nil {
				m.UnlockPair(7, 9)
			}
		}()
		go func() {
			defer wg.Done()
			if err := m.LockPair(ctx, 9, 7); err == nil {
				m.UnlockPair(9, 7)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("pair locking deadlocked")
	}
}

func TestAbandonedAcquisitionDoesNotWedgeLock(t *testing.T) {
	m := newTestManager()
	assert.NoError(t, m.Lock(context.Background(), 3))

	// a cancelled waiter must leave the lock usable once the holder releases
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.Lock(ctx, 3))

	m.Unlock(3)

	relocked := make(chan error, 1)
	go func() { relocked <- m.Lock(context.Background(), 3) }()
	select {
	case err := <-relocked:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("lock wedged after an abandoned acquisition")
	}
	m.Unlock(3)
}

func TestLockHonorsContextCancellation(t *testing.T) {
	m := newTestManager()
	assert.NoError(t, m.Lock(context.Background(), 5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Lock(ctx, 5)
	assert.Error(t, err)

	var timeout *Timeout
	assert.ErrorAs(t, err, &timeout)
	m.Unlock(5)
}
