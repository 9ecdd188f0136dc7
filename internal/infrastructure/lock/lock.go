package lock

import (
	"context"
	"sync"
	"time"

	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const acquireTimeout = 5 * time.Second

// UserLockManager serializes mutations per user id. Every read-modify-write
// on a user's ledger or inventory runs under that user's lock. Each lock is
// a one-slot channel, so an acquisition that times out or is cancelled
// simply stops waiting; it leaves nothing behind that could hold the slot.
type UserLockManager struct {
	locks  sync.Map // map[int64]chan struct{}
	logger *logger.Logger
}

// NewUserLockManager creates a new user lock manager
func NewUserLockManager(log *logger.Logger) *UserLockManager {
	return &UserLockManager{logger: log}
}

// Lock acquires the lock for the given userID, honoring ctx and a fixed
// acquisition timeout.
func (m *UserLockManager) Lock(ctx context.Context, userID int64) error {
	slot := m.getOrCreateSlot(userID)

	select {
	case slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.logger.Warn("lock acquisition cancelled", zap.Int64("userID", userID), zap.Error(ctx.Err()))
		return &Timeout{UserID: userID, Cause: ctx.Err()}
	case <-time.After(acquireTimeout):
		m.logger.Warn("lock acquisition timed out", zap.Int64("userID", userID))
		return &Timeout{UserID: userID}
	}
}

// Unlock releases the lock for the given userID.
func (m *UserLockManager) Unlock(userID int64) {
	slotInterface, ok := m.locks.Load(userID)
	if !ok {
		m.logger.Warn("no lock found during unlock", zap.Int64("userID", userID))
		return
	}
	select {
	case <-slotInterface.(chan struct{}):
	default:
		m.logger.Warn("unlock of a lock not held", zap.Int64("userID", userID))
	}
}

// LockPair acquires both users' locks in ascending id order, so two users
// attacking each other simultaneously cannot deadlock. The ids must differ.
func (m *UserLockManager) LockPair(ctx context.Context, a, b int64) error {
	first, second := a, b
	if first > second {
		first, second = second, first
	}
	if err := m.Lock(ctx, first); err != nil {
		return err
	}
	if err := m.Lock(ctx, second); err != nil {
		m.Unlock(first)
		return err
	}
	return nil
}

// UnlockPair releases both users' locks.
func (m *UserLockManager) UnlockPair(a, b int64) {
	m.Unlock(a)
	m.Unlock(b)
}

func (m *UserLockManager) getOrCreateSlot(userID int64) chan struct{} {
	if slot, ok := m.locks.Load(userID); ok {
		return slot.(chan struct{})
	}
	actual, _ := m.locks.LoadOrStore(userID, make(chan struct{}, 1))
	return actual.(chan struct{})
}

// Timeout reports a failed lock acquisition.
type Timeout struct {
	UserID int64
	Cause  error
}

func (t *Timeout) Error() string {
	if t.Cause != nil {
		return "failed to acquire lock: " + t.Cause.Error()
	}
	return "failed to acquire lock: timeout"
}

func (t *Timeout) Unwrap() error {
	return t.Cause
}
