package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Roller is the randomness source for combat rolls and box payouts. The
// engines take it by injection so tests can pin the draws.
type Roller interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

type lockedRoller struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a time-seeded Roller safe for concurrent use.
func New() Roller {
	return &lockedRoller{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a deterministic Roller for tests and replays.
func NewSeeded(seed int64) Roller {
	return &lockedRoller{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}
