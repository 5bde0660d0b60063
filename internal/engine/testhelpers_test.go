package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/roadwatch/vigil/internal/config"
	"github.com/roadwatch/vigil/internal/db"
	"github.com/roadwatch/vigil/internal/db/memory"
	"github.com/rs/zerolog"
)

// fakeClock is a manually advanced Clock for deterministic tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingKV rejects every operation, for exercising the best-effort
// persistence paths.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("kv: unavailable")
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("kv: unavailable")
}

func (failingKV) Close() error { return nil }

var _ db.KV = failingKV{}

// testStart is 14:00 on a June day: day/summer context.
var testStart = time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, *memory.Store, *fakeClock) {
	store := memory.New()
	clock := newFakeClock(testStart)
	eng := NewWithClock(config.Default(), store, zerolog.Nop(), clock)
	return eng, store, clock
}
