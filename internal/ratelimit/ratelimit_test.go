package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// fakeClock advances only when Sleep is called, so window/per-second
// math can be exercised without real wall-clock delay.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return nil
}

func TestGovernorBudgetExhaustedShortCircuits(t *testing.T) {
	g := NewGovernorWithClock(Config{DailyLimit: 1}, newFakeClock())

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire should succeed: %v", err)
	}
	g.CreditDispatch()

	if err := g.Acquire(context.Background()); err != types.ErrBudgetExhausted {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
}

func TestGovernorWindowLimitsConcurrency(t *testing.T) {
	clock := newFakeClock()
	g := NewGovernorWithClock(Config{WindowMax: 2, WindowSeconds: 10}, clock)

	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	snap := g.Snapshot()
	if len(snap.WindowTimestamps) != 2 {
		t.Fatalf("expected 2 window entries, got %d", len(snap.WindowTimestamps))
	}

	// A third acquire must wait for the window to roll forward rather
	// than being admitted immediately.
	start := clock.Now()
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if !clock.Now().After(start) {
		t.Fatal("expected the fake clock to advance while waiting for the window to roll")
	}
}

func TestGovernorPerSecondPacing(t *testing.T) {
	clock := newFakeClock()
	g := NewGovernorWithClock(Config{PerSecondInterval: time.Second}, clock)

	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	before := clock.Now()
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if clock.Now().Sub(before) < time.Second {
		t.Fatal("expected at least PerSecondInterval to elapse between acquires")
	}
}

func TestGovernorCancellationDuringWait(t *testing.T) {
	g := NewGovernorWithClock(Config{WindowMax: 1, WindowSeconds: 10}, newFakeClock())

	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Acquire(cancelled); err == nil {
		t.Fatal("expected cancellation error when context is already done")
	}
}
