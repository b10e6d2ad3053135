// Package ratelimit implements the three-dimensional per-provider Rate
// Governor: a daily budget, a rolling window, and a per-second pacer,
// composed and acquired in the fixed order budget -> window -> per-second
// to avoid lock-order cycles and to short-circuit dead providers before
// they pay any wait cost.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Clock abstracts monotonic time so tests can control pacing without
// sleeping for real. Production code uses realClock; tests substitute a
// fake.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RealClock is the production Clock.
var RealClock Clock = realClock{}

// Config is one provider's three-dimensional limit configuration.
type Config struct {
	PerSecondInterval time.Duration // minimum gap between consecutive requests
	JitterFraction    float64       // uniform jitter added on top, as a fraction of PerSecondInterval
	WindowMax         int           // 0 = unbounded
	WindowSeconds     int
	DailyLimit        int // 0 = unbounded
}

// Governor enforces Config for one provider. Acquire blocks (subject to
// ctx) until all three dimensions admit a request, then records the
// request's timestamp against the window and per-second pacers. The
// daily counter is NOT incremented by Acquire — the credit must land
// after the provider's HTTP dispatch completes, so callers increment it
// explicitly via CreditDispatch once the round-trip is done, regardless
// of parse outcome.
type Governor struct {
	cfg   Config
	clock Clock

	mu     sync.Mutex
	budget types.ProviderBudget
}

// NewGovernor builds a Governor from cfg using the real clock.
func NewGovernor(cfg Config) *Governor {
	return NewGovernorWithClock(cfg, RealClock)
}

// NewGovernorWithClock builds a Governor with an injectable clock, for
// deterministic tests.
func NewGovernorWithClock(cfg Config, clock Clock) *Governor {
	return &Governor{
		cfg:   cfg,
		clock: clock,
		budget: types.ProviderBudget{
			DailyLimit:          cfg.DailyLimit,
			WindowLimit:         cfg.WindowMax,
			WindowSeconds:       cfg.WindowSeconds,
			PerSecondIntervalNs: int64(cfg.PerSecondInterval),
		},
	}
}

// Acquire passes through all three limiter dimensions in order:
// budget -> window -> per-second. Returns types.ErrBudgetExhausted
// immediately (no waiting, no window/per-second entry at all) if the
// daily cap is already reached. Returns ctx.Err() if cancelled while
// sleeping in the window or per-second stage; cancellation during a
// limiter sleep must not record a request timestamp.
func (g *Governor) Acquire(ctx context.Context) error {
	if err := g.checkBudget(); err != nil {
		return err
	}
	if err := g.acquireWindow(ctx); err != nil {
		return err
	}
	if err := g.acquirePerSecond(ctx); err != nil {
		return err
	}
	return nil
}

// checkBudget fails fast with no sleep when the daily cap is already
// spent — the scheduler must not enter the per-second or window limiters
// for a provider that is already dead for the day.
func (g *Governor) checkBudget() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.budget.Unbounded() {
		return nil
	}
	if g.budget.DailyCount >= g.budget.DailyLimit {
		return types.ErrBudgetExhausted
	}
	return nil
}

// acquireWindow prunes timestamps outside [now-window, now], sleeps until
// the oldest timestamp falls out of the window if at capacity, then
// records the new timestamp. Pruning, the capacity check, and the append
// all happen under the same lock hold per attempt to preserve FIFO
// ordering within one provider.
func (g *Governor) acquireWindow(ctx context.Context) error {
	if g.cfg.WindowMax <= 0 {
		return nil
	}
	const epsilon = 50 * time.Millisecond

	for {
		g.mu.Lock()
		now := g.clock.Now()
		g.pruneWindowLocked(now)

		if len(g.budget.WindowTimestamps) < g.cfg.WindowMax {
			g.budget.WindowTimestamps = append(g.budget.WindowTimestamps, now.UnixNano())
			g.mu.Unlock()
			return nil
		}

		oldest := time.Unix(0, g.budget.WindowTimestamps[0])
		wait := oldest.Add(time.Duration(g.cfg.WindowSeconds) * time.Second).Sub(now) + epsilon
		g.mu.Unlock()

		if wait <= 0 {
			continue
		}
		if err := g.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// pruneWindowLocked drops timestamps older than now-window. Caller holds
// g.mu.
func (g *Governor) pruneWindowLocked(now time.Time) {
	cutoff := now.Add(-time.Duration(g.cfg.WindowSeconds) * time.Second).UnixNano()
	ts := g.budget.WindowTimestamps
	i := 0
	for i < len(ts) && ts[i] < cutoff {
		i++
	}
	if i > 0 {
		g.budget.WindowTimestamps = append([]int64(nil), ts[i:]...)
	}
}

// acquirePerSecond enforces the minimum interval between consecutive
// requests with uniform jitter, computed against the monotonic clock
// only — wall-clock adjustments must never perturb pacing.
func (g *Governor) acquirePerSecond(ctx context.Context) error {
	if g.cfg.PerSecondInterval <= 0 {
		return nil
	}

	g.mu.Lock()
	now := g.clock.Now()
	var wait time.Duration
	if g.budget.LastRequestMonotonic != 0 {
		last := time.Unix(0, g.budget.LastRequestMonotonic)
		wait = g.cfg.PerSecondInterval - now.Sub(last)
	}
	g.mu.Unlock()

	if wait > 0 {
		jitter := time.Duration(rand.Float64() * g.cfg.JitterFraction * float64(g.cfg.PerSecondInterval))
		if err := g.clock.Sleep(ctx, wait+jitter); err != nil {
			return err
		}
	}

	g.mu.Lock()
	g.budget.LastRequestMonotonic = g.clock.Now().UnixNano()
	g.mu.Unlock()
	return nil
}

// CreditDispatch increments the daily counter. The scheduler calls it
// once per Execute call, after the first dispatch's round-trip
// completes, regardless of parse success; retries within the same
// Execute call are not credited again.
func (g *Governor) CreditDispatch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.budget.DailyCount++
}

// Snapshot returns a copy of the current budget state, for status
// reporting and tests.
func (g *Governor) Snapshot() types.ProviderBudget {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := g.budget
	cp.WindowTimestamps = append([]int64(nil), g.budget.WindowTimestamps...)
	return cp
}

// Reset zeroes the daily counter, the window timestamps, and the
// last-request time. Nothing in this repository calls it.
func (g *Governor) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.budget.DailyCount = 0
	g.budget.WindowTimestamps = nil
	g.budget.LastRequestMonotonic = 0
}
