// Package breaker implements the per-provider circuit breaker: a
// CLOSED/OPEN/HALF_OPEN state machine with a single in-flight probe,
// tracking provider health via consecutive-failure counting and
// cool-down windows.
package breaker

import (
	"sync"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Config tunes one breaker instance.
type Config struct {
	FailureThreshold int           // consecutive failures before tripping OPEN
	CoolDown         time.Duration // time OPEN must elapse before a HALF_OPEN probe is allowed
	OnTrip           func()        // optional, called whenever CLOSED/HALF_OPEN -> OPEN
}

// DefaultConfig trips after 5 consecutive failures and cools down for
// 60 seconds.
func DefaultConfig() Config {
	return Config{FailureThreshold: 5, CoolDown: 60 * time.Second}
}

// Breaker is safe for concurrent use by multiple goroutines issuing
// requests against the same provider.
type Breaker struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	state types.CircuitState
}

// New builds a Breaker using cfg and the real wall clock.
func New(cfg Config) *Breaker {
	return &Breaker{cfg: cfg, now: time.Now}
}

// Allow reports whether a new request may proceed. In CLOSED, it always
// may. In OPEN, it may only once CoolDown has elapsed since the trip,
// and then only a single caller is admitted as the HALF_OPEN probe —
// every other concurrent caller is rejected with types.ErrBreakerOpen
// until that probe resolves via RecordSuccess or RecordFailure.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state.State {
	case types.CircuitClosed:
		return nil
	case types.CircuitHalfOpen:
		return types.ErrBreakerOpen
	case types.CircuitOpen:
		elapsed := time.Duration(b.now().UnixNano() - b.state.OpenedAtMonotonic)
		if elapsed < b.cfg.CoolDown {
			return types.ErrBreakerOpen
		}
		b.state.State = types.CircuitHalfOpen
		b.state.ProbeInFlight = true
		return nil
	default:
		return types.ErrBreakerOpen
	}
}

// RecordSuccess resets the failure count to zero and, if this success
// was the HALF_OPEN probe, closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.ConsecutiveFailures = 0
	b.state.State = types.CircuitClosed
	b.state.ProbeInFlight = false
	b.state.OpenedAtMonotonic = 0
}

// RecordFailure increments the consecutive-failure count. If the
// breaker was HALF_OPEN, the failed probe reopens it immediately and
// restarts the cool-down clock. If CLOSED, it trips OPEN once the
// configured threshold is reached.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.ConsecutiveFailures++
	b.state.ProbeInFlight = false

	switch b.state.State {
	case types.CircuitHalfOpen:
		b.trip()
	case types.CircuitClosed:
		if b.state.ConsecutiveFailures >= b.cfg.FailureThreshold {
			b.trip()
		}
	}
}

// trip transitions to OPEN and stamps the trip time. Caller holds b.mu.
func (b *Breaker) trip() {
	b.state.State = types.CircuitOpen
	b.state.OpenedAtMonotonic = b.now().UnixNano()
	if b.cfg.OnTrip != nil {
		b.cfg.OnTrip()
	}
}

// Snapshot returns a copy of the current state, for status reporting
// and tests.
func (b *Breaker) Snapshot() types.CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// withClock overrides the time source, used only in tests.
func (b *Breaker) withClock(now func() time.Time) *Breaker {
	b.now = now
	return b
}
