package breaker

import (
	"testing"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b := New(Config{FailureThreshold: 3, CoolDown: time.Minute})

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("expected CLOSED to allow, got %v", err)
		}
		b.RecordFailure()
	}
	if b.Snapshot().State != types.CircuitClosed {
		t.Fatal("should still be closed below threshold")
	}

	if err := b.Allow(); err != nil {
		t.Fatal("third attempt should still be allowed before failing")
	}
	b.RecordFailure()

	if b.Snapshot().State != types.CircuitOpen {
		t.Fatal("should trip open at threshold")
	}
	if err := b.Allow(); err == nil {
		t.Fatal("expected ErrBreakerOpen while open and cooling down")
	}
}

func TestBreakerHalfOpenSingleProbe(t *testing.T) {
	clock := time.Now()
	b := New(Config{FailureThreshold: 1, CoolDown: 10 * time.Second}).withClock(func() time.Time { return clock })

	if err := b.Allow(); err != nil {
		t.Fatal(err)
	}
	b.RecordFailure() // trips open

	clock = clock.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to be admitted after cool-down, got %v", err)
	}
	if b.Snapshot().State != types.CircuitHalfOpen {
		t.Fatal("expected HALF_OPEN after cool-down elapses")
	}

	// A second concurrent caller must be rejected while the probe is in flight.
	if err := b.Allow(); err == nil {
		t.Fatal("expected second caller to be rejected during in-flight probe")
	}
}

func TestBreakerProbeSuccessCloses(t *testing.T) {
	clock := time.Now()
	b := New(Config{FailureThreshold: 1, CoolDown: time.Second}).withClock(func() time.Time { return clock })

	b.Allow()
	b.RecordFailure()
	clock = clock.Add(2 * time.Second)
	b.Allow() // enters half-open
	b.RecordSuccess()

	if b.Snapshot().State != types.CircuitClosed {
		t.Fatal("successful probe must close the circuit")
	}
	if err := b.Allow(); err != nil {
		t.Fatal("closed circuit must allow requests")
	}
}

func TestBreakerProbeFailureReopens(t *testing.T) {
	clock := time.Now()
	b := New(Config{FailureThreshold: 1, CoolDown: time.Second}).withClock(func() time.Time { return clock })

	b.Allow()
	b.RecordFailure()
	clock = clock.Add(2 * time.Second)
	b.Allow() // half-open probe
	b.RecordFailure()

	if b.Snapshot().State != types.CircuitOpen {
		t.Fatal("failed probe must reopen the circuit")
	}
	if err := b.Allow(); err == nil {
		t.Fatal("expected cool-down to restart after failed probe")
	}
}

func TestBreakerOnTripFiresOnlyOnTransitionToOpen(t *testing.T) {
	trips := 0
	b := New(Config{FailureThreshold: 2, CoolDown: time.Minute, OnTrip: func() { trips++ }})

	b.Allow()
	b.RecordFailure() // below threshold, still closed
	if trips != 0 {
		t.Fatalf("expected no trip below threshold, got %d", trips)
	}

	b.Allow()
	b.RecordFailure() // hits threshold, trips open
	if trips != 1 {
		t.Fatalf("expected exactly one trip at threshold, got %d", trips)
	}
}
