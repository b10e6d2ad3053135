package executor

import "sync/atomic"

// AtomicStatus is a StatusReporter backed by atomics, cheap enough to
// update from every dispatch goroutine and safe to read concurrently
// from the statusapi HTTP handler.
type AtomicStatus struct {
	phase         atomic.Value // string
	dispatched    atomic.Int64
	completed     atomic.Int64
	activeRegions atomic.Int64
}

// NewAtomicStatus returns a ready-to-use AtomicStatus in the "idle" phase.
func NewAtomicStatus() *AtomicStatus {
	s := &AtomicStatus{}
	s.phase.Store("idle")
	return s
}

func (s *AtomicStatus) ReportPhase(phase string)   { s.phase.Store(phase) }
func (s *AtomicStatus) ReportDispatched(delta int) { s.dispatched.Add(int64(delta)) }
func (s *AtomicStatus) ReportCompleted(delta int)  { s.completed.Add(int64(delta)) }
func (s *AtomicStatus) ReportActiveRegions(count int) {
	s.activeRegions.Store(int64(count))
}

// Snapshot is a point-in-time read of the run's progress, the shape the
// statusapi package serializes as JSON.
type Snapshot struct {
	Phase         string `json:"phase"`
	Dispatched    int64  `json:"dispatched"`
	Completed     int64  `json:"completed"`
	ActiveRegions int64  `json:"active_regions"`
}

func (s *AtomicStatus) Snapshot() Snapshot {
	phase, _ := s.phase.Load().(string)
	return Snapshot{
		Phase:         phase,
		Dispatched:    s.dispatched.Load(),
		Completed:     s.completed.Load(),
		ActiveRegions: s.activeRegions.Load(),
	}
}
