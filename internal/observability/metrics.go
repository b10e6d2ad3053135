// Package observability exposes operational metrics in Prometheus text
// exposition format: an atomic-counter struct plus a ServeHTTP
// handler, with percentile latency tracking via montanaflynn/stats
// since heatscan's dominant cost is per-provider round-trip latency.
package observability

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/montanaflynn/stats"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Metrics tracks operational counters for one run, keyed where relevant
// by provider name.
type Metrics struct {
	QueriesDispatched atomic.Int64
	QueriesSkipped    atomic.Int64
	QueriesOK         atomic.Int64
	QueriesFailed     atomic.Int64
	ArticlesCollected atomic.Int64
	CheckpointWrites  atomic.Int64
	CheckpointErrors  atomic.Int64
	BreakerTrips      atomic.Int64

	mu         sync.Mutex
	byOutcome  map[types.Outcome]int64
	byProvider map[string]int64
	latencies  []float64 // seconds, one per completed dispatch
}

// NewMetrics returns an empty Metrics ready for concurrent use.
func NewMetrics() *Metrics {
	return &Metrics{
		byOutcome:  make(map[types.Outcome]int64),
		byProvider: make(map[string]int64),
	}
}

// Observe records one completed QueryResult's outcome, provider, and
// dispatch latency (seconds).
func (m *Metrics) Observe(result types.QueryResult, latencySeconds float64) {
	m.QueriesDispatched.Add(1)
	switch result.Outcome {
	case types.OutcomeOK:
		m.QueriesOK.Add(1)
	case types.OutcomeSkippedBudget, types.OutcomeSkippedLanguage, types.OutcomeSkippedBreakerOpen:
		m.QueriesSkipped.Add(1)
	case types.OutcomeFailedTransient, types.OutcomeFailedPermanent:
		m.QueriesFailed.Add(1)
	}
	m.ArticlesCollected.Add(int64(len(result.Articles)))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byOutcome[result.Outcome]++
	m.byProvider[result.ProviderName]++
	m.latencies = append(m.latencies, latencySeconds)
}

// RecordBreakerTrip increments the breaker-trip counter. The composition
// root installs it as each breaker's OnTrip hook, so it runs whenever a
// Scheduler's breaker transitions CLOSED -> OPEN.
func (m *Metrics) RecordBreakerTrip() { m.BreakerTrips.Add(1) }

// RecordCheckpointWrite and RecordCheckpointError track the checkpoint
// store's write outcomes, surfaced separately from query outcomes since
// a checkpoint failure does not change a query's classification.
func (m *Metrics) RecordCheckpointWrite() { m.CheckpointWrites.Add(1) }
func (m *Metrics) RecordCheckpointError() { m.CheckpointErrors.Add(1) }

// LatencyPercentiles returns the p50/p90/p99 dispatch latency in
// seconds over every Observe call so far, computed via
// montanaflynn/stats. Returns zeroes if no observations were recorded.
func (m *Metrics) LatencyPercentiles() (p50, p90, p99 float64) {
	m.mu.Lock()
	data := append([]float64(nil), m.latencies...)
	m.mu.Unlock()

	if len(data) == 0 {
		return 0, 0, 0
	}
	p50, _ = stats.Percentile(data, 50)
	p90, _ = stats.Percentile(data, 90)
	p99, _ = stats.Percentile(data, 99)
	return p50, p90, p99
}

// ServeHTTP serves the counters and latency percentiles in Prometheus
// text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	p50, p90, p99 := m.LatencyPercentiles()

	counters := []struct {
		name  string
		help  string
		value int64
	}{
		{"heatscan_queries_dispatched_total", "Total queries dispatched to a provider", m.QueriesDispatched.Load()},
		{"heatscan_queries_skipped_total", "Total queries skipped without a network call", m.QueriesSkipped.Load()},
		{"heatscan_queries_ok_total", "Total queries that returned ok", m.QueriesOK.Load()},
		{"heatscan_queries_failed_total", "Total queries that failed (transient or permanent)", m.QueriesFailed.Load()},
		{"heatscan_articles_collected_total", "Total ArticleRefs collected across all queries", m.ArticlesCollected.Load()},
		{"heatscan_checkpoint_writes_total", "Total successful checkpoint marks", m.CheckpointWrites.Load()},
		{"heatscan_checkpoint_errors_total", "Total failed checkpoint marks", m.CheckpointErrors.Load()},
		{"heatscan_breaker_trips_total", "Total circuit breaker CLOSED->OPEN transitions", m.BreakerTrips.Load()},
	}
	for _, c := range counters {
		fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
		fmt.Fprintf(w, "%s %d\n", c.name, c.value)
	}

	fmt.Fprintf(w, "# HELP heatscan_dispatch_latency_seconds Dispatch latency percentiles in seconds\n")
	fmt.Fprintf(w, "# TYPE heatscan_dispatch_latency_seconds summary\n")
	fmt.Fprintf(w, "heatscan_dispatch_latency_seconds{quantile=\"0.5\"} %f\n", p50)
	fmt.Fprintf(w, "heatscan_dispatch_latency_seconds{quantile=\"0.9\"} %f\n", p90)
	fmt.Fprintf(w, "heatscan_dispatch_latency_seconds{quantile=\"0.99\"} %f\n", p99)

	m.mu.Lock()
	defer m.mu.Unlock()
	for provider, count := range m.byProvider {
		fmt.Fprintf(w, "heatscan_queries_by_provider_total{provider=%q} %d\n", provider, count)
	}
	for outcome, count := range m.byOutcome {
		fmt.Fprintf(w, "heatscan_queries_by_outcome_total{outcome=%q} %d\n", string(outcome), count)
	}
}
