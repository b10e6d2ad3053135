package executor

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/breaker"
	"github.com/AIDMI-DataHub/heatscan/internal/consumer"
	"github.com/AIDMI-DataHub/heatscan/internal/geocatalog"
	"github.com/AIDMI-DataHub/heatscan/internal/querygen"
	"github.com/AIDMI-DataHub/heatscan/internal/ratelimit"
	"github.com/AIDMI-DataHub/heatscan/internal/scheduler"
	"github.com/AIDMI-DataHub/heatscan/internal/termdict"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider returns articles for every region except quietSlug, which
// it always returns empty for — this lets tests assert that only the
// "loud" region seeds Phase 2.
type fakeProvider struct {
	name      string
	quietSlug string
	calls     atomic.Int32
}

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) SupportsLanguage(lang string) bool   { return true }
func (f *fakeProvider) Search(ctx context.Context, q types.Query) ([]types.ArticleRef, error) {
	f.calls.Add(1)
	if q.RegionSlug == f.quietSlug {
		return nil, nil
	}
	return []types.ArticleRef{{Title: "heat wave hits " + q.RegionDisplay, URL: "http://example.com/" + q.Fingerprint}}, nil
}

// memStore is a minimal in-memory checkpoint.Store for executor tests.
type memStore struct {
	mu     sync.Mutex
	marked map[string]struct{}
}

func newMemStore() *memStore { return &memStore{marked: make(map[string]struct{})} }

func (s *memStore) Load(ctx context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.marked))
	for k := range s.marked {
		out[k] = struct{}{}
	}
	return out, nil
}

func (s *memStore) Mark(ctx context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked[fingerprint] = struct{}{}
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = make(map[string]struct{})
	return nil
}

func (s *memStore) Close() error { return nil }

func testCatalogue(t *testing.T) *geocatalog.Catalogue {
	t.Helper()
	seed := []types.Region{
		{Slug: "rajasthan", DisplayName: "Rajasthan", Kind: types.RegionKindState, Languages: []string{"en", "hi"}, Districts: []types.DistrictName{"Jaipur", "Kota"}},
		{Slug: "kerala", DisplayName: "Kerala", Kind: types.RegionKindState, Languages: []string{"en", "hi"}, Districts: []types.DistrictName{"Kochi", "Kozhikode"}},
	}
	cat, err := geocatalog.Load(seed)
	if err != nil {
		t.Fatalf("load catalogue: %v", err)
	}
	return cat
}

func testGenerator(t *testing.T) *querygen.Generator {
	t.Helper()
	dict, err := termdict.Load(termdict.DefaultSeed())
	if err != nil {
		t.Fatalf("load term dictionary: %v", err)
	}
	return querygen.New(dict, querygen.DefaultLimits())
}

func testSchedulers(t *testing.T, quietSlug string) map[types.ProviderHint]*scheduler.Scheduler {
	t.Helper()
	out := make(map[types.ProviderHint]*scheduler.Scheduler)
	for _, hint := range types.ProviderOrder {
		p := &fakeProvider{name: string(hint), quietSlug: quietSlug}
		gov := ratelimit.NewGovernor(ratelimit.Config{})
		brk := breaker.New(breaker.DefaultConfig())
		out[hint] = scheduler.New(p, gov, brk, scheduler.Config{MaxRetries: 1, RetryBaseDelay: time.Millisecond}, testLogger())
	}
	return out
}

func newTestExecutor(t *testing.T, quietSlug string, collector consumer.Collector) (*Executor, *memStore) {
	t.Helper()
	store := newMemStore()
	cfg := Config{
		GlobalInFlight:  8,
		PendingQueueCap: 64,
		Deadline:        2 * time.Second,
		GraceWindow:     200 * time.Millisecond,
		StatePhaseFrac:  0.5,
	}
	ex := New(
		testCatalogue(t),
		testGenerator(t),
		testSchedulers(t, quietSlug),
		store,
		nil,
		nil,
		collector,
		cfg,
		nil,
		nil,
		testLogger(),
	)
	return ex, store
}

func TestRunActivatesOnlyRegionsWithArticles(t *testing.T) {
	collector := consumer.NewMemoryCollector()
	ex, _ := newTestExecutor(t, "kerala", collector)

	report, err := ex.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.ActiveRegions) != 1 || report.ActiveRegions[0] != "rajasthan" {
		t.Fatalf("expected only rajasthan active, got %v", report.ActiveRegions)
	}
	if !report.Phase2Ran {
		t.Fatal("expected phase 2 to run since one region was active")
	}

	sawDistrictQuery := false
	for _, r := range collector.Results() {
		if r.Query.Level == types.LevelDistrict {
			sawDistrictQuery = true
			if r.Query.RegionSlug != "rajasthan" {
				t.Fatalf("phase 2 dispatched a query for inactive region %s", r.Query.RegionSlug)
			}
		}
	}
	if !sawDistrictQuery {
		t.Fatal("expected at least one district-level result")
	}
}

func TestRunSkipsPhase2WhenNoRegionsActive(t *testing.T) {
	collector := consumer.NewMemoryCollector()
	ex, _ := newTestExecutor(t, "", collector)

	// Restricting to a region absent from the catalogue means Phase 1
	// generates no queries at all, so no region can ever become active.
	ex.cfg.Regions = []string{"does-not-exist"}

	report, err := ex.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Phase2Ran {
		t.Fatal("expected phase 2 to be skipped when phase 1 dispatched nothing")
	}
	if len(report.ActiveRegions) != 0 {
		t.Fatalf("expected no active regions, got %v", report.ActiveRegions)
	}
}

func TestRunSkipsAlreadyCheckpointedQueries(t *testing.T) {
	collector := consumer.NewMemoryCollector()
	ex, store := newTestExecutor(t, "", collector)
	ex.cfg.Regions = []string{"rajasthan"}
	ex.cfg.Languages = []string{"en"}

	first, err := ex.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Phase1Dispatched == 0 {
		t.Fatal("expected first run to dispatch phase 1 queries")
	}

	marked, _ := store.Load(context.Background())
	if len(marked) == 0 {
		t.Fatal("expected checkpoint to be populated after first run")
	}

	collector2 := consumer.NewMemoryCollector()
	ex2 := New(
		testCatalogue(t),
		testGenerator(t),
		testSchedulers(t, ""),
		store,
		nil,
		nil,
		collector2,
		ex.cfg,
		nil,
		nil,
		testLogger(),
	)
	second, err := ex2.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Phase1Skipped == 0 {
		t.Fatal("expected second run to skip already-checkpointed phase 1 queries")
	}
}

func TestRunRespectsMaxArticlesAcrossPhases(t *testing.T) {
	collector := consumer.NewMemoryCollector()
	ex, _ := newTestExecutor(t, "", collector)
	ex.cfg.Regions = []string{"rajasthan"}
	ex.cfg.Languages = []string{"en"}
	ex.cfg.MaxArticles = 2

	if _, err := ex.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	total := 0
	for _, r := range collector.Results() {
		total += len(r.Articles)
	}
	if total > 2 {
		t.Fatalf("expected at most 2 articles total, got %d", total)
	}
}

// fakeMetrics is a spy MetricsSink used to assert dispatch actually
// reaches the metrics hooks, not just the checkpoint store.
type fakeMetrics struct {
	observed         atomic.Int32
	checkpointWrites atomic.Int32
	checkpointErrors atomic.Int32
}

func (m *fakeMetrics) Observe(types.QueryResult, float64) { m.observed.Add(1) }
func (m *fakeMetrics) RecordCheckpointWrite()             { m.checkpointWrites.Add(1) }
func (m *fakeMetrics) RecordCheckpointError()             { m.checkpointErrors.Add(1) }

func TestRunReportsMetricsPerDispatch(t *testing.T) {
	collector := consumer.NewMemoryCollector()
	store := newMemStore()
	metrics := &fakeMetrics{}
	cfg := Config{
		GlobalInFlight:  8,
		PendingQueueCap: 64,
		Deadline:        2 * time.Second,
		GraceWindow:     200 * time.Millisecond,
		StatePhaseFrac:  0.5,
		Regions:         []string{"rajasthan"},
		Languages:       []string{"en"},
	}
	ex := New(
		testCatalogue(t),
		testGenerator(t),
		testSchedulers(t, ""),
		store,
		nil,
		nil,
		collector,
		cfg,
		nil,
		metrics,
		testLogger(),
	)

	report, err := ex.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantDispatched := int32(report.Phase1Dispatched + report.Phase2Dispatched)
	if metrics.observed.Load() != wantDispatched {
		t.Fatalf("expected %d Observe calls, got %d", wantDispatched, metrics.observed.Load())
	}
	if metrics.checkpointWrites.Load() != wantDispatched {
		t.Fatalf("expected %d checkpoint writes recorded, got %d", wantDispatched, metrics.checkpointWrites.Load())
	}
	if metrics.checkpointErrors.Load() != 0 {
		t.Fatalf("expected no checkpoint errors, got %d", metrics.checkpointErrors.Load())
	}
}
