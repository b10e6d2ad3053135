// Package executor drives the two-phase hierarchical collection: a
// state-level sweep across every selected region and language, an
// active-region computation over the sweep's results, and a
// district-level drill-down scoped to the regions that came back
// non-empty. Backpressure comes from a bounded channel; shutdown is
// driven by a central deadline-aware state machine.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/AIDMI-DataHub/heatscan/internal/checkpoint"
	"github.com/AIDMI-DataHub/heatscan/internal/consumer"
	"github.com/AIDMI-DataHub/heatscan/internal/geocatalog"
	"github.com/AIDMI-DataHub/heatscan/internal/querygen"
	"github.com/AIDMI-DataHub/heatscan/internal/scheduler"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// collectionFraction is the portion of the overall deadline reserved for
// Phase 1 + Phase 2 query dispatch; the remainder is left for downstream
// consumer stages (relevance tagging, sink flush).
const collectionFraction = 0.8

// Config tunes one Executor run.
type Config struct {
	GlobalInFlight  int64
	PendingQueueCap int
	ProviderLimits  map[types.ProviderHint]int64 // per-provider concurrency ceiling

	Regions     []string // region slugs to run; empty = all
	Languages   []string // language codes to run; empty = all supported
	MaxArticles int      // 0 = unbounded

	Deadline       time.Duration
	GraceWindow    time.Duration
	StatePhaseFrac float64 // fraction of the collection window given to Phase 1
}

// StatusReporter receives progress updates for the operational status
// endpoint. Implementations must not block the caller meaningfully.
type StatusReporter interface {
	ReportPhase(phase string)
	ReportDispatched(delta int)
	ReportCompleted(delta int)
	ReportActiveRegions(count int)
}

// noopReporter discards every report, used when no reporter is wired.
type noopReporter struct{}

func (noopReporter) ReportPhase(string)      {}
func (noopReporter) ReportDispatched(int)    {}
func (noopReporter) ReportCompleted(int)     {}
func (noopReporter) ReportActiveRegions(int) {}

// MetricsSink receives per-dispatch and per-checkpoint observations.
// *observability.Metrics satisfies this; it's expressed as an interface
// here so this package doesn't need to import observability.
type MetricsSink interface {
	Observe(result types.QueryResult, latencySeconds float64)
	RecordCheckpointWrite()
	RecordCheckpointError()
}

// noopMetrics discards every observation, used when no sink is wired.
type noopMetrics struct{}

func (noopMetrics) Observe(types.QueryResult, float64) {}
func (noopMetrics) RecordCheckpointWrite()             {}
func (noopMetrics) RecordCheckpointError()             {}

// Report summarizes one completed (or deadline-truncated) run.
type Report struct {
	Phase1Dispatched int
	Phase1Skipped    int
	Phase2Dispatched int
	Phase2Skipped    int
	ActiveRegions    []string
	Phase2Ran        bool
	Started          time.Time
	Ended            time.Time
}

// Executor ties the geo catalogue, term dictionary-backed query
// generator, per-provider Schedulers, Checkpoint Store, and consumer
// pipeline into the two-phase driver.
type Executor struct {
	catalogue  *geocatalog.Catalogue
	generator  *querygen.Generator
	schedulers map[types.ProviderHint]*scheduler.Scheduler
	store      checkpoint.Store
	pipeline   *consumer.Pipeline
	sink       consumer.Sink      // pipeline mode; nil if unused
	collector  consumer.Collector // batch mode; nil if unused
	cfg        Config
	logger     *slog.Logger

	globalSem  *semaphore.Weighted
	providerSem map[types.ProviderHint]*semaphore.Weighted

	status  StatusReporter
	metrics MetricsSink

	articlesMu    sync.Mutex
	articlesTotal int
}

// New builds an Executor. sink and collector are both optional but at
// least one should be set for results to go anywhere; callers wire
// whichever matches their run mode (pipeline streaming vs. batch).
func New(
	catalogue *geocatalog.Catalogue,
	generator *querygen.Generator,
	schedulers map[types.ProviderHint]*scheduler.Scheduler,
	store checkpoint.Store,
	pipeline *consumer.Pipeline,
	sink consumer.Sink,
	collector consumer.Collector,
	cfg Config,
	status StatusReporter,
	metrics MetricsSink,
	logger *slog.Logger,
) *Executor {
	if cfg.GlobalInFlight <= 0 {
		cfg.GlobalInFlight = 64
	}
	if cfg.PendingQueueCap <= 0 {
		cfg.PendingQueueCap = 1000
	}
	if cfg.StatePhaseFrac <= 0 || cfg.StatePhaseFrac >= 1 {
		cfg.StatePhaseFrac = 0.8
	}
	if status == nil {
		status = noopReporter{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	providerSem := make(map[types.ProviderHint]*semaphore.Weighted, len(schedulers))
	for hint := range schedulers {
		limit := cfg.ProviderLimits[hint]
		if limit <= 0 {
			limit = cfg.GlobalInFlight
		}
		providerSem[hint] = semaphore.NewWeighted(limit)
	}

	return &Executor{
		catalogue:   catalogue,
		generator:   generator,
		schedulers:  schedulers,
		store:       store,
		pipeline:    pipeline,
		sink:        sink,
		collector:   collector,
		cfg:         cfg,
		logger:      logger.With("component", "executor"),
		globalSem:   semaphore.NewWeighted(cfg.GlobalInFlight),
		providerSem: providerSem,
		status:      status,
		metrics:     metrics,
	}
}

// Run drives Phase 1, computes the active-region set, and — unless Phase
// 1 was aborted by cancellation or deadline — drives Phase 2, writing
// checkpoints and feeding the consumer pipeline as results land.
func (e *Executor) Run(ctx context.Context) (*Report, error) {
	report := &Report{Started: time.Now()}
	defer func() { report.Ended = time.Now() }()

	marked, err := e.store.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load checkpoint: %w", err)
	}

	overallDeadline := report.Started.Add(e.cfg.Deadline)
	collectionDeadline := report.Started.Add(time.Duration(float64(e.cfg.Deadline) * collectionFraction))
	phase1Deadline := report.Started.Add(time.Duration(float64(e.cfg.Deadline) * collectionFraction * e.cfg.StatePhaseFrac))
	if phase1Deadline.After(collectionDeadline) {
		phase1Deadline = collectionDeadline
	}

	regions := e.selectRegions()
	languages := e.selectLanguages()

	e.status.ReportPhase("phase1_state_sweep")
	phase1Ctx, cancel1 := context.WithDeadline(ctx, phase1Deadline)
	defer cancel1()

	queries1 := e.generateStateQueries(regions, languages)
	activeRegions := newActiveTracker()
	dispatched1, skipped1 := e.runPhase(phase1Ctx, queries1, marked, activeRegions)
	report.Phase1Dispatched = dispatched1
	report.Phase1Skipped = skipped1

	phase1Aborted := phase1Ctx.Err() != nil || ctx.Err() != nil
	if phase1Aborted {
		e.logger.Warn("phase 1 aborted before completion, skipping phase 2",
			"reason", phase1Ctx.Err())
		report.ActiveRegions = activeRegions.slugs()
		return report, nil
	}

	active := activeRegions.slugs()
	report.ActiveRegions = active
	e.status.ReportActiveRegions(len(active))

	if len(active) == 0 {
		e.logger.Info("no active regions after phase 1, skipping phase 2")
		return report, nil
	}

	graceDeadline := collectionDeadline
	if graceDeadline.After(overallDeadline) {
		graceDeadline = overallDeadline
	}
	phase2Deadline := graceDeadline.Add(e.cfg.GraceWindow)

	e.status.ReportPhase("phase2_district_drilldown")
	phase2Ctx, cancel2 := context.WithDeadline(ctx, phase2Deadline)
	defer cancel2()

	queries2 := e.generateDistrictQueries(regions, languages, active)
	dispatched2, skipped2 := e.runPhase(phase2Ctx, queries2, marked, nil)
	report.Phase2Dispatched = dispatched2
	report.Phase2Skipped = skipped2
	report.Phase2Ran = true

	return report, nil
}

// selectRegions filters the catalogue by cfg.Regions, defaulting to all.
func (e *Executor) selectRegions() []types.Region {
	all := e.catalogue.Regions()
	if len(e.cfg.Regions) == 0 {
		return all
	}
	want := make(map[string]struct{}, len(e.cfg.Regions))
	for _, slug := range e.cfg.Regions {
		want[slug] = struct{}{}
	}
	out := make([]types.Region, 0, len(want))
	for _, r := range all {
		if _, ok := want[r.Slug]; ok {
			out = append(out, r)
		}
	}
	return out
}

// selectLanguages filters the supported-language set by cfg.Languages,
// defaulting to every language a region declares support for.
func (e *Executor) selectLanguages() map[string]struct{} {
	if len(e.cfg.Languages) == 0 {
		return nil // nil means "no filter" to generateStateQueries/generateDistrictQueries
	}
	want := make(map[string]struct{}, len(e.cfg.Languages))
	for _, lang := range e.cfg.Languages {
		want[lang] = struct{}{}
	}
	return want
}

func (e *Executor) generateStateQueries(regions []types.Region, languageFilter map[string]struct{}) []types.Query {
	var out []types.Query
	for _, region := range regions {
		for _, lang := range region.Languages {
			if languageFilter != nil {
				if _, ok := languageFilter[lang]; !ok {
					continue
				}
			}
			out = append(out, e.generator.StateLevel(region, lang)...)
		}
	}
	return out
}

func (e *Executor) generateDistrictQueries(regions []types.Region, languageFilter map[string]struct{}, activeSlugs []string) []types.Query {
	activeSet := make(map[string]struct{}, len(activeSlugs))
	for _, s := range activeSlugs {
		activeSet[s] = struct{}{}
	}

	var out []types.Query
	for _, region := range regions {
		if _, ok := activeSet[region.Slug]; !ok {
			continue
		}
		for _, lang := range region.Languages {
			if languageFilter != nil {
				if _, ok := languageFilter[lang]; !ok {
					continue
				}
			}
			out = append(out, e.generator.DistrictLevel(region, lang, region.Districts)...)
		}
	}
	return out
}

// activeTracker accumulates region slugs seen with an ok, non-empty
// QueryResult during a phase, guarded for concurrent dispatch.
type activeTracker struct {
	mu    sync.Mutex
	slugSet map[string]struct{}
}

func newActiveTracker() *activeTracker {
	return &activeTracker{slugSet: make(map[string]struct{})}
}

func (t *activeTracker) observe(result types.QueryResult) {
	if result.Outcome != types.OutcomeOK || len(result.Articles) == 0 {
		return
	}
	t.mu.Lock()
	t.slugSet[result.Query.RegionSlug] = struct{}{}
	t.mu.Unlock()
}

func (t *activeTracker) slugs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.slugSet))
	for s := range t.slugSet {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// runPhase dispatches queries through a bounded pending queue for
// backpressure, drained by a conc/pool worker set sized to
// cfg.GlobalInFlight, each dispatch
// additionally gated by a per-global and per-provider
// golang.org/x/sync/semaphore.Weighted. An errgroup ties the producer
// and the worker pool together so a cancelled context unwinds both
// cleanly. tracker may be nil when phase 2 has no further active-region
// computation to perform.
func (e *Executor) runPhase(ctx context.Context, queries []types.Query, marked map[string]struct{}, tracker *activeTracker) (dispatched, skipped int) {
	pending := make(chan types.Query, e.cfg.PendingQueueCap)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(pending)
		for _, q := range queries {
			if _, done := marked[q.Fingerprint]; done {
				skipped++
				continue
			}
			select {
			case pending <- q:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})

	var dispatchedCount int
	var countMu sync.Mutex

	workers := pool.New().WithContext(groupCtx)
	for i := int64(0); i < e.cfg.GlobalInFlight; i++ {
		workers.Go(func(workerCtx context.Context) error {
			for {
				select {
				case q, ok := <-pending:
					if !ok {
						return nil
					}
					e.dispatch(workerCtx, q, tracker)
					countMu.Lock()
					dispatchedCount++
					countMu.Unlock()
					e.status.ReportDispatched(1)
				case <-workerCtx.Done():
					return nil
				}
			}
		})
	}

	_ = workers.Wait()
	_ = group.Wait()

	return dispatchedCount, skipped
}

// dispatch runs one query through its provider's Scheduler, marks the
// checkpoint, records the result for active-region computation, and
// feeds the consumer pipeline/sink/collector. Never raises — it mirrors
// the Scheduler's never-raise contract one layer up.
func (e *Executor) dispatch(ctx context.Context, q types.Query, tracker *activeTracker) {
	sched, ok := e.schedulers[q.ProviderHint]
	if !ok {
		e.logger.Error("no scheduler registered for provider hint", "provider_hint", q.ProviderHint)
		return
	}

	if err := e.globalSem.Acquire(ctx, 1); err != nil {
		return
	}
	defer e.globalSem.Release(1)

	if sem, ok := e.providerSem[q.ProviderHint]; ok {
		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer sem.Release(1)
	}

	start := time.Now()
	result := sched.Execute(ctx, q)
	e.metrics.Observe(result, time.Since(start).Seconds())

	if tracker != nil {
		tracker.observe(result)
	}

	if result.Outcome.IsTerminal() {
		if err := e.store.Mark(ctx, q.Fingerprint); err != nil {
			e.logger.Error("checkpoint mark failed", "fingerprint", q.Fingerprint, "error", err)
			e.metrics.RecordCheckpointError()
		} else {
			e.metrics.RecordCheckpointWrite()
		}
	}
	e.status.ReportCompleted(1)

	e.applyMaxArticles(&result)

	if e.pipeline != nil {
		processed, err := e.pipeline.Process(&result)
		if err != nil {
			e.logger.Error("consumer pipeline error", "error", err, "fingerprint", q.Fingerprint)
			return
		}
		if processed == nil {
			return
		}
		result = *processed
	}

	if e.sink != nil {
		if err := e.sink.Write(ctx, result); err != nil {
			e.logger.Error("sink write failed", "error", err, "fingerprint", q.Fingerprint)
		}
	}
	if e.collector != nil {
		e.collector.Collect(result)
	}
}

// applyMaxArticles enforces the consumer/max-articles config cap across
// Phase 1 and Phase 2 combined by truncating each result's articles once
// the running total would exceed the configured limit.
func (e *Executor) applyMaxArticles(result *types.QueryResult) {
	if e.cfg.MaxArticles <= 0 || len(result.Articles) == 0 {
		return
	}
	e.articlesMu.Lock()
	defer e.articlesMu.Unlock()

	remaining := e.cfg.MaxArticles - e.articlesTotal
	if remaining <= 0 {
		result.Articles = nil
		return
	}
	if len(result.Articles) > remaining {
		result.Articles = result.Articles[:remaining]
	}
	e.articlesTotal += len(result.Articles)
}
