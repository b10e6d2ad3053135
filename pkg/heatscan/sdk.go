// Package heatscan provides a public SDK for embedding the heat-event
// news query orchestrator as a library rather than driving it through
// the heatscan CLI.
//
// Example usage:
//
//	scanner := heatscan.New(
//	    heatscan.WithRegions("rajasthan", "uttar-pradesh"),
//	    heatscan.WithLanguages("hi", "en"),
//	    heatscan.WithDeadline(30*time.Minute),
//	    heatscan.WithOutput("./output"),
//	)
//
//	report, err := scanner.Run(context.Background())
//
// Scanner is a functional-options constructor wrapping DefaultConfig
// with a single blocking Run call, since a heatscan collection is one
// bounded batch job rather than a long-lived session a caller starts,
// pauses, and resumes interactively.
package heatscan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/AIDMI-DataHub/heatscan/internal/breaker"
	"github.com/AIDMI-DataHub/heatscan/internal/checkpoint"
	"github.com/AIDMI-DataHub/heatscan/internal/config"
	"github.com/AIDMI-DataHub/heatscan/internal/consumer"
	"github.com/AIDMI-DataHub/heatscan/internal/executor"
	"github.com/AIDMI-DataHub/heatscan/internal/geocatalog"
	"github.com/AIDMI-DataHub/heatscan/internal/observability"
	"github.com/AIDMI-DataHub/heatscan/internal/provider"
	"github.com/AIDMI-DataHub/heatscan/internal/querygen"
	"github.com/AIDMI-DataHub/heatscan/internal/ratelimit"
	"github.com/AIDMI-DataHub/heatscan/internal/scheduler"
	"github.com/AIDMI-DataHub/heatscan/internal/termdict"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Report re-exports executor.Report so SDK callers don't need to import
// the internal package to read a run's results.
type Report = executor.Report

// Option configures a Scanner's underlying config.Config.
type Option func(*config.Config)

// WithRegions restricts the run to the given region slugs.
func WithRegions(slugs ...string) Option {
	return func(c *config.Config) { c.Run.Regions = slugs }
}

// WithLanguages restricts the run to the given BCP-47 language codes.
func WithLanguages(codes ...string) Option {
	return func(c *config.Config) { c.Run.Languages = codes }
}

// WithDeadline sets the overall wall-clock budget for the run.
func WithDeadline(d time.Duration) Option {
	return func(c *config.Config) { c.Run.Deadline = d }
}

// WithMaxArticles caps the total number of articles carried forward
// across Phase 1 and Phase 2 combined. 0 means unbounded.
func WithMaxArticles(n int) Option {
	return func(c *config.Config) { c.Run.MaxArticles = n }
}

// WithOutput sets the directory results are written to as NDJSON.
func WithOutput(path string) Option {
	return func(c *config.Config) { c.Consumer.OutputPath = path }
}

// WithGoogleCredentials enables the Google CSE provider.
func WithGoogleCredentials(apiKey, searchEngineID string) Option {
	return func(c *config.Config) {
		c.Providers.Google.Enabled = true
		c.Providers.Google.APIKey = apiKey
		c.Providers.Google.SearchEngineID = searchEngineID
	}
}

// WithNewsdataCredentials enables the newsdata.io provider.
func WithNewsdataCredentials(apiKey string) Option {
	return func(c *config.Config) {
		c.Providers.Newsdata.Enabled = true
		c.Providers.Newsdata.APIKey = apiKey
	}
}

// WithGNewsCredentials enables the gnews.io provider.
func WithGNewsCredentials(apiKey string) Option {
	return func(c *config.Config) {
		c.Providers.GNews.Enabled = true
		c.Providers.GNews.APIKey = apiKey
	}
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// Scanner is the high-level API for embedding heatscan as a library.
type Scanner struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Metrics returns the Scanner's operational counters. Safe to read
// concurrently with a Run in progress.
func (s *Scanner) Metrics() *observability.Metrics { return s.metrics }

// New builds a Scanner from DefaultConfig plus the given options.
func New(opts ...Option) *Scanner {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &Scanner{cfg: cfg, logger: logger, metrics: observability.NewMetrics()}
}

// Run builds the full dependency graph and drives one blocking
// collection run to completion (or until ctx is cancelled / the
// configured deadline expires).
func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	if err := config.Validate(s.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	catalogue, err := geocatalog.Load(geocatalog.DefaultSeed())
	if err != nil {
		return nil, fmt.Errorf("load geo catalogue: %w", err)
	}
	dict, err := termdict.Load(termdict.DefaultSeed())
	if err != nil {
		return nil, fmt.Errorf("load term dictionary: %w", err)
	}
	generator := querygen.New(dict, querygen.DefaultLimits())

	store, err := s.buildCheckpointStore()
	if err != nil {
		return nil, fmt.Errorf("build checkpoint store: %w", err)
	}
	defer store.Close()

	schedulers := s.buildSchedulers()

	pipeline := consumer.NewPipeline(s.logger)
	if s.cfg.Run.MaxArticles > 0 {
		pipeline.Use(&consumer.MaxArticlesMiddleware{Limit: s.cfg.Run.MaxArticles})
	}
	pipeline.Use(consumer.DedupArticlesMiddleware{})
	pipeline.Use(consumer.DropEmptyMiddleware{})

	if err := os.MkdirAll(s.cfg.Consumer.OutputPath, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	sink, err := consumer.NewFileSink(afero.NewOsFs(), filepath.Join(s.cfg.Consumer.OutputPath, "results.ndjson"))
	if err != nil {
		return nil, fmt.Errorf("build output sink: %w", err)
	}
	defer sink.Close()

	ex := executor.New(
		catalogue,
		generator,
		schedulers,
		store,
		pipeline,
		sink,
		nil,
		executor.Config{
			GlobalInFlight:  s.cfg.Executor.GlobalInFlight,
			PendingQueueCap: s.cfg.Executor.PendingQueueCap,
			Regions:         s.cfg.Run.Regions,
			Languages:       s.cfg.Run.Languages,
			MaxArticles:     s.cfg.Run.MaxArticles,
			Deadline:        s.cfg.Run.Deadline,
			GraceWindow:     s.cfg.Run.GraceWindow,
			StatePhaseFrac:  s.cfg.Run.StatePhaseFrac,
			ProviderLimits: map[types.ProviderHint]int64{
				types.ProviderGoogle:   int64(s.cfg.Providers.Google.Concurrency),
				types.ProviderNewsdata: int64(s.cfg.Providers.Newsdata.Concurrency),
				types.ProviderGNews:    int64(s.cfg.Providers.GNews.Concurrency),
			},
		},
		nil,
		s.metrics,
		s.logger,
	)

	return ex.Run(ctx)
}

func (s *Scanner) buildCheckpointStore() (checkpoint.Store, error) {
	switch s.cfg.Checkpoint.Backend {
	case "", "file":
		return checkpoint.NewFileStore(afero.NewOsFs(), s.cfg.Checkpoint.FilePath, s.cfg.Checkpoint.CompactionInterval)
	case "mongo":
		return checkpoint.NewMongoStore(s.cfg.Checkpoint.MongoURI, s.cfg.Checkpoint.MongoDatabase, s.cfg.Checkpoint.MongoCollection, s.logger)
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", s.cfg.Checkpoint.Backend)
	}
}

func (s *Scanner) buildSchedulers() map[types.ProviderHint]*scheduler.Scheduler {
	registry := provider.NewRegistry()
	if s.cfg.Providers.Google.Enabled {
		registry.Register(types.ProviderGoogle, provider.NewGoogleCSE(s.cfg.Providers.Google.APIKey, s.cfg.Providers.Google.SearchEngineID, 0))
	}
	if s.cfg.Providers.Newsdata.Enabled {
		registry.Register(types.ProviderNewsdata, provider.NewNewsData(s.cfg.Providers.Newsdata.APIKey, 0))
	}
	if s.cfg.Providers.GNews.Enabled {
		registry.Register(types.ProviderGNews, provider.NewGNews(s.cfg.Providers.GNews.APIKey, 0))
	}

	providerConfigs := map[types.ProviderHint]config.ProviderConfig{
		types.ProviderGoogle:   s.cfg.Providers.Google,
		types.ProviderNewsdata: s.cfg.Providers.Newsdata,
		types.ProviderGNews:    s.cfg.Providers.GNews,
	}

	out := make(map[types.ProviderHint]*scheduler.Scheduler)
	for _, hint := range types.ProviderOrder {
		p, ok := registry.Get(hint)
		if !ok {
			continue
		}
		pc := providerConfigs[hint]
		gov := ratelimit.NewGovernor(ratelimit.Config{
			PerSecondInterval: pc.PerSecondInterval,
			JitterFraction:    pc.JitterFraction,
			WindowMax:         pc.WindowMax,
			WindowSeconds:     pc.WindowSeconds,
			DailyLimit:        pc.DailyLimit,
		})
		brk := breaker.New(breaker.Config{
			FailureThreshold: s.cfg.Breaker.FailureThreshold,
			CoolDown:         s.cfg.Breaker.CoolDown,
			OnTrip:           s.metrics.RecordBreakerTrip,
		})
		out[hint] = scheduler.New(p, gov, brk, scheduler.Config{
			MaxRetries:     pc.MaxRetries,
			RetryBaseDelay: pc.RetryBaseDelay,
		}, s.logger)
	}
	return out
}
