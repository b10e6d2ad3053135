// Command heatscan drives the batch query-orchestration pipeline that
// enumerates heat-related news queries across Indian states, union
// territories, and districts in 14 regional languages, dispatching them
// through rate-limited, circuit-broken provider adapters.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

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
	"github.com/AIDMI-DataHub/heatscan/internal/statusapi"
	"github.com/AIDMI-DataHub/heatscan/internal/termdict"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "heatscan",
		Short: "heatscan — heat-event news query orchestrator for India",
		Long: `heatscan enumerates and dispatches heat-related news queries across
Indian states, union territories, and districts in 14 regional languages,
across three news providers, with rate limiting, circuit breaking, and
checkpoint-based resume.`,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(resumeCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a fresh collection, clearing any prior checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeatscan(resumeFromCheckpoint(false))
		},
	}
}

func resumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a collection from the existing checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeatscan(resumeFromCheckpoint(true))
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("heatscan %s\n", config.Version)
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

func statusCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query a running heatscan process's status endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRemoteStatus(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "http://localhost:8090", "status API base address")
	return cmd
}

func printRemoteStatus(addr string) error {
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("request status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read status response: %w", err)
	}
	fmt.Println(string(body))
	return nil
}

type resumeFromCheckpoint bool

// runHeatscan is the shared composition root for "run" and "resume":
// load and validate config, build the full dependency graph, drive one
// Executor.Run, and print a summary report.
func runHeatscan(resume resumeFromCheckpoint) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogue, err := geocatalog.Load(geocatalog.DefaultSeed())
	if err != nil {
		return fmt.Errorf("load geo catalogue: %w", err)
	}
	dict, err := termdict.Load(termdict.DefaultSeed())
	if err != nil {
		return fmt.Errorf("load term dictionary: %w", err)
	}
	generator := querygen.New(dict, querygen.DefaultLimits())

	store, err := buildCheckpointStore(cfg.Checkpoint, logger)
	if err != nil {
		return fmt.Errorf("build checkpoint store: %w", err)
	}
	defer store.Close()

	if !resume {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clear checkpoint: %w", err)
		}
		logger.Info("starting fresh run, checkpoint cleared")
	} else {
		logger.Info("resuming from existing checkpoint")
	}

	metrics := observability.NewMetrics()
	schedulers := buildSchedulers(cfg.Providers, cfg.Breaker, metrics, logger)

	pipeline := consumer.NewPipeline(logger)
	if cfg.Run.MaxArticles > 0 {
		pipeline.Use(&consumer.MaxArticlesMiddleware{Limit: cfg.Run.MaxArticles})
	}
	pipeline.Use(consumer.DedupArticlesMiddleware{})
	pipeline.Use(consumer.DropEmptyMiddleware{})

	if err := os.MkdirAll(cfg.Consumer.OutputPath, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	sink, err := consumer.NewFileSink(afero.NewOsFs(), filepath.Join(cfg.Consumer.OutputPath, "results.ndjson"))
	if err != nil {
		return fmt.Errorf("build output sink: %w", err)
	}
	defer sink.Close()

	status := executor.NewAtomicStatus()

	var statusServer *statusapi.Server
	if cfg.StatusAPI.Enabled {
		var metricsHandler statusapi.MetricsHandler
		if cfg.Metrics.Enabled {
			metricsHandler = metrics
		}
		statusServer = statusapi.NewServer(cfg.StatusAPI.Addr, status, metricsHandler, logger)
		statusServer.Start()
		defer func() {
			_ = statusapi.WaitForShutdown(statusServer, 5*time.Second)
		}()
	}

	ex := executor.New(
		catalogue,
		generator,
		schedulers,
		store,
		pipeline,
		sink,
		nil,
		executor.Config{
			GlobalInFlight:  cfg.Executor.GlobalInFlight,
			PendingQueueCap: cfg.Executor.PendingQueueCap,
			Regions:         cfg.Run.Regions,
			Languages:       cfg.Run.Languages,
			MaxArticles:     cfg.Run.MaxArticles,
			Deadline:        cfg.Run.Deadline,
			GraceWindow:     cfg.Run.GraceWindow,
			StatePhaseFrac:  cfg.Run.StatePhaseFrac,
			ProviderLimits: map[types.ProviderHint]int64{
				types.ProviderGoogle:   int64(cfg.Providers.Google.Concurrency),
				types.ProviderNewsdata: int64(cfg.Providers.Newsdata.Concurrency),
				types.ProviderGNews:    int64(cfg.Providers.GNews.Concurrency),
			},
		},
		status,
		metrics,
		logger,
	)

	start := time.Now()
	report, err := ex.Run(ctx)
	if err != nil {
		return fmt.Errorf("run executor: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("collection complete",
		"elapsed", elapsed,
		"phase1_dispatched", report.Phase1Dispatched,
		"phase1_skipped", report.Phase1Skipped,
		"active_regions", len(report.ActiveRegions),
		"phase2_ran", report.Phase2Ran,
		"phase2_dispatched", report.Phase2Dispatched,
		"phase2_skipped", report.Phase2Skipped,
	)

	fmt.Printf("heatscan run complete in %s\n", elapsed.Round(time.Second))
	fmt.Printf("  phase 1: %d dispatched, %d skipped (checkpoint replay)\n", report.Phase1Dispatched, report.Phase1Skipped)
	fmt.Printf("  active regions: %d\n", len(report.ActiveRegions))
	if report.Phase2Ran {
		fmt.Printf("  phase 2: %d dispatched, %d skipped (checkpoint replay)\n", report.Phase2Dispatched, report.Phase2Skipped)
	} else {
		fmt.Println("  phase 2: skipped (no active regions or phase 1 aborted)")
	}
	fmt.Printf("  output: %s\n", cfg.Consumer.OutputPath)

	if !resume {
		if err := store.Clear(ctx); err != nil {
			logger.Warn("checkpoint clear on clean exit failed", "error", err)
		}
	}

	return nil
}

func buildCheckpointStore(cfg config.CheckpointConfig, logger *slog.Logger) (checkpoint.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return checkpoint.NewFileStore(afero.NewOsFs(), cfg.FilePath, cfg.CompactionInterval)
	case "mongo":
		return checkpoint.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Backend)
	}
}

// buildSchedulers wires one Scheduler per enabled provider, each with
// its own Rate Governor and Circuit Breaker, preserving the fixed
// google -> newsdata -> gnews registration the rest of the core relies
// on via types.ProviderOrder. Each breaker's trip hook feeds metrics so
// the /metrics endpoint reflects real CLOSED->OPEN transitions.
func buildSchedulers(cfg config.ProvidersConfig, brkCfg config.BreakerConfig, metrics *observability.Metrics, logger *slog.Logger) map[types.ProviderHint]*scheduler.Scheduler {
	registry := provider.NewRegistry()
	if cfg.Google.Enabled {
		registry.Register(types.ProviderGoogle, provider.NewGoogleCSE(cfg.Google.APIKey, cfg.Google.SearchEngineID, 0))
	}
	if cfg.Newsdata.Enabled {
		registry.Register(types.ProviderNewsdata, provider.NewNewsData(cfg.Newsdata.APIKey, 0))
	}
	if cfg.GNews.Enabled {
		registry.Register(types.ProviderGNews, provider.NewGNews(cfg.GNews.APIKey, 0))
	}

	providerConfigs := map[types.ProviderHint]config.ProviderConfig{
		types.ProviderGoogle:   cfg.Google,
		types.ProviderNewsdata: cfg.Newsdata,
		types.ProviderGNews:    cfg.GNews,
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
			FailureThreshold: brkCfg.FailureThreshold,
			CoolDown:         brkCfg.CoolDown,
			OnTrip:           metrics.RecordBreakerTrip,
		})
		out[hint] = scheduler.New(p, gov, brk, scheduler.Config{
			MaxRetries:     pc.MaxRetries,
			RetryBaseDelay: pc.RetryBaseDelay,
		}, logger)
	}
	return out
}
