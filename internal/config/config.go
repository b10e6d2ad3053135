// Package config defines the layered configuration surface for heatscan:
// one nested struct per subsystem, mapstructure+yaml tags on every
// field, and a DefaultConfig constructor.
package config

import "time"

// Version is set at build time via ldflags, same convention as the
// teacher binary.
var Version = "dev"

// Config is the root configuration for a heatscan run.
type Config struct {
	Run        RunConfig        `mapstructure:"run"        yaml:"run"`
	Providers  ProvidersConfig  `mapstructure:"providers"  yaml:"providers"`
	Executor   ExecutorConfig   `mapstructure:"executor"   yaml:"executor"`
	Breaker    BreakerConfig    `mapstructure:"breaker"    yaml:"breaker"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint" yaml:"checkpoint"`
	Consumer   ConsumerConfig   `mapstructure:"consumer"   yaml:"consumer"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics"    yaml:"metrics"`
	StatusAPI  StatusAPIConfig  `mapstructure:"status_api" yaml:"status_api"`
}

// RunConfig selects the scope and timing of one run.
type RunConfig struct {
	Regions        []string      `mapstructure:"regions"         yaml:"regions"`          // empty = all states/UTs
	Languages      []string      `mapstructure:"languages"       yaml:"languages"`         // empty = all supported
	Categories     []string      `mapstructure:"categories"      yaml:"categories"`        // not read; all categories are always queried
	Deadline       time.Duration `mapstructure:"deadline"        yaml:"deadline"`
	GraceWindow    time.Duration `mapstructure:"grace_window"    yaml:"grace_window"`
	StatePhaseFrac float64       `mapstructure:"state_phase_frac" yaml:"state_phase_frac"` // fraction of the collection window (80% of deadline) given to phase 1
	MaxArticles    int           `mapstructure:"max_articles"    yaml:"max_articles"`       // 0 = unbounded, per consumer middleware
	DayBoundary    string        `mapstructure:"day_boundary"    yaml:"day_boundary"`       // "exclude" (default) or "include"; validated only, no effect on the run
}

// ProviderConfig is one provider's credentials, concurrency override,
// and three-dimensional rate limit.
type ProviderConfig struct {
	Enabled           bool          `mapstructure:"enabled"             yaml:"enabled"`
	APIKey            string        `mapstructure:"api_key"             yaml:"api_key"`
	SearchEngineID    string        `mapstructure:"search_engine_id"    yaml:"search_engine_id"` // google CSE only
	Concurrency       int           `mapstructure:"concurrency"         yaml:"concurrency"`
	PerSecondInterval time.Duration `mapstructure:"per_second_interval" yaml:"per_second_interval"`
	JitterFraction    float64       `mapstructure:"jitter_fraction"     yaml:"jitter_fraction"`
	WindowMax         int           `mapstructure:"window_max"          yaml:"window_max"`
	WindowSeconds     int           `mapstructure:"window_seconds"      yaml:"window_seconds"`
	DailyLimit        int           `mapstructure:"daily_limit"         yaml:"daily_limit"`
	MaxRetries        int           `mapstructure:"max_retries"         yaml:"max_retries"`
	RetryBaseDelay    time.Duration `mapstructure:"retry_base_delay"    yaml:"retry_base_delay"`
}

// ProvidersConfig holds all three provider configurations.
type ProvidersConfig struct {
	Google   ProviderConfig `mapstructure:"google"   yaml:"google"`
	Newsdata ProviderConfig `mapstructure:"newsdata" yaml:"newsdata"`
	GNews    ProviderConfig `mapstructure:"gnews"    yaml:"gnews"`
}

// ExecutorConfig controls the Query Executor's concurrency envelope.
type ExecutorConfig struct {
	GlobalInFlight  int64 `mapstructure:"global_in_flight"  yaml:"global_in_flight"`
	PendingQueueCap int   `mapstructure:"pending_queue_cap" yaml:"pending_queue_cap"`
}

// BreakerConfig controls the circuit breaker shared across providers.
type BreakerConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold" yaml:"failure_threshold"`
	CoolDown         time.Duration `mapstructure:"cool_down"         yaml:"cool_down"`
}

// CheckpointConfig selects and tunes the checkpoint backend.
type CheckpointConfig struct {
	Backend           string        `mapstructure:"backend"             yaml:"backend"` // "file" or "mongo"
	FilePath          string        `mapstructure:"file_path"           yaml:"file_path"`
	CompactionInterval time.Duration `mapstructure:"compaction_interval" yaml:"compaction_interval"`
	MongoURI          string        `mapstructure:"mongo_uri"           yaml:"mongo_uri"`
	MongoDatabase     string        `mapstructure:"mongo_database"      yaml:"mongo_database"`
	MongoCollection   string        `mapstructure:"mongo_collection"    yaml:"mongo_collection"`
}

// ConsumerConfig controls the downstream consumer pipeline.
type ConsumerConfig struct {
	OutputPath     string `mapstructure:"output_path"     yaml:"output_path"`
	RelevanceModel string `mapstructure:"relevance_model" yaml:"relevance_model"` // not read; no relevance tagger is wired into a run
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls the Prometheus text-exposition metrics.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// StatusAPIConfig controls the operational /status and /metrics server.
type StatusAPIConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr"    yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults: every field
// that safely can gets a concrete default so Validate only needs to
// police user overrides. Provider rate-limit defaults match the
// published per-provider table: google ≈1.5 req/s with no window and
// an unbounded daily cap at concurrency 5; newsdata 10 req/s inside a
// 30-per-900s rolling window with a 200/day cap at concurrency 1;
// gnews 1 req/s with no window and a 100/day cap at concurrency 1.
// Jitter is uniform over [0, 0.3*interval) for all three.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Deadline:       6 * time.Hour,
			GraceWindow:    10 * time.Second,
			StatePhaseFrac: 0.8,
			DayBoundary:    "exclude",
		},
		Providers: ProvidersConfig{
			Google: ProviderConfig{
				Concurrency:       5,
				PerSecondInterval: time.Second * 2 / 3, // ~1.5 req/s
				JitterFraction:    0.3,
				WindowMax:         0, // no window
				WindowSeconds:     0,
				DailyLimit:        0, // unbounded
				MaxRetries:        2,
				RetryBaseDelay:    2 * time.Second,
			},
			Newsdata: ProviderConfig{
				Concurrency:       1,
				PerSecondInterval: 100 * time.Millisecond, // 10 req/s
				JitterFraction:    0.3,
				WindowMax:         30,
				WindowSeconds:     900,
				DailyLimit:        200,
				MaxRetries:        2,
				RetryBaseDelay:    2 * time.Second,
			},
			GNews: ProviderConfig{
				Concurrency:       1,
				PerSecondInterval: time.Second, // 1 req/s
				JitterFraction:    0.3,
				WindowMax:         0, // no window
				WindowSeconds:     0,
				DailyLimit:        100,
				MaxRetries:        2,
				RetryBaseDelay:    2 * time.Second,
			},
		},
		Executor: ExecutorConfig{
			GlobalInFlight:  64,
			PendingQueueCap: 1000,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			CoolDown:         60 * time.Second,
		},
		Checkpoint: CheckpointConfig{
			Backend:            "file",
			FilePath:           "./checkpoint.json",
			CompactionInterval: 30 * time.Second,
			MongoDatabase:      "heatscan",
			MongoCollection:    "checkpoints",
		},
		Consumer: ConsumerConfig{
			OutputPath: "./output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		StatusAPI: StatusAPIConfig{
			Enabled: true,
			Addr:    ":8090",
		},
	}
}
