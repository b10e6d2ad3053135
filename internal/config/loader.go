package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment. No CLI flags are
// bound. Priority (highest to lowest): env vars > config file >
// defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix("HEATSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("heatscan")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".heatscan"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	return Load(path)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("run.deadline", cfg.Run.Deadline)
	v.SetDefault("run.grace_window", cfg.Run.GraceWindow)
	v.SetDefault("run.state_phase_frac", cfg.Run.StatePhaseFrac)
	v.SetDefault("run.day_boundary", cfg.Run.DayBoundary)

	setProviderDefaults(v, "providers.google", cfg.Providers.Google)
	setProviderDefaults(v, "providers.newsdata", cfg.Providers.Newsdata)
	setProviderDefaults(v, "providers.gnews", cfg.Providers.GNews)

	v.SetDefault("executor.global_in_flight", cfg.Executor.GlobalInFlight)
	v.SetDefault("executor.pending_queue_cap", cfg.Executor.PendingQueueCap)

	v.SetDefault("breaker.failure_threshold", cfg.Breaker.FailureThreshold)
	v.SetDefault("breaker.cool_down", cfg.Breaker.CoolDown)

	v.SetDefault("checkpoint.backend", cfg.Checkpoint.Backend)
	v.SetDefault("checkpoint.file_path", cfg.Checkpoint.FilePath)
	v.SetDefault("checkpoint.compaction_interval", cfg.Checkpoint.CompactionInterval)
	v.SetDefault("checkpoint.mongo_database", cfg.Checkpoint.MongoDatabase)
	v.SetDefault("checkpoint.mongo_collection", cfg.Checkpoint.MongoCollection)

	v.SetDefault("consumer.output_path", cfg.Consumer.OutputPath)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)

	v.SetDefault("status_api.enabled", cfg.StatusAPI.Enabled)
	v.SetDefault("status_api.addr", cfg.StatusAPI.Addr)
}

func setProviderDefaults(v *viper.Viper, prefix string, p ProviderConfig) {
	v.SetDefault(prefix+".concurrency", p.Concurrency)
	v.SetDefault(prefix+".per_second_interval", p.PerSecondInterval)
	v.SetDefault(prefix+".jitter_fraction", p.JitterFraction)
	v.SetDefault(prefix+".window_max", p.WindowMax)
	v.SetDefault(prefix+".window_seconds", p.WindowSeconds)
	v.SetDefault(prefix+".daily_limit", p.DailyLimit)
	v.SetDefault(prefix+".max_retries", p.MaxRetries)
	v.SetDefault(prefix+".retry_base_delay", p.RetryBaseDelay)
}
