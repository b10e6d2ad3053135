package config

import "fmt"

// Validate checks the configuration for invalid values, grounded on the
// teacher's internal/config/validate.go per-field range checks.
func Validate(cfg *Config) error {
	if cfg.Run.Deadline <= 0 {
		return fmt.Errorf("run.deadline must be > 0")
	}
	if cfg.Run.StatePhaseFrac <= 0 || cfg.Run.StatePhaseFrac >= 1 {
		return fmt.Errorf("run.state_phase_frac must be in (0, 1), got %f", cfg.Run.StatePhaseFrac)
	}
	if cfg.Run.DayBoundary != "exclude" && cfg.Run.DayBoundary != "include" {
		return fmt.Errorf("run.day_boundary must be 'exclude' or 'include', got %q", cfg.Run.DayBoundary)
	}
	if cfg.Run.MaxArticles < 0 {
		return fmt.Errorf("run.max_articles must be >= 0, got %d", cfg.Run.MaxArticles)
	}

	if err := validateProvider("providers.google", cfg.Providers.Google); err != nil {
		return err
	}
	if cfg.Providers.Google.Enabled && cfg.Providers.Google.SearchEngineID == "" {
		return fmt.Errorf("providers.google.search_engine_id is required when enabled")
	}
	if err := validateProvider("providers.newsdata", cfg.Providers.Newsdata); err != nil {
		return err
	}
	if err := validateProvider("providers.gnews", cfg.Providers.GNews); err != nil {
		return err
	}

	if cfg.Executor.GlobalInFlight < 1 {
		return fmt.Errorf("executor.global_in_flight must be >= 1, got %d", cfg.Executor.GlobalInFlight)
	}
	if cfg.Executor.PendingQueueCap < 1 {
		return fmt.Errorf("executor.pending_queue_cap must be >= 1, got %d", cfg.Executor.PendingQueueCap)
	}

	if cfg.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("breaker.failure_threshold must be >= 1, got %d", cfg.Breaker.FailureThreshold)
	}
	if cfg.Breaker.CoolDown <= 0 {
		return fmt.Errorf("breaker.cool_down must be > 0")
	}

	validBackends := map[string]bool{"file": true, "mongo": true}
	if !validBackends[cfg.Checkpoint.Backend] {
		return fmt.Errorf("checkpoint.backend must be 'file' or 'mongo', got %q", cfg.Checkpoint.Backend)
	}
	if cfg.Checkpoint.Backend == "file" && cfg.Checkpoint.FilePath == "" {
		return fmt.Errorf("checkpoint.file_path is required when backend is 'file'")
	}
	if cfg.Checkpoint.Backend == "mongo" && cfg.Checkpoint.MongoURI == "" {
		return fmt.Errorf("checkpoint.mongo_uri is required when backend is 'mongo'")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.StatusAPI.Enabled && cfg.StatusAPI.Addr == "" {
		return fmt.Errorf("status_api.addr is required when status_api.enabled is true")
	}

	return nil
}

func validateProvider(name string, p ProviderConfig) error {
	if !p.Enabled {
		return nil
	}
	if p.APIKey == "" {
		return fmt.Errorf("%s.api_key is required when enabled", name)
	}
	if p.Concurrency < 1 {
		return fmt.Errorf("%s.concurrency must be >= 1, got %d", name, p.Concurrency)
	}
	if p.DailyLimit < 0 {
		return fmt.Errorf("%s.daily_limit must be >= 0, got %d", name, p.DailyLimit)
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("%s.max_retries must be >= 0, got %d", name, p.MaxRetries)
	}
	return nil
}
