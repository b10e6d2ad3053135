package heatscan

import (
	"testing"
	"time"
)

func TestOptionsMutateConfig(t *testing.T) {
	s := New(
		WithRegions("rajasthan", "gujarat"),
		WithLanguages("hi", "en"),
		WithDeadline(45*time.Minute),
		WithMaxArticles(500),
		WithOutput("/tmp/heatscan-out"),
		WithGoogleCredentials("key", "cx"),
		WithNewsdataCredentials("nd-key"),
		WithGNewsCredentials("gn-key"),
		WithVerbose(),
	)

	if len(s.cfg.Run.Regions) != 2 || s.cfg.Run.Regions[0] != "rajasthan" {
		t.Fatalf("unexpected regions: %+v", s.cfg.Run.Regions)
	}
	if len(s.cfg.Run.Languages) != 2 {
		t.Fatalf("unexpected languages: %+v", s.cfg.Run.Languages)
	}
	if s.cfg.Run.Deadline != 45*time.Minute {
		t.Fatalf("unexpected deadline: %v", s.cfg.Run.Deadline)
	}
	if s.cfg.Run.MaxArticles != 500 {
		t.Fatalf("unexpected max articles: %d", s.cfg.Run.MaxArticles)
	}
	if s.cfg.Consumer.OutputPath != "/tmp/heatscan-out" {
		t.Fatalf("unexpected output path: %s", s.cfg.Consumer.OutputPath)
	}
	if !s.cfg.Providers.Google.Enabled || s.cfg.Providers.Google.APIKey != "key" || s.cfg.Providers.Google.SearchEngineID != "cx" {
		t.Fatalf("google provider not configured: %+v", s.cfg.Providers.Google)
	}
	if !s.cfg.Providers.Newsdata.Enabled || s.cfg.Providers.Newsdata.APIKey != "nd-key" {
		t.Fatalf("newsdata provider not configured: %+v", s.cfg.Providers.Newsdata)
	}
	if !s.cfg.Providers.GNews.Enabled || s.cfg.Providers.GNews.APIKey != "gn-key" {
		t.Fatalf("gnews provider not configured: %+v", s.cfg.Providers.GNews)
	}
	if s.cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug logging, got %s", s.cfg.Logging.Level)
	}
}

func TestNewWithNoOptionsUsesDefaults(t *testing.T) {
	s := New()
	if s.cfg.Run.Deadline == 0 {
		t.Fatal("expected default deadline to be set")
	}
	if s.logger == nil {
		t.Fatal("expected default logger to be non-nil")
	}
}

func TestBuildSchedulersOnlyRegistersEnabledProviders(t *testing.T) {
	s := New(WithGoogleCredentials("key", "cx"))
	schedulers := s.buildSchedulers()

	if _, ok := schedulers["google"]; !ok {
		t.Fatal("expected google scheduler to be registered")
	}
	if len(schedulers) != 1 {
		t.Fatalf("expected exactly 1 scheduler, got %d: %+v", len(schedulers), schedulers)
	}
}
