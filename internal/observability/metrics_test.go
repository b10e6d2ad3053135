package observability

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AIDMI-DataHub/heatscan/internal/config"
	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

func TestMetricsObserveUpdatesCounters(t *testing.T) {
	m := NewMetrics()
	m.Observe(types.QueryResult{Outcome: types.OutcomeOK, ProviderName: "google", Articles: []types.ArticleRef{{Title: "a"}}}, 0.25)
	m.Observe(types.QueryResult{Outcome: types.OutcomeSkippedBudget, ProviderName: "newsdata"}, 0.0)
	m.Observe(types.QueryResult{Outcome: types.OutcomeFailedPermanent, ProviderName: "gnews"}, 1.0)

	if m.QueriesDispatched.Load() != 3 {
		t.Fatalf("expected 3 dispatched, got %d", m.QueriesDispatched.Load())
	}
	if m.QueriesOK.Load() != 1 {
		t.Fatalf("expected 1 ok, got %d", m.QueriesOK.Load())
	}
	if m.QueriesSkipped.Load() != 1 {
		t.Fatalf("expected 1 skipped, got %d", m.QueriesSkipped.Load())
	}
	if m.QueriesFailed.Load() != 1 {
		t.Fatalf("expected 1 failed, got %d", m.QueriesFailed.Load())
	}
	if m.ArticlesCollected.Load() != 1 {
		t.Fatalf("expected 1 article collected, got %d", m.ArticlesCollected.Load())
	}
}

func TestMetricsLatencyPercentilesEmptyIsZero(t *testing.T) {
	m := NewMetrics()
	p50, p90, p99 := m.LatencyPercentiles()
	if p50 != 0 || p90 != 0 || p99 != 0 {
		t.Fatalf("expected zero percentiles with no observations, got %v %v %v", p50, p90, p99)
	}
}

func TestMetricsServeHTTPExposesPrometheusFormat(t *testing.T) {
	m := NewMetrics()
	m.Observe(types.QueryResult{Outcome: types.OutcomeOK, ProviderName: "google"}, 0.1)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "heatscan_queries_dispatched_total 1") {
		t.Fatalf("expected dispatched counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "heatscan_dispatch_latency_seconds") {
		t.Fatalf("expected latency summary in output, got:\n%s", body)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "verbose"})
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestNewLoggerDefaultsToTextStderr(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLoggerSupportsJSON(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Format: "json", Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
