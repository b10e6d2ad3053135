package statusapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/AIDMI-DataHub/heatscan/internal/executor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleHealthReturnsOK(t *testing.T) {
	s := NewServer(":0", nil, nil, testLogger())
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleStatusWithoutProviderReturnsUnavailable(t *testing.T) {
	s := NewServer(":0", nil, nil, testLogger())
	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != 503 {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleStatusReturnsSnapshot(t *testing.T) {
	status := executor.NewAtomicStatus()
	status.ReportPhase("phase1_state_sweep")
	status.ReportDispatched(5)

	s := NewServer(":0", status, nil, testLogger())
	req := httptest.NewRequest("GET", "/status", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap executor.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snap.Phase != "phase1_state_sweep" || snap.Dispatched != 5 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestMetricsRouteOmittedWhenNil(t *testing.T) {
	s := NewServer(":0", nil, nil, testLogger())
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404 when no metrics handler wired, got %d", rec.Code)
	}
}
