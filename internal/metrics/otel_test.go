package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledExposesPrometheusMetrics(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: true,
		// No OTLP endpoint; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()
	if rec == nil || handler == nil {
		t.Fatalf("expected recorder and handler when enabled")
	}

	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordCycle(time.Millisecond, nil)
	rec.RecordCycle(time.Millisecond, errors.New("boom"))
	rec.RecordCommand("scoreboard", time.Millisecond, nil)
	rec.RecordArtifacts("health", 2)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"sync_cycles_total", "rcon_commands_total", "overlay_artifacts_written_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in scrape output", name)
		}
	}
}

func TestSetupPropagatesReaderFactoryError(t *testing.T) {
	orig := promReaderFactory
	defer func() { promReaderFactory = orig }()
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("no registry")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected setup error")
	}
}
