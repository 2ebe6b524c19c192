package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
	"github.com/preston-bernstein/ktowers-overlay/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected request id from header in context, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	req := httptest.NewRequest(http.MethodGet, "/overlay", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(handler, req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	if got := rec.Snapshot("http").Calls; got != 0 {
		t.Fatalf("expected no command metrics recorded, got %d", got)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected generated request id")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("X-Request-ID", "bad id")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized X-Request-ID header, got %q", got)
	}
}

func TestLoggingMiddlewareLogsCompletion(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := LoggingMiddleware(logger, nil, next)

	req := httptest.NewRequest(http.MethodGet, "/overlay", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	testutil.ServeRequest(handler, req)
	out := buf.String()
	if !strings.Contains(out, "request complete") || !strings.Contains(out, "client_ip=198.51.100.1") {
		t.Fatalf("expected completion log with client ip, got %q", out)
	}

	buf.Reset()
	testutil.Serve(handler, http.MethodGet, "/health", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected probe requests logged below info, got %q", buf.String())
	}
}

func TestLoggingMiddlewareNilLoggerUsesDefault(t *testing.T) {
	handler := LoggingMiddleware(nil, nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := testutil.Serve(handler, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/health", want: "/health"},
		{in: "/ready", want: "/ready"},
		{in: "/status", want: "/status"},
		{in: "/overlay", want: "/overlay"},
		{in: "/wp-admin/login.php", want: "other"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/overlay", nil)
		handler.ServeHTTP(rr, req)
	}
}
