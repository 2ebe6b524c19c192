package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

// NewBufferLogger returns an info-level text logger writing to the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger(slog.LevelInfo)
}

// NewDebugLogger is NewBufferLogger at debug level, for per-command and per-team records.
func NewDebugLogger() (*slog.Logger, *bytes.Buffer) {
	return newBufferLogger(slog.LevelDebug)
}

func newBufferLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

// ShutdownSpy stands in for the telemetry shutdown hook and counts calls.
type ShutdownSpy struct {
	Err error

	mu    sync.Mutex
	calls int
}

func (s *ShutdownSpy) Shutdown(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.Err
}

// Calls returns how many times Shutdown ran.
func (s *ShutdownSpy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// NewRecorderWithShutdown returns an in-memory recorder and a spy for its shutdown hook.
func NewRecorderWithShutdown() (*metrics.Recorder, *ShutdownSpy) {
	return metrics.NewRecorder(), &ShutdownSpy{}
}
