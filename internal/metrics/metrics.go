package metrics

import (
	"sync"
	"time"
)

type commandStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about command round trips
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*commandStats
	cycles    int
	failures  int
	artifacts map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*commandStats),
		artifacts: make(map[string]int),
		otel:      otel,
	}
}

// RecordCommand increments counters for one command round trip and stores its latency.
func (r *Recorder) RecordCommand(command string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[command]
	if !ok {
		stats = &commandStats{}
		r.stats[command] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCommand(command, duration, err)
	}
}

// RecordCycle tracks one reconciliation cycle.
func (r *Recorder) RecordCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCycle(duration, err)
	}
}

// RecordArtifacts counts files written for the overlay, by artifact kind.
func (r *Recorder) RecordArtifacts(artifact string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.artifacts[artifact] += n
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordArtifacts(artifact, n)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// CommandCalls returns the total round trips recorded for a command.
func (r *Recorder) CommandCalls(command string) int {
	return r.Snapshot(command).Calls
}

// CommandErrors returns the failed round trips recorded for a command.
func (r *Recorder) CommandErrors(command string) int {
	return r.Snapshot(command).Errors
}

// LastCallLatency returns the last recorded latency for a command.
func (r *Recorder) LastCallLatency(command string) time.Duration {
	return r.Snapshot(command).LastCallLatency
}

// Cycles returns the number of cycles run and how many of them failed.
func (r *Recorder) Cycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.failures
}

// Artifacts returns how many files of the given kind were written.
func (r *Recorder) Artifacts(artifact string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifacts[artifact]
}

// Snapshot is a copy of the stats recorded for one command.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(command string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[command]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}
