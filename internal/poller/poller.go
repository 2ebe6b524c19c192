package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

const defaultInterval = time.Second

// stopTimeout bounds how long the scheduler waits for a running cycle on stop.
var stopTimeout = 5 * time.Second

// Source produces a fresh world snapshot.
type Source interface {
	Update(ctx context.Context) (domain.Snapshot, error)
}

// SnapshotWriter owns the output tree.
type SnapshotWriter interface {
	WriteSnapshot(snap domain.Snapshot) error
	Purge() error
}

// State is the loop phase.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateStopped State = "stopped"
)

// Poller runs one sync cycle per interval: update the world, then write
// every artifact. Cycles never overlap; an overrunning cycle delays the next
// one. The first failed cycle is fatal and is reported on Fatal.
type Poller struct {
	source   Source
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	scheduler gocron.Scheduler
	ctx       context.Context
	fatal     chan error
	fatalOnce sync.Once
	stopOnce  sync.Once
	halting   sync.WaitGroup
	startMu   sync.Mutex
	started   bool
	stopping  bool

	statusMu sync.RWMutex
	status   Status
	latest   domain.Snapshot
	hasLast  bool
}

// Status describes the recent health of the poller loop.
type Status struct {
	State               State
	Cycles              int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a cycle has completed and none has failed since.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures == 0
}

// New constructs a Poller with sane defaults.
func New(source Source, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		source:   source,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		fatal:    make(chan error, 1),
		status:   Status{State: StateIdle},
	}
}

// Start purges the output tree, then schedules cycles starting immediately.
// Calling Start again is a no-op.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return nil
	}
	if p.source == nil || p.writer == nil {
		return fmt.Errorf("poller: source and writer required")
	}

	if err := p.writer.Purge(); err != nil {
		return fmt.Errorf("purge output: %w", err)
	}

	opts := []gocron.SchedulerOption{gocron.WithStopTimeout(stopTimeout)}
	if p.logger != nil {
		opts = append(opts, gocron.WithLogger(p.logger))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	p.ctx = ctx
	_, err = s.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.runCycle(p.ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeWait),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to create sync job: %w", err)
	}

	p.scheduler = s
	p.started = true
	s.Start()
	logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	return nil
}

// Stop shuts the scheduler down, waiting for a running cycle to finish or
// ctx to end, whichever comes first.
func (p *Poller) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var err error
	p.stopOnce.Do(func() {
		p.startMu.Lock()
		s := p.scheduler
		p.stopping = true
		p.startMu.Unlock()
		p.setState(StateStopped)

		done := make(chan error, 1)
		go func() {
			p.halting.Wait()
			if s == nil {
				done <- nil
				return
			}
			done <- s.Shutdown()
		}()
		select {
		case err = <-done:
			logging.Info(p.logger, "poller stopped")
		case <-ctx.Done():
			err = ctx.Err()
			logging.Warn(p.logger, "poller stop abandoned", slog.String(logging.FieldError, err.Error()))
		}
	})
	return err
}

// Fatal delivers the error of the first failed cycle. No further cycles run
// after it.
func (p *Poller) Fatal() <-chan error {
	return p.fatal
}

func (p *Poller) runCycle(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil || p.halted() {
		return
	}

	start := p.now()
	p.recordAttempt(start)

	snap, err := p.sync(ctx)
	elapsed := time.Since(start)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		// Shutdown interrupted the cycle; not a failure.
		p.setState(StateIdle)
		return
	}
	p.metrics.RecordCycle(elapsed, err)

	if err != nil {
		logging.Error(p.logger, "sync cycle failed", err, slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		p.recordFailure(err, start)
		p.fatalOnce.Do(func() {
			p.fatal <- err
			p.halt()
		})
		return
	}

	p.recordSuccess(start, snap)
	logging.Debug(p.logger, "sync cycle complete",
		slog.Int(logging.FieldCount, len(snap.Teams)),
		slog.Int(logging.FieldPlayers, snap.PlayerCount()),
		slog.String(logging.FieldSpectating, snap.Spectating()),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	if p.logger != nil && p.logger.Enabled(ctx, slog.LevelDebug) {
		for _, t := range snap.Teams {
			p.logger.Debug("team summary", slog.String(logging.FieldTeam, t.Name), slog.String(logging.FieldSummary, t.String()))
		}
	}
}

// halt stops scheduling further cycles. StopJobs waits for the running job,
// so it cannot run on the job's own goroutine.
func (p *Poller) halt() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	s := p.scheduler
	if s == nil || p.stopping {
		return
	}
	p.halting.Add(1)
	go func() {
		defer p.halting.Done()
		if err := s.StopJobs(); err != nil {
			logging.Warn(p.logger, "failed to stop sync job", slog.String(logging.FieldError, err.Error()))
		}
		p.setState(StateStopped)
		logging.Info(p.logger, "poller halted after failed cycle")
	}()
}

func (p *Poller) sync(ctx context.Context) (domain.Snapshot, error) {
	snap, err := p.source.Update(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("update world: %w", err)
	}
	if err := p.writer.WriteSnapshot(snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, nil
}

func (p *Poller) halted() bool {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status.State == StateStopped || p.status.ConsecutiveFailures > 0
}

func (p *Poller) setState(s State) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = s
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = StateSyncing
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, snap domain.Snapshot) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.latest = snap
	p.hasLast = true
	if p.status.State == StateSyncing {
		p.status.State = StateIdle
	}
	p.status.Cycles++
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	if p.status.State == StateSyncing {
		p.status.State = StateIdle
	}
	p.status.Cycles++
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Latest returns the snapshot written by the most recent successful cycle.
func (p *Poller) Latest() (domain.Snapshot, bool) {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.latest, p.hasLast
}
