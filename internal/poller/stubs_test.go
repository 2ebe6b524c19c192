package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
)

type stubSource struct {
	Snap   domain.Snapshot
	Err    error
	Delay  time.Duration
	Calls  atomic.Int32
	Notify chan struct{}
	Block  chan struct{}

	active    atomic.Int32
	maxActive atomic.Int32
	notified  sync.Once
}

func (s *stubSource) Update(ctx context.Context) (domain.Snapshot, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		m := s.maxActive.Load()
		if n <= m || s.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	s.Calls.Add(1)
	if s.Notify != nil {
		s.notified.Do(func() { close(s.Notify) })
	}
	if s.Block != nil {
		<-s.Block
	}
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return domain.Snapshot{}, ctx.Err()
		}
	}
	if s.Err != nil {
		return domain.Snapshot{}, s.Err
	}
	return s.Snap, nil
}

type stubWriter struct {
	Err      error
	PurgeErr error

	mu      sync.Mutex
	written []domain.Snapshot
	purged  int
	order   []string
}

func (w *stubWriter) WriteSnapshot(snap domain.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.order = append(w.order, "write")
	if w.Err != nil {
		return w.Err
	}
	w.written = append(w.written, snap)
	return nil
}

func (w *stubWriter) Purge() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.order = append(w.order, "purge")
	w.purged++
	return w.PurgeErr
}

func (w *stubWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.written)
}

func (w *stubWriter) Order() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{Teams: []*domain.Team{
		{Name: "Red", Points: 2, Players: []*domain.Player{{Name: "Alex", Team: "Red"}}},
	}}
}
