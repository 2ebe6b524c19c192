package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/poller"
)

// StubPoller implements the server's Poller for tests. Send on FatalCh to
// simulate a failed cycle.
type StubPoller struct {
	StartErr  error
	Err       error
	StatusVal poller.Status
	Snapshot  domain.Snapshot
	HasLatest bool
	FatalCh   chan error

	mu         sync.Mutex
	startCalls int
	stopCalls  int
}

func (p *StubPoller) Start(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
	return p.StartErr
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

func (p *StubPoller) Latest() (domain.Snapshot, bool) {
	return p.Snapshot, p.HasLatest
}

// Fatal returns FatalCh; a nil FatalCh never fires.
func (p *StubPoller) Fatal() <-chan error {
	return p.FatalCh
}

// StartCalls returns how many times Start was called.
func (p *StubPoller) StartCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls
}

// StopCalls returns how many times Stop was called.
func (p *StubPoller) StopCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopCalls
}

// StubHTTPServer implements httpServer for tests.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// BlockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type BlockingHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
	Unblock       chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error {
	return nil
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

func (b *BlockingHTTPServer) Addr() string {
	return b.AddrVal
}

func (b *BlockingHTTPServer) Handler() http.Handler {
	return b.HandlerVal
}

// ErrHTTPServer returns an error on ListenAndServe; Shutdown increments a counter.
type ErrHTTPServer struct {
	ShutdownCalls int
}

func (e *ErrHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *ErrHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.ShutdownCalls++
	return nil
}

func (e *ErrHTTPServer) Addr() string {
	return ":0"
}

func (e *ErrHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}

// CloseableHTTPServer returns ErrServerClosed from ListenAndServe.
type CloseableHTTPServer struct {
	ShutdownCalls int
}

func (c *CloseableHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (c *CloseableHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	c.ShutdownCalls++
	return nil
}

func (c *CloseableHTTPServer) Addr() string {
	return ":0"
}

func (c *CloseableHTTPServer) Handler() http.Handler {
	return http.NewServeMux()
}
