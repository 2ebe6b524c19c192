package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
)

// StubChannel is a scripted command channel keyed by exact command text.
type StubChannel struct {
	Responses map[string][]string
	Err       error
	// ErrOn fails only the listed commands.
	ErrOn      map[string]error
	ConnectErr error
	Calls      atomic.Int32
	Notify     chan struct{}

	mu        sync.Mutex
	commands  []string
	connected bool
	closed    int
}

// Connect records the connection and returns ConnectErr.
func (s *StubChannel) Connect(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ConnectErr != nil {
		return s.ConnectErr
	}
	s.connected = true
	return nil
}

// Send returns the scripted response for command while tracking calls.
func (s *StubChannel) Send(ctx context.Context, command string) ([]string, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)

	s.mu.Lock()
	s.commands = append(s.commands, command)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if err, ok := s.ErrOn[command]; ok {
		return nil, err
	}
	return s.Responses[command], nil
}

// Close marks the channel closed.
func (s *StubChannel) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.closed++
	return nil
}

// Commands returns every command sent, in order.
func (s *StubChannel) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}

// Connected reports whether Connect succeeded and Close has not been called since.
func (s *StubChannel) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Closed returns how many times Close was called.
func (s *StubChannel) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
