package rcon

import (
	"context"
	"errors"
	"reflect"
	"testing"

	gorcon "github.com/gorcon/rcon"
)

type fakeConn struct {
	responses map[string]string
	err       error
	closed    int
	commands  []string
}

func (f *fakeConn) Execute(command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return "", f.err
	}
	return f.responses[command], nil
}

func (f *fakeConn) Close() error {
	f.closed++
	return nil
}

func newTestClient(conn *fakeConn, dialErr error) (*Client, *int) {
	dials := 0
	c := NewClient(Config{Address: "127.0.0.1:25575", Password: "secret"})
	c.dial = func(address, password string, options ...gorcon.Option) (executor, error) {
		dials++
		if dialErr != nil {
			return nil, dialErr
		}
		if address != "127.0.0.1:25575" || password != "secret" {
			return nil, errors.New("unexpected credentials")
		}
		return conn, nil
	}
	return c, &dials
}

func TestClientDefaultsTimeouts(t *testing.T) {
	c := NewClient(Config{})
	if c.cfg.DialTimeout != defaultDialTimeout || c.cfg.Deadline != defaultDeadline {
		t.Fatalf("expected default timeouts, got %+v", c.cfg)
	}
}

func TestClientSendBeforeConnect(t *testing.T) {
	c, _ := newTestClient(&fakeConn{}, nil)
	if _, err := c.Send(context.Background(), "team list Red"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestClientConnectAndSend(t *testing.T) {
	conn := &fakeConn{responses: map[string]string{
		"team list Red": "Team [Red] has 1 member: Red\n",
	}}
	c, dials := newTestClient(conn, nil)

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if *dials != 1 {
		t.Fatalf("expected a single dial, got %d", *dials)
	}

	lines, err := c.Send(context.Background(), "team list Red")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"Team [Red] has 1 member: Red"}) {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestClientWrapsDialAndExecuteErrors(t *testing.T) {
	refused := errors.New("connection refused")
	c, _ := newTestClient(nil, refused)
	if err := c.Connect(context.Background()); !errors.Is(err, refused) {
		t.Fatalf("expected dial error, got %v", err)
	}

	broken := errors.New("broken pipe")
	c, _ = newTestClient(&fakeConn{err: broken}, nil)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := c.Send(context.Background(), "team list Red"); !errors.Is(err, broken) {
		t.Fatalf("expected execute error, got %v", err)
	}
}

func TestClientHonorsCanceledContext(t *testing.T) {
	conn := &fakeConn{}
	c, dials := newTestClient(conn, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Connect(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled connect, got %v", err)
	}
	if *dials != 0 {
		t.Fatalf("expected no dial on canceled context")
	}

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := c.Send(ctx, "team list Red"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled send, got %v", err)
	}
	if len(conn.commands) != 0 {
		t.Fatalf("expected no command executed, got %v", conn.commands)
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	conn := &fakeConn{}
	c, _ := newTestClient(conn, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("close before connect: %v", err)
	}
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if conn.closed != 1 {
		t.Fatalf("expected connection closed once, got %d", conn.closed)
	}
}
