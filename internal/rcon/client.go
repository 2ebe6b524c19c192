package rcon

import (
	"context"
	"fmt"
	"sync"
	"time"

	gorcon "github.com/gorcon/rcon"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultDeadline    = 5 * time.Second
)

// Config controls how the client reaches the server.
type Config struct {
	Address     string
	Password    string
	DialTimeout time.Duration
	Deadline    time.Duration
}

type executor interface {
	Execute(command string) (string, error)
	Close() error
}

type dialFunc func(address, password string, options ...gorcon.Option) (executor, error)

func dialGorcon(address, password string, options ...gorcon.Option) (executor, error) {
	return gorcon.Dial(address, password, options...)
}

// Client is a single authenticated RCON connection. Commands are serialized.
type Client struct {
	cfg  Config
	dial dialFunc

	mu   sync.Mutex
	conn executor
}

// NewClient builds an unconnected client; call Connect before Send.
func NewClient(cfg Config) *Client {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.Deadline <= 0 {
		cfg.Deadline = defaultDeadline
	}
	return &Client{cfg: cfg, dial: dialGorcon}
}

// Connect dials and authenticates. Calling it on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}

	conn, err := c.dial(c.cfg.Address, c.cfg.Password,
		gorcon.SetDialTimeout(c.cfg.DialTimeout),
		gorcon.SetDeadline(c.cfg.Deadline),
	)
	if err != nil {
		return fmt.Errorf("rcon dial %s: %w", c.cfg.Address, err)
	}
	c.conn = conn
	return nil
}

// Send executes one command and returns the response split into lines.
func (c *Client) Send(ctx context.Context, command string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	body, err := c.conn.Execute(command)
	if err != nil {
		return nil, fmt.Errorf("rcon execute: %w", err)
	}
	return SplitLines(body), nil
}

// Close drops the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
