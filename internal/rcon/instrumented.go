package rcon

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

// instrumentedChannel records latency/errors for every round trip and logs failures.
type instrumentedChannel struct {
	inner   Channel
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewInstrumentedChannel wraps inner with metrics and logging. It never retries.
func NewInstrumentedChannel(inner Channel, logger *slog.Logger, recorder *metrics.Recorder, name string) Channel {
	return &instrumentedChannel{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (c *instrumentedChannel) Connect(ctx context.Context) error {
	if c.inner == nil {
		return ErrChannelUnavailable
	}
	start := time.Now()
	if err := c.inner.Connect(ctx); err != nil {
		c.log(ctx, slog.LevelError, "rcon connect failed", slog.Any(logging.FieldError, err))
		return err
	}
	c.log(ctx, slog.LevelInfo, "rcon connected", slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
	return nil
}

func (c *instrumentedChannel) Send(ctx context.Context, command string) ([]string, error) {
	if c.inner == nil {
		return nil, ErrChannelUnavailable
	}
	start := time.Now()
	lines, err := c.inner.Send(ctx, command)
	elapsed := time.Since(start)
	c.metrics.RecordCommand(CommandName(command), elapsed, err)

	if err != nil {
		c.log(ctx, slog.LevelError, "rcon command failed",
			slog.String(logging.FieldCommand, command),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any(logging.FieldError, err),
		)
		return nil, err
	}
	c.log(ctx, slog.LevelDebug, "rcon command",
		slog.String(logging.FieldCommand, command),
		slog.Int(logging.FieldCount, len(lines)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return lines, nil
}

func (c *instrumentedChannel) Close() error {
	if c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

func (c *instrumentedChannel) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldChannel, c.name))
	logger.Log(ctx, level, msg, args...)
}
