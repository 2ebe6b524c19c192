package server

import (
	"log/slog"

	"github.com/preston-bernstein/ktowers-overlay/internal/config"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
	"github.com/preston-bernstein/ktowers-overlay/internal/rcon"
	"github.com/preston-bernstein/ktowers-overlay/internal/rcon/fixture"
)

// buildChannel picks the configured transport and wraps it with logging and metrics.
func buildChannel(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) rcon.Channel {
	name := channelName(cfg.Channel)
	return rcon.NewInstrumentedChannel(selectChannel(cfg, logger), logger, recorder, name)
}

func selectChannel(cfg config.Config, logger *slog.Logger) rcon.Channel {
	switch channelName(cfg.Channel) {
	case config.ChannelFixture:
		return fixture.New()
	case config.ChannelRCON:
		return rcon.NewClient(rcon.Config{
			Address:     cfg.RCON.Address,
			Password:    cfg.RCON.Password,
			DialTimeout: cfg.RCON.DialTimeout,
			Deadline:    cfg.RCON.Deadline,
		})
	default:
		if logger != nil {
			logger.Warn("unknown channel, falling back to fixture", slog.String("channel", cfg.Channel))
		}
		return fixture.New()
	}
}

// channelName is the label used for the channel in logs and metrics.
func channelName(raw string) string {
	if raw == "" {
		return config.ChannelRCON
	}
	return raw
}
