package server

import (
	"log/slog"
	"path/filepath"

	"github.com/preston-bernstein/ktowers-overlay/internal/config"
	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/hearts"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
	"github.com/preston-bernstein/ktowers-overlay/internal/poller"
	"github.com/preston-bernstein/ktowers-overlay/internal/rcon"
	"github.com/preston-bernstein/ktowers-overlay/internal/scoreboard"
	"github.com/preston-bernstein/ktowers-overlay/internal/snapshots"
)

// heartsDir is where the icon sets live under the assets directory.
const heartsDir = "hearts"

type pipeline struct {
	world  *domain.World
	writer *snapshots.Writer
	poller *poller.Poller
}

// buildPipeline wires channel -> scoreboard -> world -> writer -> poller.
func buildPipeline(cfg config.Config, channel rcon.Channel, logger *slog.Logger, recorder *metrics.Recorder) pipeline {
	world := domain.NewWorld(scoreboard.NewClient(channel), cfg.Teams)
	compositor := hearts.NewCompositor(hearts.Config{
		Dir:          filepath.Join(cfg.AssetsDir, heartsDir),
		Variants:     cfg.HeartVariants,
		MirroredTeam: cfg.MirroredTeam,
	})
	writer := snapshots.NewWriter(cfg.OutputDir, compositor, recorder)
	plr := poller.New(world, writer, logger, recorder, cfg.PollInterval)

	return pipeline{world: world, writer: writer, poller: plr}
}
