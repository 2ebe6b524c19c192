package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/ktowers-overlay/internal/config"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(context.Background()))
}

// run loads configuration, runs the daemon until a signal or a fatal sync
// failure, and returns the process exit code.
func run(parent context.Context) int {
	bootLogger := logging.NewLogger(logging.Config{Service: config.ServiceName, Version: appVersion})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn(bootLogger, "failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error(bootLogger, "invalid configuration", err)
		return 1
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	if err := srv.Run(ctx, stop); err != nil {
		logging.Error(logger, "overlay daemon stopped", err)
		return 1
	}
	return 0
}
