package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ktowers-overlay/internal/config"
	httpserver "github.com/preston-bernstein/ktowers-overlay/internal/http"
	"github.com/preston-bernstein/ktowers-overlay/internal/http/handlers"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
	"github.com/preston-bernstein/ktowers-overlay/internal/rcon"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	channel       rcon.Channel
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured channel and the full sync pipeline.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithChannel(cfg config.Config, logger *slog.Logger, channel rcon.Channel) *Server {
	return newServerWithMetrics(cfg, logger, channel, nil)
}

// newServerWithMetrics wraps an injected channel in the same instrumentation the
// configured one gets.
func newServerWithMetrics(cfg config.Config, logger *slog.Logger, channel rcon.Channel, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if channel == nil {
		channel = buildChannel(cfg, logger, recorder)
	} else {
		channel = rcon.NewInstrumentedChannel(channel, logger, recorder, channelName(cfg.Channel))
	}
	pipe := buildPipeline(cfg, channel, logger, recorder)
	logging.Info(logger, "overlay pipeline configured",
		slog.String(logging.FieldChannel, channelName(cfg.Channel)),
		slog.Int(logging.FieldCount, len(pipe.world.TeamNames())),
		slog.String(logging.FieldPath, pipe.writer.BasePath()),
	)
	httpSrv := buildHTTPServer(cfg, logger, recorder, pipe.poller)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		channel:       channel,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        pipe.poller,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, channel rcon.Channel, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		channel:    channel,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	handler := handlers.NewHandler(logger, plr.Status, plr.Latest)
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run connects the channel, starts the HTTP server and the poller, then waits
// for cancellation or a fatal sync failure. The fatal error is returned after
// everything has been shut down.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) error {
	s.startMetrics()

	if s.channel != nil {
		if err := s.channel.Connect(ctx); err != nil {
			s.gracefulShutdown()
			if ctx.Err() != nil {
				// Interrupted before the first cycle.
				return nil
			}
			return fmt.Errorf("connect channel: %w", err)
		}
	}

	s.startServer(stop)
	if err := s.poller.Start(ctx); err != nil {
		s.gracefulShutdown()
		return fmt.Errorf("start poller: %w", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info(s.logger, "shutdown signal received")
	case err := <-s.poller.Fatal():
		if err == nil {
			err = errors.New("poller halted")
		}
		runErr = err
		logging.Error(s.logger, "sync failed, shutting down", err)
	}

	s.gracefulShutdown()
	return runErr
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			logging.Warn(s.logger, "channel close failed", slog.Any(logging.FieldError, err))
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any(logging.FieldError, err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any(logging.FieldError, err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", slog.Any(logging.FieldError, err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
