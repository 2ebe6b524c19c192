package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/ktowers-overlay/internal/http/handlers"
	"github.com/preston-bernstein/ktowers-overlay/internal/http/middleware"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

// NewRouter registers HTTP routes on a ServeMux behind the logging middleware.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/status", handler.Status)
	mux.HandleFunc("/overlay", handler.Overlay)
	return middleware.LoggingMiddleware(logger, recorder, mux)
}
