package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/http/requestutil"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging, request ID support, and metrics.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(requestutil.HeaderRequestID))
		w.Header().Set(requestutil.HeaderRequestID, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = withRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), ww.status, duration)

		// Probes hit these every few seconds.
		level := slog.LevelInfo
		if r.URL.Path == "/health" || r.URL.Path == "/ready" {
			level = slog.LevelDebug
		}
		logger.Log(r.Context(), level, "request complete",
			slog.Int(logging.FieldStatusCode, ww.status),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		)
	})
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type requestIDKey struct{}

// normalizePath keeps the metrics path label bounded.
func normalizePath(path string) string {
	switch path {
	case "":
		return ""
	case "/health", "/ready", "/status", "/overlay":
		return path
	default:
		return "other"
	}
}
