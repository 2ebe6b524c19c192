package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ktowers-overlay/internal/http/middleware"
	"github.com/preston-bernstein/ktowers-overlay/internal/http/requestutil"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON sends payload uncached; overlay values go stale within a cycle.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err, slog.Int(logging.FieldStatusCode, status))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorBody{Error: message, RequestID: reqID}, loggerFromContext(r, logger))
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
