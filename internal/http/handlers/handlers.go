package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/logging"
	"github.com/preston-bernstein/ktowers-overlay/internal/poller"
)

type nowFunc func() time.Time

// Handler exposes the daemon's health and the last overlay snapshot.
type Handler struct {
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
	latestFn func() (domain.Snapshot, bool)
}

// NewHandler constructs a Handler with defaults. Either func may be nil.
func NewHandler(logger *slog.Logger, statusFn func() poller.Status, latestFn func() (domain.Snapshot, bool)) *Handler {
	return &Handler{
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
		latestFn: latestFn,
	}
}

// ServeHTTP dispatches the known routes.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/status":
		h.Status(w, r)
	case "/overlay":
		h.Overlay(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready succeeds once a sync cycle has completed and none has failed since.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

type statusResponse struct {
	State               string     `json:"state"`
	Cycles              int        `json:"cycles"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	LastAttempt         *time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
}

// Status reports the sync loop state.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}
	s := h.statusFn()
	resp := statusResponse{
		State:               string(s.State),
		Cycles:              s.Cycles,
		ConsecutiveFailures: s.ConsecutiveFailures,
		LastError:           s.LastError,
		LastAttempt:         timePtr(s.LastAttempt),
		LastSuccess:         timePtr(s.LastSuccess),
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

type overlayPlayer struct {
	Name      string `json:"name"`
	Health    int    `json:"health"`
	PAM       string `json:"pam"`
	Spectated bool   `json:"spectated"`
}

type overlayTeam struct {
	Name    string          `json:"name"`
	Points  int             `json:"points"`
	Players []overlayPlayer `json:"players"`
}

type overlayResponse struct {
	TakenAt    time.Time     `json:"takenAt"`
	AgeMS      int64         `json:"ageMs"`
	Spectating string        `json:"spectating"`
	Teams      []overlayTeam `json:"teams"`
}

// Overlay returns the values behind the last written artifacts.
func (h *Handler) Overlay(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.latestFn == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}
	snap, ok := h.latestFn()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "no snapshot yet", h.logger)
		return
	}

	resp := overlayResponse{
		TakenAt:    snap.TakenAt,
		AgeMS:      h.now().Sub(snap.TakenAt).Milliseconds(),
		Spectating: snap.Spectating(),
		Teams:      make([]overlayTeam, 0, len(snap.Teams)),
	}
	for _, t := range snap.Teams {
		team := overlayTeam{Name: t.Name, Points: t.Points, Players: make([]overlayPlayer, 0, len(t.Players))}
		for _, p := range t.Players {
			team.Players = append(team.Players, overlayPlayer{
				Name:      p.Name,
				Health:    p.Health(),
				PAM:       p.PAM(),
				Spectated: p.BeingSpectated(),
			})
		}
		resp.Teams = append(resp.Teams, team)
	}

	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Debug("served overlay snapshot",
			slog.Int(logging.FieldCount, len(resp.Teams)),
			slog.String(logging.FieldSpectating, resp.Spectating),
		)
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
