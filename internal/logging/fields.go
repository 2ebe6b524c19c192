package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldChannel    = "channel"
	FieldCommand    = "command"
	FieldTeam       = "team"
	FieldPlayer     = "player"
	FieldPlayers    = "players"
	FieldSpectating = "spectating"
	FieldSummary    = "summary"
	FieldPath       = "path"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
