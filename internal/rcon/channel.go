package rcon

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotConnected is returned when a command is sent before Connect succeeded.
	ErrNotConnected = errors.New("rcon: not connected")
	// ErrChannelUnavailable is returned by wrappers with no inner channel.
	ErrChannelUnavailable = errors.New("rcon: channel unavailable")
)

// Channel is a request/response command session with the game server.
type Channel interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, command string) ([]string, error)
	Close() error
}

// SplitLines breaks a raw response body into lines, dropping a trailing newline.
func SplitLines(body string) []string {
	body = strings.TrimRight(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if body == "" {
		return []string{}
	}
	return strings.Split(body, "\n")
}

// CommandName is the leading verb of a command, used as a metrics/log label.
func CommandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}
