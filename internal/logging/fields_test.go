package logging

import (
	"log/slog"
	"testing"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "ktowers-overlay", "v1")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[0].Value.String() != "ktowers-overlay" {
		t.Fatalf("expected service attr, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldVersion || attrs[1].Value.String() != "v1" {
		t.Fatalf("expected version attr, got %+v", attrs[1])
	}
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	attrs := WithCommon([]slog.Attr{slog.String(FieldChannel, "rcon")}, "", "")
	if len(attrs) != 1 || attrs[0].Key != FieldChannel {
		t.Fatalf("expected original attrs preserved, got %+v", attrs)
	}
}

func TestFieldKeysAreDistinct(t *testing.T) {
	keys := []string{
		FieldService, FieldVersion, FieldChannel, FieldCommand, FieldTeam,
		FieldPlayer, FieldPlayers, FieldSpectating, FieldSummary, FieldPath,
		FieldRequestID, FieldClientIP, FieldMethod, FieldStatusCode, FieldCount,
		FieldDurationMS, FieldError,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			t.Fatalf("field key %q empty or duplicated", k)
		}
		seen[k] = true
	}
}
