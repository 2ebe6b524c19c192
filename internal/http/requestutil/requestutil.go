package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// randRead is swapped in tests to force the clock fallback.
var randRead = rand.Read

// SanitizeRequestID keeps a well-formed incoming ID and mints a new one otherwise.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns 16 hex chars from crypto/rand, or a clock-derived ID
// when the random source fails.
func NewRequestID() string {
	var b [8]byte
	if _, err := randRead(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	return strings.ReplaceAll(time.Now().UTC().Format("20060102150405.000000000"), ".", "-")
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
