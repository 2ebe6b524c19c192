package scoreboard

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when the server answered with no lines.
	ErrEmptyResponse = errors.New("empty response")
	// ErrUnknownKind is returned by Parse for a kind it has no grammar for.
	ErrUnknownKind = errors.New("unknown listing kind")
	// ErrMalformedResponse marks a response that does not match the expected layout.
	ErrMalformedResponse = errors.New("malformed response")
)

// MalformedError carries the offending line alongside ErrMalformedResponse.
type MalformedError struct {
	Kind   Kind
	Line   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s %s: %s (line=%q)", e.Kind, ErrMalformedResponse, e.Reason, e.Line)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedResponse
}

func malformed(kind Kind, line, reason string) error {
	return &MalformedError{Kind: kind, Line: line, Reason: reason}
}
