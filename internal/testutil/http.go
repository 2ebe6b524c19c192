package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// maxBodySnippet bounds how much of a response body is echoed in failures.
const maxBodySnippet = 512

// Serve executes a request against the provided handler and returns the recorder.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ServeRequest executes the given request against the handler.
func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// AssertStatus verifies the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if err := statusError(rr, want); err != nil {
		t.Fatal(err)
	}
}

// DecodeJSON decodes the recorder body into dest, failing the test on error.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := decodeJSONBody(rr, dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func statusError(rr *httptest.ResponseRecorder, want int) error {
	if rr.Code == want {
		return nil
	}
	body := rr.Body.String()
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet] + "..."
	}
	return fmt.Errorf("expected status %d, got %d body=%q", want, rr.Code, body)
}

func decodeJSONBody(rr *httptest.ResponseRecorder, dest any) error {
	return json.NewDecoder(rr.Body).Decode(dest)
}
