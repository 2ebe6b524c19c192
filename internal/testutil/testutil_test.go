package testutil

import (
	"context"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestSampleSnapshot(t *testing.T) {
	snap := SampleSnapshot()
	if len(snap.Teams) != 2 || snap.Teams[0].Name != "Red" || snap.Teams[1].Name != "Blue" {
		t.Fatalf("unexpected teams %+v", snap.Teams)
	}
	if snap.Spectating() != "Jordan" {
		t.Fatalf("expected Jordan spectated, got %q", snap.Spectating())
	}
	alex := snap.Teams[0].Players[0]
	if alex.Health() != 18 || alex.Kills() != 2 || alex.Deaths() != 1 {
		t.Fatalf("unexpected player fixture %+v", alex)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestHTTPHelperErrorFormatting(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusBadRequest)
	rr.WriteString(strings.Repeat("x", 600))

	if err := statusError(rr, http.StatusOK); err == nil {
		t.Fatalf("expected status error")
	} else if !strings.Contains(err.Error(), "body=") {
		t.Fatalf("expected body snippet in error, got %v", err)
	}

	rr = httptest.NewRecorder()
	rr.WriteHeader(http.StatusOK)
	if err := statusError(rr, http.StatusOK); err != nil {
		t.Fatalf("expected nil error when status matches, got %v", err)
	}

	rr = httptest.NewRecorder()
	rr.WriteString("not-json")
	var dest map[string]any
	if err := decodeJSONBody(rr, &dest); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestWriteHeartAssetsLaysOutVariants(t *testing.T) {
	root := WriteHeartAssets(t, 3, 2, "red")

	files := ListFiles(t, root)
	if len(files) != 2*len(IconColors) {
		t.Fatalf("expected %d icons, got %v", 2*len(IconColors), files)
	}

	img, err := imaging.Open(filepath.Join(root, "hearts", "red", "full_heart.png"))
	if err != nil {
		t.Fatalf("open icon: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("unexpected icon size %v", b)
	}
	got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if got != IconColors["full_heart.png"] {
		t.Fatalf("unexpected icon color %v", got)
	}
}

func TestListFilesSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "b", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b/z.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := ListFiles(t, root)
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "b/z.txt" {
		t.Fatalf("unexpected listing %v", got)
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop"), StartErr: errors.New("start")}
	if err := p.Start(context.Background()); !errors.Is(err, p.StartErr) {
		t.Fatalf("expected start error")
	}
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls() != 1 || p.StopCalls() != 1 {
		t.Fatalf("unexpected call counts start=%d stop=%d", p.StartCalls(), p.StopCalls())
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
	if _, ok := p.Latest(); ok {
		t.Fatalf("expected no latest snapshot by default")
	}
	if p.Fatal() != nil {
		t.Fatalf("expected nil fatal channel by default")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	_ = e.Shutdown(context.Background())
	if e.Addr() == "" || e.ShutdownCalls != 1 {
		t.Fatalf("unexpected ErrHTTPServer state %+v", e)
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = c.Shutdown(context.Background())
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hidden")
	logger.Info("hello", "k", "v")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "k=v") {
		t.Fatalf("expected info-level output only, got %q", out)
	}

	debug, dbuf := NewDebugLogger()
	debug.Debug("team summary")
	if !strings.Contains(dbuf.String(), "team summary") {
		t.Fatalf("expected debug output, got %q", dbuf.String())
	}

	rec, spy := NewRecorderWithShutdown()
	if rec == nil || spy == nil {
		t.Fatalf("expected recorder and shutdown spy")
	}
	spy.Err = errors.New("flush failed")
	if err := spy.Shutdown(context.Background()); !errors.Is(err, spy.Err) {
		t.Fatalf("expected spy error, got %v", err)
	}
	if spy.Calls() != 1 {
		t.Fatalf("expected one shutdown call, got %d", spy.Calls())
	}
}
