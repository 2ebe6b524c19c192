package server

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	readTimeout       = 5 * time.Second
	readHeaderTimeout = 2 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// shutdownTimeout bounds the whole shutdown sequence; tests shorten it.
var shutdownTimeout = 10 * time.Second

// httpServer abstracts the HTTP server implementation for easier testing.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// netHTTPServer serves on listener when set, otherwise on srv.Addr.
type netHTTPServer struct {
	srv      *http.Server
	listener net.Listener
}

func (s netHTTPServer) ListenAndServe() error {
	if s.listener != nil {
		return s.srv.Serve(s.listener)
	}
	return s.srv.ListenAndServe()
}

func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }
