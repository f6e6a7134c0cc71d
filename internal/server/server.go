// Package server serves a read-only content tree over plain HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// State is the lifecycle of a Server.
type State int32

const (
	Starting State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// BindError reports that the listening socket could not be opened.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("binding port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Options configures the HTTP server. Zero timeouts take the defaults below.
type Options struct {
	// Port to listen on, on all interfaces. Zero picks an ephemeral port.
	Port              int
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	Logger            *zap.Logger
}

// Server hosts the static content source.
type Server struct {
	content fs.FS
	opts    Options
	logger  *zap.Logger
	http    *http.Server

	state    atomic.Int32
	listener net.Listener
	done     chan error
}

// New constructs a Server for content. It does not listen until Start.
func New(content fs.FS, opts Options) *Server {
	if content == nil {
		panic("server.New: content is nil")
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		content: content,
		opts:    opts,
		logger:  opts.Logger,
		done:    make(chan error, 1),
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		ErrorLog:          zap.NewStdLog(opts.Logger),
	}
	return s
}

// Handler returns the full request pipeline: access log, compression, files.
func (s *Server) Handler() http.Handler {
	return withAccessLog(gzhttp.GzipHandler(http.HandlerFunc(s.serveContent)), s.logger)
}

// Start binds the listener and serves in a background goroutine. It returns
// once the socket is open; a *BindError means the port could not be bound.
func (s *Server) Start() error {
	if st := s.State(); st != Starting {
		return fmt.Errorf("server already %s", st)
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.opts.Port))
	if err != nil {
		s.state.Store(int32(Stopped))
		close(s.done)
		return &BindError{Port: s.opts.Port, Err: err}
	}
	s.listener = ln
	s.state.Store(int32(Running))
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	go s.serve(ln)
	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.http.Serve(ln)
	s.state.Store(int32(Stopped))
	if !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("serve loop exited", zap.Error(err))
		s.done <- err
	}
	close(s.done)
}

// State reports the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound address, or nil before a successful Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Done delivers the error that stopped the serve loop, if any, and is closed
// once the loop has exited.
func (s *Server) Done() <-chan error {
	return s.done
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		if s.state.CompareAndSwap(int32(Starting), int32(Stopped)) {
			close(s.done)
		}
		return nil
	}
	return s.http.Shutdown(ctx)
}
