package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// ErrAddressInUse is returned by [Server.Start] when the port is already bound.
var ErrAddressInUse = errors.New("address already in use")

// State is a point in the server lifecycle.
//
//	Idle -> Bound -> Serving -> Stopped
//	Idle -> Failed
type State int32

const (
	StateIdle State = iota
	StateBound
	StateServing
	StateStopped
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBound:
		return "bound"
	case StateServing:
		return "serving"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config describes what to serve and where.
type Config struct {
	// Dir is the directory whose files are served.
	Dir string

	// File is the name of the page inside Dir, used only to build [Server.URL].
	File string

	// Port is the TCP port to listen on, on all interfaces. 0 picks a free port.
	Port int
}

// Server is a static file server for a single directory.
//
// A Server is started at most once.
type Server struct {
	cfg    Config
	logger *slog.Logger

	state   atomic.Int32
	stopped chan struct{}

	mu   sync.Mutex
	addr net.Addr
}

// New creates a [Server]. Nothing is bound until [Server.Start] is called.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		stopped: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listener address, or nil before a successful bind.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// URL returns the address the page can be opened at, or "" before a
// successful bind.
func (s *Server) URL() string {
	addr, ok := s.Addr().(*net.TCPAddr)
	if !ok {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d/%s", addr.Port, url.PathEscape(s.cfg.File))
}

// Handler returns the request handler: a file server over the configured
// directory, decorated to force the HTML content type and to log requests.
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.Dir))
	return logRequests(s.logger, forceHTML(files))
}

// Start binds the port and begins serving in a background goroutine.
//
// Start is non-blocking and returns once the listener is bound. When ctx is
// cancelled the server shuts down gracefully with a 5-second timeout and
// moves to [StateStopped].
//
// Returns an error wrapping [ErrAddressInUse] if the port is taken.
func (s *Server) Start(ctx context.Context) error {
	if s.State() != StateIdle {
		return fmt.Errorf("server already started (state %s)", s.State())
	}

	if err := s.validate(); err != nil {
		s.state.Store(int32(StateFailed))
		return err
	}

	// create listener first to verify port availability synchronously
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		s.state.Store(int32(StateFailed))
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("failed to bind to port %d: %w", s.cfg.Port, ErrAddressInUse)
		}
		return fmt.Errorf("failed to bind to port %d: %w", s.cfg.Port, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	s.state.Store(int32(StateBound))

	httpServer := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	served := make(chan struct{})
	go func() {
		defer close(served)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	s.state.Store(int32(StateServing))
	s.logger.Info("serving directory", "dir", s.cfg.Dir, "addr", ln.Addr().String())

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
		<-served
		s.state.Store(int32(StateStopped))
		s.logger.Info("server stopped")
		close(s.stopped)
	}()

	return nil
}

// Run starts the server and blocks until ctx is cancelled and shutdown has
// completed.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-s.stopped
	return nil
}

// Done returns a channel that is closed once the server has stopped.
func (s *Server) Done() <-chan struct{} {
	return s.stopped
}

func (s *Server) validate() error {
	if s.cfg.Port < 0 || s.cfg.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", s.cfg.Port)
	}
	info, err := os.Stat(s.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.cfg.Dir)
	}
	return nil
}
