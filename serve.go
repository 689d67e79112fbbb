package notebookview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jpalmerr/notebookview/internal/server"
)

// ServerConfig describes the page to serve.
type ServerConfig struct {
	// FilePath is the page to serve. Its whole directory is served.
	FilePath string

	// Port is the TCP port to listen on, on all interfaces. 0 picks a free port.
	Port int
}

// Server serves the directory of a written page over plain HTTP.
//
// Every response is labelled text/html, whatever file is requested.
type Server struct {
	srv *server.Server
}

// NewServer creates a [Server] for cfg.
//
// Returns an error wrapping [ErrNotFound] if cfg.FilePath does not exist.
func NewServer(cfg ServerConfig, logger *slog.Logger) (*Server, error) {
	abs, err := filepath.Abs(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cfg.FilePath)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		srv: server.New(server.Config{
			Dir:  filepath.Dir(abs),
			File: filepath.Base(abs),
			Port: cfg.Port,
		}, logger),
	}, nil
}

// Start binds the port and serves in the background until ctx is cancelled.
//
// Returns an error wrapping [ErrAddressInUse] if the port is taken.
func (s *Server) Start(ctx context.Context) error {
	return s.srv.Start(ctx)
}

// Run serves until ctx is cancelled, then shuts down and returns nil.
func (s *Server) Run(ctx context.Context) error {
	return s.srv.Run(ctx)
}

// URL returns the address of the page, or "" before [Server.Start].
func (s *Server) URL() string {
	return s.srv.URL()
}

// Done returns a channel that is closed once the server has stopped.
func (s *Server) Done() <-chan struct{} {
	return s.srv.Done()
}

// Serve is a convenience for NewServer followed by Run.
func Serve(ctx context.Context, cfg ServerConfig, logger *slog.Logger) error {
	s, err := NewServer(cfg, logger)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
