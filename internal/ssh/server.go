package ssh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/ntpusu/lawtext/internal/config"
)

// HostKeyName is the host key file inside the library state directory.
const HostKeyName = "ssh_host_key"

// Server serves the regulation reader over SSH.
type Server struct {
	server *ssh.Server
	cfg    config.Config
}

// HostKeyPath returns where the server keeps its host key.
func HostKeyPath(cfg config.Config) string {
	return filepath.Join(cfg.StateDir(), HostKeyName)
}

// New creates a new SSH server. Every session gets its own reader, closed
// once its program exits. Middlewares run last to first.
func New(cfg config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.StateDir(), 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	s, err := wish.NewServer(
		wish.WithAddress(cfg.SSHListen),
		wish.WithHostKeyPath(HostKeyPath(cfg)),
		wish.WithMiddleware(
			logging.StructuredMiddlewareWithLogger(log.Default(), log.InfoLevel),
			activeterm.Middleware(),
			closeAppMiddleware(),
			bts.Middleware(NewHandler(cfg)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, cfg: cfg}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.SSHListen
}

// ListenAndServe starts the SSH server. It returns nil after Close.
func (s *Server) ListenAndServe() error {
	log.Info("ssh server listening", "addr", s.cfg.SSHListen, "library", s.cfg.LibraryPath)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
