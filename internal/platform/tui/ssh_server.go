package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gameroom/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file. It is generated on
	// first start when missing.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// SSHServer serves the app to every SSH session. All sessions share one
// score store; each gets its own models and game instances.
type SSHServer struct {
	config SSHServerConfig
	opts   Options
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a server. opts.Store is shared by all sessions and
// is not closed by the server.
func NewSSHServer(cfg SSHServerConfig, opts Options) (*SSHServer, error) {
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	srv := &SSHServer{
		config: cfg,
		opts:   opts,
		logger: opts.logger(),
	}

	hostKey, err := storage.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(hostKey), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates the app for one SSH session. The session context
// stops any running scheduler when the client disconnects.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "gameroom needs a terminal: connect with ssh -t")
		return nil, nil
	}

	opts := s.opts
	opts.Context = sess.Context()
	opts.Logger = s.logger.With("user", sess.User())

	return NewApp(opts, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM or
// ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("tui: ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Port returns the port part of the listen address, for connect hints.
func (s *SSHServer) Port() string {
	if _, port, err := net.SplitHostPort(s.config.Address); err == nil {
		return port
	}
	return s.config.Address
}
