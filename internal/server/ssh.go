// Package server serves desktops to remote viewers. Every SSH or browser
// session gets its own independent desktop and window manager.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/dodorz/glassdesk/internal/app"
	"github.com/dodorz/glassdesk/internal/config"
)

const (
	DefaultHost = "localhost"
	DefaultPort = "2222"

	// ShutdownTimeout bounds how long open sessions get to finish.
	ShutdownTimeout = 5 * time.Second
)

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// Settings are shared by every session. Each session still owns its
	// window manager.
	Settings config.Settings
	Logger   *log.Logger
}

// SSHServer serves one desktop per SSH session.
type SSHServer struct {
	cfg      SSHServerConfig
	srv      *ssh.Server
	sessions atomic.Int64
}

// DefaultKeyPath is the host key location under the XDG data directory.
func DefaultKeyPath() (string, error) {
	path, err := xdg.DataFile("glassdesk/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to resolve host key path: %w", err)
	}
	return path, nil
}

// NewSSHServer builds the server. The host key is generated on first use.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.KeyPath == "" {
		path, err := DefaultKeyPath()
		if err != nil {
			return nil, err
		}
		cfg.KeyPath = path
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Settings.Keymap == nil {
		cfg.Settings = config.ApplyOverrides(config.Overrides{}, nil)
	}

	s := &SSHServer{cfg: cfg}
	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.srv = srv
	return s, nil
}

// Addr is the listen address.
func (s *SSHServer) Addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// Sessions is the number of connected viewers.
func (s *SSHServer) Sessions() int64 {
	return s.sessions.Load()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("SSH server listening", "addr", s.Addr())
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("SSH server stopped: %w", err)
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("Shutting down SSH server", "sessions", s.Sessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH server shutdown: %w", err)
	}
	return nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	n := s.sessions.Add(1)
	logger := s.cfg.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	logger.Info("session started", "sessions", n)

	go func() {
		<-sess.Context().Done()
		logger.Info("session ended", "sessions", s.sessions.Add(-1))
	}()

	return NewDesktop(s.cfg.Settings, logger, pty.Window.Width, pty.Window.Height), ProgramOptions()
}

// NewDesktop is the model served to one remote viewer.
func NewDesktop(settings config.Settings, logger *log.Logger, width, height int) *app.Desktop {
	return app.New(app.Options{
		Settings: settings,
		Logger:   logger,
		Width:    width,
		Height:   height,
	})
}

// ProgramOptions are the program options every served desktop runs with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.FrameRate),
		tea.WithFilter(app.FilterMouseMotion),
	}
}
