package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/config"
)

// PTY is the terminal size of a browser session.
type PTY interface {
	Width() int
	Height() int
}

// WebServer serves desktops to browsers through sip.
type WebServer struct {
	settings config.Settings
	logger   *log.Logger
}

// NewWebServer builds a browser front end over settings.
func NewWebServer(settings config.Settings, logger *log.Logger) *WebServer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if settings.Keymap == nil {
		settings = config.ApplyOverrides(config.Overrides{}, nil)
	}
	return &WebServer{settings: settings, logger: logger}
}

// Handler returns the model for one browser session.
func (w *WebServer) Handler(pty PTY) (tea.Model, []tea.ProgramOption) {
	w.logger.Info("web session started", "cols", pty.Width(), "rows", pty.Height())
	return NewDesktop(w.settings, w.logger, pty.Width(), pty.Height()), ProgramOptions()
}

// Serve runs the web server with sip's default configuration until ctx is
// cancelled. It returns early if the server cannot start, e.g. when the
// port is taken.
func (w *WebServer) Serve(ctx context.Context) error {
	srv := sip.NewServer(sip.DefaultConfig())
	w.logger.Info("web server starting")
	err := srv.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		return w.Handler(sess.Pty())
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		w.logger.Error("web server stopped", "err", err)
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
