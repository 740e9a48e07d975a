package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/app"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/logging"
	"github.com/dodorz/glassdesk/internal/server"
	"github.com/dodorz/glassdesk/internal/theme"
	"golang.org/x/term"
)

// reloadBuffer bounds pending config reloads. Extra reloads are dropped
// while the desktop catches up.
const reloadBuffer = 4

var errNotTerminal = errors.New("glassdesk needs an interactive terminal; try `glassdesk ssh` or `glassdesk web`")

func overrides() config.Overrides {
	return config.Overrides{
		ASCIIOnly:   asciiOnly,
		HideClock:   hideClock,
		HideTray:    hideTray,
		ThemeName:   themeName,
		Wallpaper:   wallpaper,
		CellWidth:   cellWidth,
		CellHeight:  cellHeight,
		DoubleClick: doubleClick,
	}
}

// loadSettings resolves flags against the user config. A broken config falls
// back to defaults with a warning.
func loadSettings(logger *log.Logger) config.Settings {
	userConfig, validation, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		userConfig = nil
	}
	if validation != nil {
		for _, w := range validation.Warnings {
			logger.Warn("config", "issue", w.String())
		}
	}

	o := overrides()
	if !o.ASCIIOnly {
		switch colorprofile.Detect(os.Stdout, os.Environ()) {
		case colorprofile.Ascii, colorprofile.NoTTY:
			o.ASCIIOnly = true
		}
	}
	settings := config.ApplyOverrides(o, userConfig)

	if err := theme.Initialize(settings.Theme); err != nil {
		logger.Warn("theme unavailable, using the built-in palette", "theme", settings.Theme, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return settings
}

func runLocal(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	logger, closeLog, err := logging.Open(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer func() { _ = closeLog() }()

	settings := loadSettings(logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads chan config.Reload
	if watchConfig {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("could not resolve config path: %w", err)
		}
		reloads = make(chan config.Reload, reloadBuffer)
		go func() {
			err := config.Watch(ctx, path, func(r config.Reload) {
				select {
				case reloads <- r:
				default:
					logger.Debug("config reload dropped")
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("config watcher stopped", "err", err)
			}
		}()
		logger.Info("watching config", "path", path)
	}

	d := app.New(app.Options{
		Settings: settings,
		Logger:   logger,
		Reloads:  reloads,
	})

	p := tea.NewProgram(
		d,
		tea.WithFPS(config.FrameRate),
		tea.WithoutSignalHandler(),
		tea.WithFilter(app.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func serverLogger() *log.Logger {
	logger := logging.New(os.Stderr, "glassdesk")
	if !debugMode {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func runSSHServer(ctx context.Context, host, port, keyPath string) error {
	logger := serverLogger()
	settings := loadSettings(logger)

	srv, err := server.NewSSHServer(server.SSHServerConfig{
		Host:     host,
		Port:     port,
		KeyPath:  keyPath,
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(ctx)
	defer cancel()
	logger.Info("Starting glassdesk SSH server", "addr", srv.Addr(), "version", version)
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(ctx context.Context) error {
	logger := serverLogger()
	settings := loadSettings(logger)

	ctx, cancel := signalContext(ctx)
	defer cancel()
	return server.NewWebServer(settings, logger).Serve(ctx)
}
