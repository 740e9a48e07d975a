// Package glassdesk provides an embeddable desktop environment for Bubble
// Tea programs: desktop icons, a start menu, draggable windows and a taskbar.
//
// # Basic Usage
//
//	model := glassdesk.New()
//	p := tea.NewProgram(model, glassdesk.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := glassdesk.New(
//		glassdesk.WithTheme("dracula"),
//		glassdesk.WithWallpaper("stripes"),
//		glassdesk.WithHideTray(true),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return glassdesk.NewForPTY(sess.Pty()), glassdesk.ProgramOptions()
//	})
package glassdesk

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/app"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/theme"
)

// Model is the desktop. It implements tea.Model.
type Model = app.Desktop

// Options configures a desktop.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty to use the built-in palette.
	Theme string

	// ASCIIOnly uses ASCII glyphs instead of Unicode symbols.
	ASCIIOnly bool

	// Wallpaper is one of "solid", "dots", "stripes" or "bliss".
	Wallpaper string

	HideClock bool
	HideTray  bool

	// Width and Height are the initial size in cells (set automatically if 0).
	Width  int
	Height int

	// UserConfig is a custom user configuration. If nil, the user's config
	// file is loaded, falling back to defaults.
	UserConfig *config.UserConfig

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithWallpaper sets the wallpaper pattern.
func WithWallpaper(name string) Option {
	return func(o *Options) {
		o.Wallpaper = name
	}
}

// WithHideClock hides the taskbar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithHideTray hides the CPU and memory readout.
func WithHideTray(hide bool) Option {
	return func(o *Options) {
		o.HideTray = hide
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a desktop with the given options.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is anything that reports a terminal size, such as a sip session PTY.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized to pty.
func NewForPTY(pty PTY, opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) *Model {
	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, _, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	settings := config.ApplyOverrides(config.Overrides{
		ASCIIOnly: options.ASCIIOnly,
		HideClock: options.HideClock,
		HideTray:  options.HideTray,
		ThemeName: options.Theme,
		Wallpaper: options.Wallpaper,
	}, userConfig)

	if settings.Theme != "" {
		_ = theme.Initialize(settings.Theme)
	}

	return app.New(app.Options{
		Settings: settings,
		Logger:   options.Logger,
		Width:    options.Width,
		Height:   options.Height,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running a
// desktop:
//
//	p := tea.NewProgram(glassdesk.New(), glassdesk.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.FrameRate),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a button is held.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, *config.ValidationResult, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
