package config

import (
	"time"

	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/taskbar"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII glyphs instead of Unicode symbols
	ASCIIOnly bool

	// HideClock hides the taskbar clock
	HideClock bool

	// HideTray hides the CPU and memory readout
	HideTray bool

	// ThemeName is the theme to load
	ThemeName string

	// Wallpaper overrides the wallpaper pattern
	Wallpaper string

	// CellWidth and CellHeight override the pixel grid (0 means use config)
	CellWidth  float64
	CellHeight float64

	// DoubleClick overrides the icon double-click threshold (0 means use config)
	DoubleClick time.Duration
}

// Settings is the resolved configuration one desktop runs with.
type Settings struct {
	Theme         string
	Wallpaper     string
	ASCIIOnly     bool
	HideClock     bool
	HideTray      bool
	Grid          geometry.Grid
	DoubleClick   time.Duration
	ShutdownDelay time.Duration
	Keymap        *Keymap
	Catalog       taskbar.Catalog
	Library       content.Library
	// Overrides are the flags the settings were resolved with, reapplied on
	// reload.
	Overrides Overrides
}

// Glyphs returns the glyph set for s.
func (s Settings) Glyphs() Glyphs {
	return GlyphsFor(s.ASCIIOnly)
}

// ApplyOverrides resolves CLI flag overrides against the user config, falling
// back to defaults. If userConfig is nil, only CLI flag values (when set) are
// applied over the defaults.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) Settings {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}
	a, b := userConfig.Appearance, userConfig.Behavior

	s := Settings{
		Theme:         a.Theme,
		Wallpaper:     a.Wallpaper,
		ASCIIOnly:     overrides.ASCIIOnly || a.ASCIIOnly,
		HideClock:     overrides.HideClock || a.HideClock,
		HideTray:      overrides.HideTray || a.HideTray,
		Grid:          geometry.Grid{CellWidth: a.CellWidth, CellHeight: a.CellHeight},
		DoubleClick:   time.Duration(b.DoubleClickMS) * time.Millisecond,
		ShutdownDelay: time.Duration(b.ShutdownDelayMS) * time.Millisecond,
		Keymap:        NewKeymap(userConfig.Keybindings),
		Catalog:       userConfig.Launcher,
		Library:       userConfig.Content,
		Overrides:     overrides,
	}

	if overrides.ThemeName != "" {
		s.Theme = overrides.ThemeName
	}
	if overrides.Wallpaper != "" {
		s.Wallpaper = overrides.Wallpaper
	}
	if overrides.CellWidth > 0 {
		s.Grid.CellWidth = min(max(overrides.CellWidth, MinCellSize), MaxCellSize)
	}
	if overrides.CellHeight > 0 {
		s.Grid.CellHeight = min(max(overrides.CellHeight, MinCellSize), MaxCellSize)
	}
	if overrides.DoubleClick > 0 {
		ms := min(max(overrides.DoubleClick.Milliseconds(), MinDoubleClickMS), MaxDoubleClickMS)
		s.DoubleClick = time.Duration(ms) * time.Millisecond
	}

	if s.Grid.CellWidth <= 0 || s.Grid.CellHeight <= 0 {
		s.Grid = geometry.DefaultGrid()
	}
	if s.DoubleClick <= 0 {
		s.DoubleClick = taskbar.DefaultDoubleClick
	}
	if s.ShutdownDelay <= 0 {
		s.ShutdownDelay = DefaultShutdownDelay
	}
	if len(userConfig.Keybindings) == 0 {
		s.Keymap = NewKeymap(DefaultKeybindings())
	}
	return s
}
