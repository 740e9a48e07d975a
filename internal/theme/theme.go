// Package theme provides the desktop color palette. Without a theme the
// classic blue desktop colors are used; with one, every surface is derived
// from the theme's ANSI palette.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrUnknownTheme is returned by Initialize when the name is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and the built-in palette is used.
// An unknown name falls back to the registry default and reports
// ErrUnknownTheme; custom theme files that fail to load are reported too,
// but never stop the theme from being applied.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	var errs []error
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			errs = append(errs, err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTheme, themeName))
	}
	return errors.Join(errs...)
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, or nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available lists registered theme IDs, custom ones included, sorted.
func Available() []string {
	tint.NewDefaultRegistry()
	if dir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(dir)
	}
	ids := tint.TintIDs()
	sort.Strings(ids)
	return ids
}

func pick(fallback string, themed func(*tint.Tint) color.Color) color.Color {
	if t := Current(); t != nil {
		if c := themed(t); c != nil {
			return c
		}
	}
	return lipgloss.Color(fallback)
}

// =============================================================================
// Wallpaper and icons
// =============================================================================

// Wallpaper returns the two colors wallpaper patterns alternate between.
func Wallpaper() (primary, secondary color.Color) {
	return pick("#3a6ea5", func(t *tint.Tint) color.Color { return t.Blue }),
		pick("#4c9a2a", func(t *tint.Tint) color.Color { return t.Green })
}

// WallpaperSky is the upper band of the bliss wallpaper.
func WallpaperSky() color.Color {
	return pick("#6b9bd8", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func IconFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// IconSelectedBg highlights the keyboard-selected icon.
func IconSelectedBg() color.Color {
	return pick("#316ac5", func(t *tint.Tint) color.Color { return t.Cyan })
}

// =============================================================================
// Windows
// =============================================================================

func WindowBg() color.Color {
	return pick("#ece9d8", func(t *tint.Tint) color.Color { return t.Bg })
}

func WindowFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Fg })
}

// TitleBar returns the title bar background for the focused or an unfocused
// window.
func TitleBar(focused bool) color.Color {
	if focused {
		return pick("#0a58d0", func(t *tint.Tint) color.Color { return t.Blue })
	}
	return pick("#7a96c8", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func TitleFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// CloseButton is the red close button background.
func CloseButton() color.Color {
	return pick("#d9482b", func(t *tint.Tint) color.Color { return t.Red })
}

// =============================================================================
// Taskbar and menus
// =============================================================================

func TaskbarBg() color.Color {
	return pick("#245edb", func(t *tint.Tint) color.Color { return t.Black })
}

func TaskbarFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.White })
}

func StartButtonBg() color.Color {
	return pick("#3c9a3c", func(t *tint.Tint) color.Color { return t.Green })
}

// TaskbarEntry returns the entry background; minimized entries are dimmed.
func TaskbarEntry(minimized, focused bool) color.Color {
	switch {
	case focused:
		return pick("#1e52b7", func(t *tint.Tint) color.Color { return t.Blue })
	case minimized:
		return pick("#5b7fd0", func(t *tint.Tint) color.Color { return t.BrightBlack })
	default:
		return pick("#3c81f3", func(t *tint.Tint) color.Color { return t.Purple })
	}
}

func TrayBg() color.Color {
	return pick("#0f8bec", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func MenuBg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Bg })
}

func MenuFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Fg })
}

func MenuHeaderBg() color.Color {
	return pick("#1c4fc4", func(t *tint.Tint) color.Color { return t.Blue })
}

// MenuDimmed is used for placeholder items and separators.
func MenuDimmed() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// =============================================================================
// Notifications and shutdown
// =============================================================================

func NotificationBg() color.Color {
	return pick("#fffbd6", func(t *tint.Tint) color.Color { return t.Yellow })
}

func NotificationFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

func ShutdownBg() color.Color {
	return pick("#003399", func(t *tint.Tint) color.Color { return t.Bg })
}

func ShutdownFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Fg })
}

// =============================================================================
// CLI
// =============================================================================

// CLITableHeader returns the header color for CLI tables.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the border color for CLI tables.
func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

// CLITableKey returns the highlight color for the first column of CLI tables.
func CLITableKey() color.Color {
	return lipgloss.Color("10")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
