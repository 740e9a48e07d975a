// Package config provides desktop constants, glyph sets and user settings.
package config

import (
	"time"

	"github.com/dodorz/glassdesk/internal/content"
)

// =============================================================================
// Timing
// =============================================================================

const (
	// NotificationDuration is how long a toast stays on screen
	NotificationDuration = 3 * time.Second

	// DefaultShutdownDelay is how long the shutdown screen shows before exit
	DefaultShutdownDelay = 1500 * time.Millisecond

	// DefaultDoubleClickMS is the icon double-click threshold in milliseconds
	DefaultDoubleClickMS = 300

	// FrameRate caps renders per second
	FrameRate = 60
)

// =============================================================================
// Z-Index Layers
// =============================================================================

// Windows draw at ZIndexWindows plus their rank in the manager's z order, so
// they stay below the taskbar however many times they are focused.
const (
	ZIndexWallpaper     = 0
	ZIndexIcons         = 1
	ZIndexWindows       = 10
	ZIndexTaskbar       = 1_000_000
	ZIndexStartMenu     = 1_000_001
	ZIndexContextMenu   = 1_000_002
	ZIndexNotifications = 1_000_003
	ZIndexShutdown      = 2_000_000
)

// =============================================================================
// Validation Limits
// =============================================================================

const (
	MinDoubleClickMS = 100
	MaxDoubleClickMS = 2000

	MinCellSize = 1.0
	MaxCellSize = 64.0

	MaxShutdownDelayMS = 10000
)

// =============================================================================
// Glyphs
// =============================================================================

const (
	WindowButtonClose         = "✕"
	WindowButtonCloseASCII    = "x"
	WindowButtonMinimize      = "─"
	WindowButtonMinimizeASCII = "_"
	WindowButtonMaximize      = "□"
	WindowButtonMaximizeASCII = "o"

	StartLabel      = "⊞ Start"
	StartLabelASCII = "Start"

	MenuArrow      = "›"
	MenuArrowASCII = ">"

	TraySeparator      = "│"
	TraySeparatorASCII = "|"
)

var iconGlyphs = map[content.Type]string{
	content.Mail:     "✉",
	content.Blog:     "✎",
	content.Chrome:   "◎",
	content.Projects: "▤",
	content.About:    "☺",
	content.Resume:   "▦",
}

var iconGlyphsASCII = map[content.Type]string{
	content.Mail:     "@",
	content.Blog:     "B",
	content.Chrome:   "e",
	content.Projects: "P",
	content.About:    "?",
	content.Resume:   "R",
}

// Glyphs is the character set the renderer draws with.
type Glyphs struct {
	Close     string
	Minimize  string
	Maximize  string
	Start     string
	Arrow     string
	Separator string
	ascii     bool
}

// GlyphsFor returns the Unicode set, or the ASCII fallback when ascii is set.
func GlyphsFor(ascii bool) Glyphs {
	if ascii {
		return Glyphs{
			Close:     WindowButtonCloseASCII,
			Minimize:  WindowButtonMinimizeASCII,
			Maximize:  WindowButtonMaximizeASCII,
			Start:     StartLabelASCII,
			Arrow:     MenuArrowASCII,
			Separator: TraySeparatorASCII,
			ascii:     true,
		}
	}
	return Glyphs{
		Close:     WindowButtonClose,
		Minimize:  WindowButtonMinimize,
		Maximize:  WindowButtonMaximize,
		Start:     StartLabel,
		Arrow:     MenuArrow,
		Separator: TraySeparator,
	}
}

// Icon returns the desktop icon glyph for t.
func (g Glyphs) Icon(t content.Type) string {
	set := iconGlyphs
	if g.ascii {
		set = iconGlyphsASCII
	}
	if s, ok := set[t]; ok {
		return s
	}
	return "*"
}
