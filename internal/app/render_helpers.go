package app

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/theme"
)

// span is a run of styled text starting at col.
type span struct {
	col, width int
	text       string
	style      lipgloss.Style
}

// paintRow renders one line of exactly width cells. Spans are drawn in column
// order; gaps and overlapped spans fall back to base.
func paintRow(width int, base lipgloss.Style, spans ...span) string {
	if width <= 0 {
		return ""
	}
	spans = slices.Clone(spans)
	slices.SortStableFunc(spans, func(a, b span) int { return cmp.Compare(a.col, b.col) })

	var b strings.Builder
	col := 0
	for _, s := range spans {
		if s.col < col || s.col >= width {
			continue
		}
		if s.col > col {
			b.WriteString(base.Render(strings.Repeat(" ", s.col-col)))
			col = s.col
		}
		w := min(s.width, width-col)
		if w <= 0 {
			continue
		}
		b.WriteString(s.style.Width(w).MaxWidth(w).Render(ansi.Truncate(s.text, w, "")))
		col += w
	}
	if col < width {
		b.WriteString(base.Render(strings.Repeat(" ", width-col)))
	}
	return b.String()
}

// clipToCanvas trims lines placed at (x, y) to a canvas of w x h cells.
func clipToCanvas(lines []string, x, y, w, h int) (string, int, int) {
	x, y = max(x, 0), max(y, 0)
	if x >= w || y >= h || len(lines) == 0 {
		return "", x, y
	}
	if len(lines) > h-y {
		lines = lines[:h-y]
	}
	maxWidth := w - x
	out := make([]string, len(lines))
	for i, l := range lines {
		if ansi.StringWidth(l) > maxWidth {
			l = ansi.Truncate(l, maxWidth, "") + "\x1b[0m"
		}
		out[i] = l
	}
	return strings.Join(out, "\n"), x, y
}

// wallpaperBg is the background color of a wallpaper row, so that icons can
// sit on it without a visible box.
func wallpaperBg(kind string, row, rows int) color.Color {
	primary, secondary := theme.Wallpaper()
	switch kind {
	case "stripes":
		if row%2 == 1 {
			return secondary
		}
	case "bliss":
		if row >= rows*3/5 {
			return secondary
		}
		return theme.WallpaperSky()
	}
	return primary
}

func (d *Desktop) renderWallpaper() *lipgloss.Layer {
	_, secondary := theme.Wallpaper()
	dot := "·"
	if d.settings.ASCIIOnly {
		dot = "."
	}

	lines := make([]string, d.height)
	for row := range d.height {
		base := lipgloss.NewStyle().Background(wallpaperBg(d.wallpaper, row, d.height))
		if d.wallpaper != "dots" {
			lines[row] = paintRow(d.width, base)
			continue
		}
		var spans []span
		for col := (row % 2) * 2; col < d.width; col += 4 {
			spans = append(spans, span{col: col, width: 1, text: dot, style: base.Foreground(secondary)})
		}
		lines[row] = paintRow(d.width, base, spans...)
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper")
}

// renderNotifications stacks up to three toasts in the top-right corner.
func (d *Desktop) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	notifY := 1
	notifSpacing := 4
	for i, notif := range d.notifications {
		if i >= 3 {
			break
		}

		var bgColor color.Color
		var icon string
		switch notif.Type {
		case "error":
			bgColor, icon = lipgloss.Color("#dc2626"), "!"
		case "warning":
			bgColor, icon = lipgloss.Color("#d97706"), "!"
		case "success":
			bgColor, icon = lipgloss.Color("#16a34a"), "+"
		default:
			bgColor, icon = theme.NotificationBg(), "i"
		}

		maxNotifWidth := min(max(d.width-8, 20), 60)
		message := ansi.Truncate(notif.Message, maxNotifWidth-10, "...")
		notifBox := lipgloss.NewStyle().
			Background(bgColor).
			Foreground(theme.NotificationFg()).
			Padding(1, 2).
			Bold(true).
			MaxWidth(maxNotifWidth).
			Render(fmt.Sprintf(" %s  %s ", icon, message))

		notifX := max(d.width-lipgloss.Width(notifBox)-2, 0)
		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(notifY+i*notifSpacing).Z(config.ZIndexNotifications).
			ID(notif.ID))
	}
	return layers
}
