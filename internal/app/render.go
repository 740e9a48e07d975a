package app

import (
	"cmp"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/dodorz/glassdesk/internal/theme"
	"github.com/dodorz/glassdesk/internal/window"
)

// Canvas composes the current frame.
func (d *Desktop) Canvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.width, d.height)

	var layers []*lipgloss.Layer
	if d.wm.IsShutdown() {
		layers = append(layers, d.renderShutdown())
	} else {
		layers = append(layers, d.renderWallpaper())
		layers = append(layers, d.renderIcons()...)
		layers = append(layers, d.renderWindows()...)
		layers = append(layers, d.renderTaskbar())
		if d.wm.StartMenuOpen() {
			layers = append(layers, d.renderStartMenu())
		}
		if l := d.renderContextMenu(); l != nil {
			layers = append(layers, l)
		}
		layers = append(layers, d.renderNotifications()...)
	}

	slices.SortStableFunc(layers, func(a, b *lipgloss.Layer) int {
		return cmp.Compare(a.GetZ(), b.GetZ())
	})
	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

func (d *Desktop) View() tea.View {
	var view tea.View
	if d.width > 0 && d.height > 0 {
		view.SetContent(lipgloss.Sprint(d.Canvas().Render()))
	}
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// windowLayers maps each window id to its compose z: ZIndexWindows plus the
// window's rank by manager z.
func windowLayers(ws []window.Descriptor) map[string]int {
	order := slices.Clone(ws)
	slices.SortStableFunc(order, func(a, b window.Descriptor) int {
		return cmp.Compare(a.Z, b.Z)
	})
	out := make(map[string]int, len(order))
	for rank, w := range order {
		out[w.ID] = config.ZIndexWindows + rank
	}
	return out
}

// renderWindows draws every visible window in manager z order. The body
// starts exactly at the cell origin the manager uses to route provider
// presses.
func (d *Desktop) renderWindows() []*lipgloss.Layer {
	grid := d.wm.Grid()
	glyphs := d.settings.Glyphs()
	top, hasTop := d.wm.Topmost()

	windows := d.wm.Windows()
	zs := windowLayers(windows)

	var layers []*lipgloss.Layer
	for _, w := range windows {
		if w.Minimized {
			continue
		}
		wx, wy, ww, wh := grid.Cells(w.Bounds)
		if ww == 0 || wh == 0 {
			continue
		}
		_, by, _, bh := grid.Cells(w.BodyRect())
		titleRows := min(max(by-wy, 1), wh)

		focused := hasTop && top.ID == w.ID
		titleStyle := lipgloss.NewStyle().
			Background(theme.TitleBar(focused)).
			Foreground(theme.TitleFg()).
			Bold(true)
		buttonStyle := titleStyle.Align(lipgloss.Center)

		buttons := []struct {
			part  window.Part
			glyph string
			style lipgloss.Style
		}{
			{window.MinimizeButton, glyphs.Minimize, buttonStyle},
			{window.MaximizeButton, glyphs.Maximize, buttonStyle},
			{window.CloseButton, glyphs.Close, buttonStyle.Background(theme.CloseButton())},
		}
		titleSpans := []span{{col: 1, width: ww - 1, text: w.Title, style: titleStyle}}
		buttonRow := make([]span, 0, len(buttons))
		for _, b := range buttons {
			bx, _, bw, _ := grid.Cells(w.ButtonRect(b.part))
			buttonRow = append(buttonRow, span{col: bx - wx, width: bw, text: b.glyph, style: b.style})
		}
		if len(buttonRow) > 0 {
			titleSpans[0].width = max(buttonRow[0].col-1, 0)
		}

		lines := make([]string, 0, wh)
		lines = append(lines, paintRow(ww, titleStyle, append(titleSpans, buttonRow...)...))
		for len(lines) < titleRows {
			lines = append(lines, paintRow(ww, titleStyle))
		}

		bodyStyle := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(theme.WindowFg())
		var body []string
		if p := d.wm.Provider(w.ID); p != nil && bh > 0 {
			body = strings.Split(p.Render(ww, bh), "\n")
		}
		for i := 0; len(lines) < wh; i++ {
			text := ""
			if i < len(body) {
				text = body[i]
			}
			lines = append(lines, paintRow(ww, bodyStyle, span{width: ww, text: text, style: bodyStyle}))
		}

		clipped, x, y := clipToCanvas(lines, wx, wy, d.width, d.height)
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).X(x).Y(y).Z(zs[w.ID]).ID(w.ID))
	}
	return layers
}

// renderIcons draws the desktop shortcuts over the wallpaper.
func (d *Desktop) renderIcons() []*lipgloss.Layer {
	grid := d.wm.Grid()
	glyphs := d.settings.Glyphs()
	icons := d.wm.Catalog().Icons
	selected := d.wm.SelectedIcon()

	var layers []*lipgloss.Layer
	for i, r := range d.wm.IconRects() {
		if i >= len(icons) {
			break
		}
		x, y, w, h := grid.Cells(r)
		if w == 0 || h == 0 {
			continue
		}
		lines := make([]string, h)
		for row := range h {
			base := lipgloss.NewStyle().Background(wallpaperBg(d.wallpaper, y+row, d.height))
			if i == selected {
				base = base.Background(theme.IconSelectedBg())
			}
			style := base.Foreground(theme.IconFg()).Align(lipgloss.Center)
			text := ""
			switch row {
			case h/2 - 1:
				text = glyphs.Icon(icons[i].Type)
			case h/2 + 1:
				text = icons[i].Label
			}
			lines[row] = paintRow(w, base, span{width: w, text: text, style: style})
		}
		clipped, cx, cy := clipToCanvas(lines, x, y, d.width, d.height)
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).X(cx).Y(cy).Z(config.ZIndexIcons).ID("icon-"+string(icons[i].Type)))
	}
	return layers
}

// renderTaskbar draws the strip with labels on its middle row.
func (d *Desktop) renderTaskbar() *lipgloss.Layer {
	grid := d.wm.Grid()
	bar := d.wm.TaskbarLayout()
	_, ty, tw, th := grid.Cells(bar.Rect)
	glyphs := d.settings.Glyphs()
	top, hasTop := d.wm.Topmost()

	base := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	var spans []span

	sx, _, sw, _ := grid.Cells(bar.Start)
	spans = append(spans, span{col: sx, width: sw, text: glyphs.Start,
		style: base.Background(theme.StartButtonBg()).Bold(true).Align(lipgloss.Center)})

	for _, s := range bar.Slots {
		x, _, w, _ := grid.Cells(s.Rect)
		focused := hasTop && top.ID == s.ID
		spans = append(spans, span{col: x, width: w, text: " " + s.Title,
			style: base.Background(theme.TaskbarEntry(s.Minimized, focused))})
	}

	if tray := d.trayText(glyphs); tray != "" && bar.Tray.Width > 0 {
		x, _, w, _ := grid.Cells(bar.Tray)
		spans = append(spans, span{col: x, width: w, text: tray,
			style: base.Background(theme.TrayBg()).Align(lipgloss.Right)})
	}

	lines := make([]string, th)
	for row := range th {
		if row == th/2 {
			lines[row] = paintRow(tw, base, spans...)
			continue
		}
		blank := make([]span, len(spans))
		for i, s := range spans {
			s.text = ""
			blank[i] = s
		}
		lines[row] = paintRow(tw, base, blank...)
	}
	clipped, x, y := clipToCanvas(lines, 0, ty, d.width, d.height)
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexTaskbar).ID("taskbar")
}

func (d *Desktop) trayText(glyphs config.Glyphs) string {
	var parts []string
	if !d.settings.HideTray {
		parts = append(parts, d.stats.Usage())
	}
	if !d.settings.HideClock {
		clock, _ := taskbar.Clock(d.clock())
		parts = append(parts, clock)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " "+glyphs.Separator+" ") + " "
}

// renderStartMenu draws the two-pane launcher anchored above the start button.
func (d *Desktop) renderStartMenu() *lipgloss.Layer {
	grid := d.wm.Grid()
	menu := d.wm.StartMenuLayout()
	mx, my, mw, mh := grid.Cells(menu.Rect)
	_, _, _, hh := grid.Cells(menu.Header)
	glyphs := d.settings.Glyphs()

	base := lipgloss.NewStyle().Background(theme.MenuBg()).Foreground(theme.MenuFg())
	header := base.Background(theme.MenuHeaderBg()).Foreground(theme.TitleFg()).Bold(true)

	rows := make([][]span, mh)
	for _, s := range menu.Items {
		x, y, w, h := grid.Cells(s.Rect)
		row := y - my + h/2
		if row < 0 || row >= mh {
			continue
		}
		style := base
		text := " " + s.Item.Label
		switch s.Item.Kind {
		case taskbar.PlaceholderItem:
			style = style.Foreground(theme.MenuDimmed())
		case taskbar.OpenItem:
			text = " " + glyphs.Icon(s.Item.Type) + " " + s.Item.Label
		case taskbar.ShutdownItem:
			style = style.Bold(true)
		}
		rows[row] = append(rows[row], span{col: x - mx, width: w, text: text, style: style})
	}

	lines := make([]string, mh)
	for row := range mh {
		if row < hh {
			text := ""
			if row == hh/2 {
				text = " " + glyphs.Arrow + " Guest"
			}
			lines[row] = paintRow(mw, header, span{width: mw, text: text, style: header})
			continue
		}
		lines[row] = paintRow(mw, base, rows[row]...)
	}
	clipped, x, y := clipToCanvas(lines, mx, my, d.width, d.height)
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexStartMenu).ID("start-menu")
}

// renderContextMenu draws the right-click menu, or nil when it is closed.
func (d *Desktop) renderContextMenu() *lipgloss.Layer {
	panel, ok := d.wm.ContextMenuLayout()
	if !ok {
		return nil
	}
	grid := d.wm.Grid()
	px, py, pw, ph := grid.Cells(panel.Rect)
	glyphs := d.settings.Glyphs()

	base := lipgloss.NewStyle().Background(theme.MenuBg()).Foreground(theme.MenuFg())
	lines := make([]string, ph)
	for _, r := range panel.Rows {
		_, y, _, h := grid.Cells(r.Rect)
		row := y - py + h/2
		if row < 0 || row >= ph {
			continue
		}
		if r.Separator {
			sep := strings.Repeat(glyphs.Minimize, max(pw-2, 0))
			lines[row] = paintRow(pw, base, span{col: 1, width: pw - 2, text: sep, style: base.Foreground(theme.MenuDimmed())})
			continue
		}
		lines[row] = paintRow(pw, base, span{col: 1, width: pw - 1, text: r.Label, style: base})
	}
	for i, l := range lines {
		if l == "" {
			lines[i] = paintRow(pw, base)
		}
	}
	clipped, x, y := clipToCanvas(lines, px, py, d.width, d.height)
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexContextMenu).ID("context-menu")
}

// renderShutdown is the farewell screen shown until the program exits.
func (d *Desktop) renderShutdown() *lipgloss.Layer {
	base := lipgloss.NewStyle().Background(theme.ShutdownBg()).Foreground(theme.ShutdownFg())
	lines := make([]string, d.height)
	for row := range d.height {
		if row == d.height/2 {
			lines[row] = paintRow(d.width, base, span{width: d.width, text: "Shutting down...", style: base.Bold(true).Align(lipgloss.Center)})
			continue
		}
		lines[row] = paintRow(d.width, base)
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(0).Y(0).Z(config.ZIndexShutdown).ID("shutdown")
}
