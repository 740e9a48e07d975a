package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/contextmenu"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/dodorz/glassdesk/internal/window"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestDesktop(t *testing.T, o config.Overrides) (*Desktop, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)}
	d := New(Options{
		Settings: config.ApplyOverrides(o, nil),
		Sampler: func(context.Context, time.Time) (taskbar.Stats, error) {
			return taskbar.Stats{CPU: 12, Mem: 34}, nil
		},
		Clock: clk.Now,
	})
	d.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return d, clk
}

func click(d *Desktop, col, row int, btn tea.MouseButton) {
	d.Update(tea.MouseClickMsg{X: col, Y: row, Button: btn})
	d.Update(tea.MouseReleaseMsg{X: col, Y: row, Button: btn})
}

func key(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func screen(d *Desktop) string {
	return ansi.Strip(lipgloss.Sprint(d.Canvas().Render()))
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWindowSizeSetsViewport(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})

	want := geometry.Viewport{Width: 1280, Height: 800}
	if got := d.Manager().Viewport(); got != want {
		t.Errorf("expected viewport %+v, got %+v", want, got)
	}
}

func TestDoubleClickIconOpensWindow(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	wm := d.Manager()

	x, y, _, _ := wm.Grid().Cells(wm.IconRects()[0])
	click(d, x+1, y+1, tea.MouseLeft)
	if len(wm.Windows()) != 0 {
		t.Fatal("a single click should only select")
	}
	click(d, x+1, y+1, tea.MouseLeft)

	first := wm.Catalog().Icons[0]
	w, ok := wm.ByType(first.Type)
	if !ok {
		t.Fatalf("expected %s window after double click", first.Type)
	}
	if !strings.Contains(screen(d), w.Title) {
		t.Errorf("expected %q on screen", w.Title)
	}
}

func TestKeyboardActions(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	wm := d.Manager()

	d.Update(key(tea.KeyDown, 0))
	if wm.SelectedIcon() != 0 {
		t.Fatalf("expected first icon selected, got %d", wm.SelectedIcon())
	}
	d.Update(key(tea.KeyEnter, 0))
	if len(wm.Windows()) != 1 {
		t.Fatalf("expected one window, got %d", len(wm.Windows()))
	}

	d.Update(key('s', tea.ModCtrl))
	if !wm.StartMenuOpen() {
		t.Error("expected ctrl+s to open the start menu")
	}
	d.Update(key(tea.KeyEscape, 0))
	if wm.StartMenuOpen() {
		t.Error("expected esc to dismiss the start menu")
	}

	d.Update(key('w', tea.ModCtrl))
	if len(wm.Windows()) != 0 {
		t.Error("expected ctrl+w to close the top window")
	}

	if _, cmd := d.Update(key('c', tea.ModCtrl)); !isQuit(cmd) {
		t.Error("expected ctrl+c to quit")
	}
}

func TestTypingReachesMailForm(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	id := d.Manager().Open(content.Mail, "")

	for _, r := range "hiy" {
		d.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	d.Update(key(tea.KeyBackspace, 0))

	form, ok := d.Manager().Provider(id).(*content.MailForm)
	if !ok {
		t.Fatal("expected a mail form")
	}
	if form.Draft != "hi" {
		t.Errorf("expected draft %q, got %q", "hi", form.Draft)
	}
}

func TestSpaceActivatesIconWithoutInput(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	d.Update(key(tea.KeyDown, 0))
	d.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	if len(d.Manager().Windows()) != 1 {
		t.Errorf("expected space to open the selected icon, got %d windows", len(d.Manager().Windows()))
	}
}

func TestShutdownShowsScreenThenQuits(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	d.Manager().Shutdown()

	_, cmd := d.Update(TickerMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected the exit timer to be scheduled")
	}
	if !strings.Contains(screen(d), "Shutting down") {
		t.Error("expected the shutdown screen")
	}

	if _, cmd := d.Update(ShutdownDoneMsg{}); !isQuit(cmd) {
		t.Error("expected quit after the shutdown screen")
	}
}

func TestContextMenuChangesWallpaper(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{Wallpaper: "solid"})
	wm := d.Manager()

	click(d, 80, 20, tea.MouseRight)
	panel, ok := wm.ContextMenuLayout()
	if !ok {
		t.Fatal("expected the context menu to open")
	}
	var target contextmenu.Row
	for _, r := range panel.Rows {
		if r.Action == contextmenu.ChangeBackground {
			target = r
		}
	}
	col, row := wm.Grid().Cell(geometry.Point{X: target.Rect.X + 10, Y: target.Rect.Y + target.Rect.Height/2})
	click(d, col, row, tea.MouseLeft)

	if d.Wallpaper() != "dots" {
		t.Errorf("expected next wallpaper dots, got %s", d.Wallpaper())
	}
	if len(d.Notifications()) != 1 {
		t.Errorf("expected one notification, got %d", len(d.Notifications()))
	}
	if _, open := wm.ContextMenu(); open {
		t.Error("expected the context menu to close")
	}
}

func TestNotificationsExpire(t *testing.T) {
	d, clk := newTestDesktop(t, config.Overrides{})
	d.ShowNotification("hello", "info", time.Second)

	if !strings.Contains(screen(d), "hello") {
		t.Error("expected the toast on screen")
	}
	clk.now = clk.now.Add(2 * time.Second)
	d.Update(TickerMsg(clk.now))
	if len(d.Notifications()) != 0 {
		t.Errorf("expected toast to expire, got %d", len(d.Notifications()))
	}
}

func TestConfigReload(t *testing.T) {
	tests := []struct {
		name          string
		reload        config.Reload
		wantWallpaper string
		wantType      string
	}{
		{
			name: "applied",
			reload: func() config.Reload {
				cfg := config.DefaultConfig()
				cfg.Appearance.Wallpaper = "stripes"
				return config.Reload{Config: cfg, Validation: &config.ValidationResult{}}
			}(),
			wantWallpaper: "stripes",
			wantType:      "info",
		},
		{
			name:          "rejected",
			reload:        config.Reload{Err: errors.New("bad file")},
			wantWallpaper: "bliss",
			wantType:      "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDesktop(t, config.Overrides{})
			d.Update(ConfigReloadMsg(tt.reload))

			if d.Wallpaper() != tt.wantWallpaper {
				t.Errorf("expected wallpaper %s, got %s", tt.wantWallpaper, d.Wallpaper())
			}
			n := d.Notifications()
			if len(n) != 1 || n[0].Type != tt.wantType {
				t.Errorf("expected one %s notification, got %+v", tt.wantType, n)
			}
		})
	}
}

func TestReloadKeepsFlagOverrides(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{Wallpaper: "dots", HideClock: true})
	d.Update(ConfigReloadMsg(config.Reload{Config: config.DefaultConfig()}))

	if d.Wallpaper() != "dots" || !d.Settings().HideClock {
		t.Errorf("expected flag overrides to survive reload, got %s hideClock=%v", d.Wallpaper(), d.Settings().HideClock)
	}
}

func TestStatsShowInTray(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	msg := d.sampleCmd()()
	d.Update(msg)

	out := screen(d)
	if !strings.Contains(out, "CPU 12%") {
		t.Errorf("expected tray usage on screen")
	}
	if !strings.Contains(out, "3:04 PM") {
		t.Errorf("expected tray clock on screen")
	}
}

func TestHiddenTray(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{HideTray: true, HideClock: true})
	if d.sampleCmd() != nil {
		t.Error("expected no sampling with the tray hidden")
	}
	if strings.Contains(screen(d), "3:04 PM") {
		t.Error("expected no clock")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{})
	motion := tea.MouseMotionMsg{X: 5, Y: 5}

	if FilterMouseMotion(d, motion) != nil {
		t.Error("expected idle motion to be dropped")
	}
	d.Update(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	if FilterMouseMotion(d, motion) == nil {
		t.Error("expected motion during a press to pass")
	}
	if FilterMouseMotion(d, key('a', 0)) == nil {
		t.Error("expected keys to pass")
	}
}

func TestScreenShowsChrome(t *testing.T) {
	d, _ := newTestDesktop(t, config.Overrides{ASCIIOnly: true})
	d.Manager().Open(content.About, "")

	out := screen(d)
	for _, want := range []string{"Start", "About", "Mail"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q on screen", want)
		}
	}
}

func TestPaintRow(t *testing.T) {
	base := lipgloss.NewStyle()
	got := ansi.Strip(paintRow(10, base, span{col: 6, width: 3, text: "xyz!"}, span{col: 1, width: 2, text: "ab"}))
	if got != " ab   xyz " {
		t.Errorf("expected %q, got %q", " ab   xyz ", got)
	}
	if w := ansi.StringWidth(got); w != 10 {
		t.Errorf("expected width 10, got %d", w)
	}
}

func TestClipToCanvas(t *testing.T) {
	out, x, y := clipToCanvas([]string{"abcdef", "ghijkl", "mnopqr"}, 7, 8, 10, 10)
	if x != 7 || y != 8 {
		t.Errorf("expected origin (7,8), got (%d,%d)", x, y)
	}
	if got := ansi.Strip(out); got != "abc\nghi" {
		t.Errorf("expected clipped block, got %q", got)
	}
	if out, _, _ := clipToCanvas([]string{"a"}, 20, 0, 10, 10); out != "" {
		t.Error("expected off-canvas content to vanish")
	}
}

func TestWindowLayersStayBelowChrome(t *testing.T) {
	ws := []window.Descriptor{
		{ID: "mail", Z: 5_000_000},
		{ID: "blog", Z: 2_000_001},
		{ID: "about", Z: 101},
	}

	zs := windowLayers(ws)

	want := map[string]int{
		"about": config.ZIndexWindows,
		"blog":  config.ZIndexWindows + 1,
		"mail":  config.ZIndexWindows + 2,
	}
	for id, z := range want {
		if zs[id] != z {
			t.Errorf("expected %s at z %d, got %d", id, z, zs[id])
		}
		if zs[id] <= config.ZIndexIcons || zs[id] >= config.ZIndexTaskbar {
			t.Errorf("expected %s between icons and taskbar, got %d", id, zs[id])
		}
	}
}
