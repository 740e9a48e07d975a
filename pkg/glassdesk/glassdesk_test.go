package glassdesk

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/geometry"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewAppliesOptions(t *testing.T) {
	m := New(
		WithUserConfig(config.DefaultConfig()),
		WithSize(100, 40),
		WithWallpaper("dots"),
		WithHideTray(true),
		WithASCIIOnly(true),
	)

	if got := m.Wallpaper(); got != "dots" {
		t.Errorf("expected dots wallpaper, got %s", got)
	}
	s := m.Settings()
	if !s.HideTray || !s.ASCIIOnly {
		t.Errorf("expected tray hidden and ASCII glyphs, got %+v", s)
	}
	want := geometry.Viewport{Width: 800, Height: 640}
	if got := m.Manager().Viewport(); got != want {
		t.Errorf("expected viewport %+v, got %+v", want, got)
	}
}

func TestNewForPTY(t *testing.T) {
	m := NewForPTY(fakePTY{w: 120, h: 30}, WithUserConfig(config.DefaultConfig()), WithSize(1, 1))

	want := geometry.Viewport{Width: 960, Height: 480}
	if got := m.Manager().Viewport(); got != want {
		t.Errorf("expected the PTY size to win, got %+v", got)
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := New(WithUserConfig(config.DefaultConfig()), WithSize(80, 24))

	if FilterMouseMotion(m, tea.MouseMotionMsg{X: 3, Y: 3}) != nil {
		t.Error("expected idle motion to be dropped")
	}
	key := tea.KeyPressMsg{Code: 'a', Text: "a"}
	if FilterMouseMotion(m, key) == nil {
		t.Error("expected key presses to pass")
	}
}

func TestProgramOptions(t *testing.T) {
	if len(ProgramOptions()) != 2 {
		t.Errorf("expected 2 program options, got %d", len(ProgramOptions()))
	}
}
