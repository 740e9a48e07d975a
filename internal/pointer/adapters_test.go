package pointer

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/glassdesk/internal/geometry"
)

func TestMouseAdapterGesture(t *testing.T) {
	a := NewMouseAdapter(geometry.DefaultGrid())

	if _, ok := a.Translate(tea.MouseMotionMsg{X: 1, Y: 1}); ok {
		t.Error("motion with no button held should be dropped")
	}

	ev, ok := a.Translate(tea.MouseClickMsg{X: 2, Y: 3, Button: tea.MouseLeft})
	if !ok {
		t.Fatal("left click should translate")
	}
	if ev.Phase != Start || ev.Button != Primary || ev.Source != Mouse {
		t.Errorf("unexpected start event %+v", ev)
	}
	if ev.At != (geometry.Point{X: 20, Y: 56}) {
		t.Errorf("expected cell centre (20,56), got %+v", ev.At)
	}

	ev, ok = a.Translate(tea.MouseMotionMsg{X: 4, Y: 3, Button: tea.MouseLeft})
	if !ok || ev.Phase != Move {
		t.Fatalf("expected move while held, got %+v ok=%v", ev, ok)
	}

	ev, ok = a.Translate(tea.MouseReleaseMsg{X: 4, Y: 3, Button: tea.MouseLeft})
	if !ok || ev.Phase != End {
		t.Fatalf("expected end on release, got %+v ok=%v", ev, ok)
	}
	if a.Pressed() {
		t.Error("adapter should not be pressed after release")
	}

	if _, ok := a.Translate(tea.MouseReleaseMsg{X: 4, Y: 3}); ok {
		t.Error("stray release should be dropped")
	}
}

func TestMouseAdapterButtons(t *testing.T) {
	tests := []struct {
		name string
		in   tea.MouseButton
		want Button
		ok   bool
	}{
		{"left", tea.MouseLeft, Primary, true},
		{"right", tea.MouseRight, Secondary, true},
		{"middle", tea.MouseMiddle, Middle, true},
		{"wheel", tea.MouseWheelUp, NoButton, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewMouseAdapter(geometry.DefaultGrid())
			ev, ok := a.Translate(tea.MouseClickMsg{Button: tt.in})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && ev.Button != tt.want {
				t.Errorf("button = %v, want %v", ev.Button, tt.want)
			}
		})
	}
}

func TestMouseAdapterBlurCancels(t *testing.T) {
	a := NewMouseAdapter(geometry.DefaultGrid())
	a.Translate(tea.MouseClickMsg{Button: tea.MouseLeft})
	ev, ok := a.Translate(tea.BlurMsg{})
	if !ok || ev.Phase != Cancel {
		t.Fatalf("expected cancel on blur, got %+v ok=%v", ev, ok)
	}
	if _, ok := a.Translate(tea.BlurMsg{}); ok {
		t.Error("blur with nothing held should be dropped")
	}
}

func TestTouchAdapterSingleFinger(t *testing.T) {
	var a TouchAdapter
	at := geometry.Point{X: 10, Y: 10}

	ev, ok := a.Translate(TouchPoint{ID: 7, At: at, Phase: Start})
	if !ok || ev.PointerID != TouchPointerBase+7 || ev.Button != Primary || ev.Source != Touch {
		t.Fatalf("unexpected first touch %+v ok=%v", ev, ok)
	}

	if _, ok := a.Translate(TouchPoint{ID: 8, At: at, Phase: Start}); ok {
		t.Error("second finger must be ignored")
	}
	if _, ok := a.Translate(TouchPoint{ID: 8, At: at, Phase: Move}); ok {
		t.Error("moves from the second finger must be ignored")
	}

	if ev, ok := a.Translate(TouchPoint{ID: 7, At: at, Phase: Move}); !ok || ev.Phase != Move {
		t.Errorf("expected move from tracked finger, got %+v ok=%v", ev, ok)
	}
	if ev, ok := a.Translate(TouchPoint{ID: 7, At: at, Phase: End}); !ok || ev.Phase != End {
		t.Errorf("expected end from tracked finger, got %+v ok=%v", ev, ok)
	}

	if _, ok := a.Translate(TouchPoint{ID: 8, At: at, Phase: Start}); !ok {
		t.Error("a new finger should be tracked after the first lifts")
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range []Phase{Start, Move, End, Cancel} {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
	}
	if _, ok := ParsePhase("hover"); ok {
		t.Error("unknown phase should not parse")
	}
}
