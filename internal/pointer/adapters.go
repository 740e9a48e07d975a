package pointer

import (
	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/glassdesk/internal/geometry"
)

// MouseAdapter translates Bubble Tea mouse messages. Cell coordinates are
// reported at the centre of the cell.
type MouseAdapter struct {
	Grid geometry.Grid
	down bool
}

// NewMouseAdapter returns an adapter over g.
func NewMouseAdapter(g geometry.Grid) *MouseAdapter {
	return &MouseAdapter{Grid: g}
}

// Pressed reports whether a button is currently held.
func (a *MouseAdapter) Pressed() bool {
	return a.down
}

// Translate converts msg. The second result is false for messages that are
// not pointer input, wheel events, and motion with no button held.
func (a *MouseAdapter) Translate(msg tea.Msg) (Event, bool) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		btn := mouseButton(mouse.Button)
		if btn == NoButton {
			return Event{}, false
		}
		a.down = true
		return a.event(Start, mouse, btn), true

	case tea.MouseMotionMsg:
		if !a.down {
			return Event{}, false
		}
		return a.event(Move, msg.Mouse(), NoButton), true

	case tea.MouseReleaseMsg:
		if !a.down {
			return Event{}, false
		}
		a.down = false
		mouse := msg.Mouse()
		return a.event(End, mouse, mouseButton(mouse.Button)), true

	case tea.BlurMsg:
		// The terminal lost focus mid-gesture; the release will never arrive.
		if !a.down {
			return Event{}, false
		}
		a.down = false
		return Event{Phase: Cancel, PointerID: MousePointerID, Source: Mouse}, true
	}
	return Event{}, false
}

func (a *MouseAdapter) event(phase Phase, m tea.Mouse, btn Button) Event {
	return Event{
		Phase:     phase,
		PointerID: MousePointerID,
		At:        a.Grid.Center(m.X, m.Y),
		Button:    btn,
		Source:    Mouse,
	}
}

func mouseButton(b tea.MouseButton) Button {
	switch b {
	case tea.MouseLeft:
		return Primary
	case tea.MouseRight:
		return Secondary
	case tea.MouseMiddle:
		return Middle
	default:
		return NoButton
	}
}

// TouchPoint is one platform touch sample in viewport pixels.
type TouchPoint struct {
	ID    int
	At    geometry.Point
	Phase Phase
}

// TouchAdapter follows the first finger down and ignores the rest until it
// lifts.
type TouchAdapter struct {
	active   int
	tracking bool
}

// Translate converts a touch sample.
func (a *TouchAdapter) Translate(tp TouchPoint) (Event, bool) {
	if tp.Phase == Start {
		if a.tracking && tp.ID != a.active {
			return Event{}, false
		}
		a.tracking = true
		a.active = tp.ID
		return a.event(tp, Primary), true
	}

	if !a.tracking || tp.ID != a.active {
		return Event{}, false
	}
	if tp.Phase == End || tp.Phase == Cancel {
		a.tracking = false
	}
	return a.event(tp, NoButton), true
}

func (a *TouchAdapter) event(tp TouchPoint, btn Button) Event {
	return Event{
		Phase:     tp.Phase,
		PointerID: TouchPointerBase + tp.ID,
		At:        tp.At,
		Button:    btn,
		Source:    Touch,
	}
}
