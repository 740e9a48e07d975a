// Package window holds the state of one open pane and its pointer
// interaction protocol.
package window

import (
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
)

// ButtonWidth is the width of each title bar button, right-aligned in order
// minimize, maximize, close.
const ButtonWidth = 24.0

// Mode is the kind of pointer session a window is in.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "drag"
	case Resizing:
		return "resize"
	default:
		return "idle"
	}
}

// Interaction is transient per-window pointer state. It is zeroed when a
// session ends.
type Interaction struct {
	Mode      Mode
	PointerID int
	// Offset is pointer minus window origin at drag start.
	Offset geometry.Point
	// Anchor and Origin are the pointer and bounds at resize start.
	Anchor geometry.Point
	Origin geometry.Rect
}

// Descriptor is one open window.
type Descriptor struct {
	ID          string        `json:"id"`
	Type        content.Type  `json:"type"`
	Title       string        `json:"title"`
	Minimized   bool          `json:"minimized"`
	Z           int           `json:"z"`
	Bounds      geometry.Rect `json:"bounds"`
	Interaction Interaction   `json:"-"`
}

// New creates a window for t placed for the viewport v.
func New(id string, t content.Type, title string, z int, v geometry.Viewport) *Descriptor {
	if title == "" {
		title = t.DefaultTitle()
	}
	return &Descriptor{
		ID:     id,
		Type:   t,
		Title:  title,
		Z:      z,
		Bounds: geometry.InitialPlacement(v),
	}
}

// Active reports whether a pointer session is in progress.
func (d *Descriptor) Active() bool {
	return d.Interaction.Mode != Idle
}

// BeginDrag starts a drag for pointerID at the given pointer position.
// It fails when another session is already active on this window.
func (d *Descriptor) BeginDrag(pointerID int, at geometry.Point) bool {
	if d.Active() {
		return false
	}
	d.Interaction = Interaction{
		Mode:      Dragging,
		PointerID: pointerID,
		Offset:    at.Sub(d.Bounds.Point),
	}
	return true
}

// BeginResize starts a resize session anchored at the pointer position.
func (d *Descriptor) BeginResize(pointerID int, at geometry.Point) bool {
	if d.Active() {
		return false
	}
	d.Interaction = Interaction{
		Mode:      Resizing,
		PointerID: pointerID,
		Anchor:    at,
		Origin:    d.Bounds,
	}
	return true
}

// Move applies a pointer move from pointerID, clamped against v. Moves from
// any pointer other than the session owner, or with no session, are ignored.
func (d *Descriptor) Move(pointerID int, at geometry.Point, v geometry.Viewport) bool {
	in := d.Interaction
	if in.Mode == Idle || in.PointerID != pointerID {
		return false
	}

	switch in.Mode {
	case Dragging:
		next := geometry.ClampPosition(at.Sub(in.Offset), d.Bounds.Size, v)
		if next == d.Bounds.Point {
			return false
		}
		d.Bounds.Point = next
	case Resizing:
		delta := at.Sub(in.Anchor)
		next := geometry.ClampSize(geometry.Size{
			Width:  in.Origin.Width + delta.X,
			Height: in.Origin.Height + delta.Y,
		}, d.Bounds.Point, v)
		if next == d.Bounds.Size {
			return false
		}
		d.Bounds.Size = next
	}
	return true
}

// End closes the session owned by pointerID.
func (d *Descriptor) End(pointerID int) bool {
	if d.Interaction.Mode == Idle || d.Interaction.PointerID != pointerID {
		return false
	}
	d.Interaction = Interaction{}
	return true
}

// Reset drops any session regardless of owner.
func (d *Descriptor) Reset() {
	d.Interaction = Interaction{}
}

// Part is a region of a window.
type Part int

const (
	Outside Part = iota
	TitleBar
	MinimizeButton
	MaximizeButton
	CloseButton
	Body
)

func (p Part) String() string {
	switch p {
	case TitleBar:
		return "titlebar"
	case MinimizeButton:
		return "minimize"
	case MaximizeButton:
		return "maximize"
	case CloseButton:
		return "close"
	case Body:
		return "body"
	default:
		return "outside"
	}
}

// TitleBarRect is the draggable strip at the top.
func (d *Descriptor) TitleBarRect() geometry.Rect {
	return geometry.Rect{
		Point: d.Bounds.Point,
		Size:  geometry.Size{Width: d.Bounds.Width, Height: min(geometry.TitleBarHeight, d.Bounds.Height)},
	}
}

// BodyRect is everything under the title bar.
func (d *Descriptor) BodyRect() geometry.Rect {
	tb := d.TitleBarRect()
	return geometry.Rect{
		Point: geometry.Point{X: d.Bounds.X, Y: d.Bounds.Y + tb.Height},
		Size:  geometry.Size{Width: d.Bounds.Width, Height: d.Bounds.Height - tb.Height},
	}
}

// ButtonRect returns the rect of a title bar button.
func (d *Descriptor) ButtonRect(p Part) geometry.Rect {
	var slot int
	switch p {
	case CloseButton:
		slot = 1
	case MaximizeButton:
		slot = 2
	case MinimizeButton:
		slot = 3
	default:
		return geometry.Rect{}
	}
	tb := d.TitleBarRect()
	return geometry.Rect{
		Point: geometry.Point{X: tb.X + tb.Width - float64(slot)*ButtonWidth, Y: tb.Y},
		Size:  geometry.Size{Width: ButtonWidth, Height: tb.Height},
	}
}

// HitTest classifies p against the window chrome.
func (d *Descriptor) HitTest(p geometry.Point) Part {
	if !d.Bounds.Contains(p) {
		return Outside
	}
	for _, b := range []Part{CloseButton, MaximizeButton, MinimizeButton} {
		if d.ButtonRect(b).Contains(p) {
			return b
		}
	}
	if d.TitleBarRect().Contains(p) {
		return TitleBar
	}
	return Body
}
