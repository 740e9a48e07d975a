// Package geometry computes window sizes and positions against the current
// viewport and the strip reserved for the taskbar.
//
// All values are viewport pixels. Every function here is pure and saturates
// at zero, so a viewport smaller than a window never yields a negative or NaN
// coordinate.
package geometry

import "math"

// =============================================================================
// Reserved chrome
// =============================================================================

const (
	// TaskbarHeight is the height of the strip pinned to the bottom edge.
	TaskbarHeight = 48.0

	// BottomMargin keeps a dragged window's top edge clear of the taskbar.
	BottomMargin = 32.0

	// TitleBarHeight is the height of the draggable strip at the top of a window.
	TitleBarHeight = 32.0

	// MobileMaxWidth is the widest viewport still treated as a phone.
	MobileMaxWidth = 640.0

	// TabletMaxWidth is the widest viewport still treated as a tablet.
	TabletMaxWidth = 1024.0

	// MinWindowWidth and MinWindowHeight bound resize from below.
	MinWindowWidth  = 200.0
	MinWindowHeight = 150.0
)

// Class is a coarse viewport size bucket.
type Class int

const (
	// Desktop is any viewport wider than TabletMaxWidth.
	Desktop Class = iota
	// Tablet covers (MobileMaxWidth, TabletMaxWidth].
	Tablet
	// Mobile covers widths up to and including MobileMaxWidth.
	Mobile
)

func (c Class) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// Point is a viewport coordinate.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	Point
	Size
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Viewport is the drawable area, including the taskbar strip.
type Viewport struct {
	Width, Height float64
}

// Class buckets the viewport by width.
func (v Viewport) Class() Class {
	w := nonNeg(sane(v.Width))
	switch {
	case w <= MobileMaxWidth:
		return Mobile
	case w <= TabletMaxWidth:
		return Tablet
	default:
		return Desktop
	}
}

// Usable is the height above the taskbar.
func (v Viewport) Usable() float64 {
	return nonNeg(sane(v.Height) - TaskbarHeight)
}

// DefaultSize is the size a freshly opened window gets in this viewport.
func DefaultSize(v Viewport) Size {
	w, h := nonNeg(sane(v.Width)), nonNeg(sane(v.Height))
	switch v.Class() {
	case Mobile:
		return Size{Width: w * 0.92, Height: h * 0.70}
	case Tablet:
		return Size{Width: math.Min(820, w*0.85), Height: math.Min(700, h*0.75)}
	default:
		return Size{Width: 800, Height: 600}
	}
}

// InitialPlacement sizes a new window for v and centres it in the area above
// the taskbar.
func InitialPlacement(v Viewport) Rect {
	size := DefaultSize(v)
	return Rect{
		Point: Point{
			X: nonNeg((nonNeg(sane(v.Width)) - size.Width) / 2),
			Y: nonNeg((nonNeg(sane(v.Height)) - size.Height - TaskbarHeight) / 2),
		},
		Size: size,
	}
}

// ClampPosition constrains the top-left corner of a window of the given size
// so the window stays inside v: x in [0, width-w], y in
// [0, height-TaskbarHeight-BottomMargin-h]. Each upper bound saturates at 0.
func ClampPosition(p Point, size Size, v Viewport) Point {
	maxX := nonNeg(sane(v.Width) - sane(size.Width))
	maxY := nonNeg(sane(v.Height) - TaskbarHeight - BottomMargin - sane(size.Height))
	return Point{
		X: clamp(sane(p.X), 0, maxX),
		Y: clamp(sane(p.Y), 0, maxY),
	}
}

// ClampSize constrains a window anchored at origin to at least the minimum
// window size and at most what fits between origin and the viewport edges
// above the taskbar. When the viewport cannot fit the minimum, the maximum wins.
func ClampSize(s Size, origin Point, v Viewport) Size {
	maxW := nonNeg(sane(v.Width) - sane(origin.X))
	maxH := nonNeg(sane(v.Height) - TaskbarHeight - sane(origin.Y))
	return Size{
		Width:  clamp(sane(s.Width), math.Min(MinWindowWidth, maxW), maxW),
		Height: clamp(sane(s.Height), math.Min(MinWindowHeight, maxH), maxH),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func nonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// sane maps NaN and infinities to 0.
func sane(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
