// Package taskbar projects the window list into the bottom strip, lays out
// the launcher surfaces (desktop icons, start menu) and samples the tray.
package taskbar

import (
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/window"
)

const (
	// StartButtonWidth is the width of the start control at the left edge.
	StartButtonWidth = 56.0
	// EntryMaxWidth caps each window entry.
	EntryMaxWidth = 150.0
	// EntryGap separates entries.
	EntryGap = 8.0
	// TrayWidth is reserved at the right edge when the tray is shown.
	TrayWidth = 240.0
)

// Entry is the read-only view of one window.
type Entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Minimized bool   `json:"minimized"`
}

// Entries projects windows in the order given.
func Entries(ws []*window.Descriptor) []Entry {
	out := make([]Entry, 0, len(ws))
	for _, w := range ws {
		out = append(out, Entry{ID: w.ID, Title: w.Title, Minimized: w.Minimized})
	}
	return out
}

// Target is what a press on the strip landed on.
type Target int

const (
	Miss Target = iota
	StartButton
	WindowEntry
	Tray
	Strip
)

// Slot is one laid-out entry.
type Slot struct {
	Entry
	Rect geometry.Rect
}

// Bar is the laid-out taskbar.
type Bar struct {
	Rect  geometry.Rect
	Start geometry.Rect
	Slots []Slot
	Tray  geometry.Rect
}

// Layout places the strip at the bottom of v.
func Layout(v geometry.Viewport, entries []Entry, showTray bool) Bar {
	h := min(geometry.TaskbarHeight, v.Height)
	top := max(v.Height-h, 0)
	bar := Bar{
		Rect:  geometry.Rect{Point: geometry.Point{Y: top}, Size: geometry.Size{Width: v.Width, Height: h}},
		Start: geometry.Rect{Point: geometry.Point{Y: top}, Size: geometry.Size{Width: min(StartButtonWidth, v.Width), Height: h}},
	}

	right := v.Width
	if showTray {
		tw := min(TrayWidth, max(v.Width-bar.Start.Width, 0))
		bar.Tray = geometry.Rect{Point: geometry.Point{X: v.Width - tw, Y: top}, Size: geometry.Size{Width: tw, Height: h}}
		right = bar.Tray.X
	}

	if len(entries) == 0 {
		return bar
	}
	left := bar.Start.Width + EntryGap
	avail := max(right-left, 0)
	w := min(EntryMaxWidth, avail/float64(len(entries))-EntryGap)
	if w <= 0 {
		return bar
	}
	x := left
	for _, e := range entries {
		bar.Slots = append(bar.Slots, Slot{
			Entry: e,
			Rect:  geometry.Rect{Point: geometry.Point{X: x, Y: top}, Size: geometry.Size{Width: w, Height: h}},
		})
		x += w + EntryGap
	}
	return bar
}

// Hit classifies p. For WindowEntry the window id is returned.
func (b Bar) Hit(p geometry.Point) (Target, string) {
	if !b.Rect.Contains(p) {
		return Miss, ""
	}
	if b.Start.Contains(p) {
		return StartButton, ""
	}
	for _, s := range b.Slots {
		if s.Rect.Contains(p) {
			return WindowEntry, s.ID
		}
	}
	if b.Tray.Contains(p) {
		return Tray, ""
	}
	return Strip, ""
}
