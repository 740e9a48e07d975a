package taskbar

import (
	"time"

	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
)

// DefaultDoubleClick is the window in which two clicks on one icon open it.
const DefaultDoubleClick = 300 * time.Millisecond

// Icon layout on the desktop surface.
const (
	IconInset  = 16.0
	IconWidth  = 96.0
	IconHeight = 80.0
	IconGap    = 16.0
)

// Start menu layout.
const (
	MenuWidth        = 520.0
	MenuHeight       = 550.0
	MenuHeaderHeight = 64.0
	MenuItemHeight   = 48.0
	MenuFooterHeight = 48.0
)

// Icon is a desktop shortcut.
type Icon struct {
	Type  content.Type `toml:"type" json:"type"`
	Label string       `toml:"label" json:"label"`
}

// ItemKind is what a start menu item does.
type ItemKind string

const (
	// OpenItem opens its content type.
	OpenItem ItemKind = "open"
	// PlaceholderItem is listed but does nothing.
	PlaceholderItem ItemKind = "placeholder"
	// ShutdownItem ends the session.
	ShutdownItem ItemKind = "shutdown"
)

// MenuItem is one start menu entry. Column 0 is the left pane.
type MenuItem struct {
	Label  string       `toml:"label" json:"label"`
	Kind   ItemKind     `toml:"kind" json:"kind"`
	Type   content.Type `toml:"type,omitempty" json:"type,omitempty"`
	Column int          `toml:"column" json:"column"`
}

// Catalog is the launchable surface. It is configuration, not state.
type Catalog struct {
	Icons []Icon     `toml:"icons"`
	Menu  []MenuItem `toml:"start_menu"`
}

// DefaultCatalog mirrors a classic desktop.
func DefaultCatalog() Catalog {
	return Catalog{
		Icons: []Icon{
			{Type: content.Mail, Label: "Mail"},
			{Type: content.Blog, Label: "Blog"},
			{Type: content.Chrome, Label: "Internet Explorer"},
			{Type: content.Projects, Label: "Projects"},
			{Type: content.Resume, Label: "Resume"},
		},
		Menu: []MenuItem{
			{Label: "About Me", Kind: OpenItem, Type: content.About},
			{Label: "Projects", Kind: OpenItem, Type: content.Projects},
			{Label: "Resume", Kind: OpenItem, Type: content.Resume},
			{Label: "Documents", Kind: PlaceholderItem, Column: 1},
			{Label: "Pictures", Kind: PlaceholderItem, Column: 1},
			{Label: "Contact", Kind: OpenItem, Type: content.Mail, Column: 1},
			{Label: "Shut down", Kind: ShutdownItem},
		},
	}
}

// IconRects lays icons out top to bottom, wrapping into a new column when the
// area above the taskbar runs out.
func IconRects(n int, v geometry.Viewport) []geometry.Rect {
	out := make([]geometry.Rect, 0, n)
	x, y := IconInset, IconInset
	bottom := v.Usable()
	for range n {
		if y+IconHeight > bottom && y > IconInset {
			x += IconWidth + IconGap
			y = IconInset
		}
		out = append(out, geometry.Rect{Point: geometry.Point{X: x, Y: y}, Size: geometry.Size{Width: IconWidth, Height: IconHeight}})
		y += IconHeight + IconGap
	}
	return out
}

// HitIcon returns the icon index under p, or -1.
func HitIcon(rects []geometry.Rect, p geometry.Point) int {
	for i, r := range rects {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// Menu is the laid-out start menu. Items keeps catalog indexes.
type Menu struct {
	Rect   geometry.Rect
	Header geometry.Rect
	Items  []MenuSlot
}

// MenuSlot is one laid-out menu item.
type MenuSlot struct {
	Index int
	Item  MenuItem
	Rect  geometry.Rect
}

// MenuLayout anchors the start menu to the bottom-left corner above the
// taskbar, shrunk to fit v.
func MenuLayout(items []MenuItem, v geometry.Viewport) Menu {
	w := min(MenuWidth, max(v.Width, 0))
	h := min(MenuHeight, v.Usable())
	top := max(v.Usable()-h, 0)
	m := Menu{
		Rect:   geometry.Rect{Point: geometry.Point{Y: top}, Size: geometry.Size{Width: w, Height: h}},
		Header: geometry.Rect{Point: geometry.Point{Y: top}, Size: geometry.Size{Width: w, Height: min(MenuHeaderHeight, h)}},
	}

	colW := w / 2
	rows := [2]float64{top + m.Header.Height, top + m.Header.Height}
	footer := top + h - MenuFooterHeight
	for i, it := range items {
		var r geometry.Rect
		if it.Kind == ShutdownItem {
			r = geometry.Rect{Point: geometry.Point{X: colW, Y: footer}, Size: geometry.Size{Width: colW, Height: MenuFooterHeight}}
		} else {
			col := min(max(it.Column, 0), 1)
			y := rows[col]
			if y+MenuItemHeight > footer {
				continue
			}
			r = geometry.Rect{Point: geometry.Point{X: float64(col) * colW, Y: y}, Size: geometry.Size{Width: colW, Height: MenuItemHeight}}
			rows[col] += MenuItemHeight
		}
		if r.Y < top {
			continue
		}
		m.Items = append(m.Items, MenuSlot{Index: i, Item: it, Rect: r})
	}
	return m
}

// Hit returns the item under p. inside reports whether p hit the panel at all.
func (m Menu) Hit(p geometry.Point) (slot MenuSlot, hit, inside bool) {
	if !m.Rect.Contains(p) {
		return MenuSlot{}, false, false
	}
	for _, s := range m.Items {
		if s.Rect.Contains(p) {
			return s, true, true
		}
	}
	return MenuSlot{}, false, true
}

// ClickCounter detects double clicks on the same key.
type ClickCounter struct {
	Threshold time.Duration
	key       int
	last      time.Time
	count     int
}

// Click records a click on key at now and reports whether it completes a
// double click. A completed double click resets the counter.
func (c *ClickCounter) Click(key int, now time.Time) bool {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultDoubleClick
	}
	if c.count > 0 && key == c.key && now.Sub(c.last) <= threshold {
		c.count++
	} else {
		c.count = 1
	}
	c.key = key
	c.last = now
	if c.count >= 2 {
		c.count = 0
		return true
	}
	return false
}
