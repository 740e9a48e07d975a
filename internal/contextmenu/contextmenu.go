// Package contextmenu is the right-click overlay on the desktop surface.
package contextmenu

import "github.com/dodorz/glassdesk/internal/geometry"

const (
	MinWidth        = 200.0
	ItemHeight      = 36.0
	SeparatorHeight = 9.0
)

// Action is what an item does when selected.
type Action int

const (
	None Action = iota
	Refresh
	ChangeBackground
	Properties
)

func (a Action) String() string {
	switch a {
	case Refresh:
		return "refresh"
	case ChangeBackground:
		return "change-background"
	case Properties:
		return "properties"
	default:
		return "none"
	}
}

// Item is a menu row. A Separator has no action.
type Item struct {
	Label     string
	Action    Action
	Separator bool
}

// DefaultItems is the desktop context menu.
func DefaultItems() []Item {
	return []Item{
		{Label: "Refresh", Action: Refresh},
		{Separator: true},
		{Label: "Change Background", Action: ChangeBackground},
		{Label: "Properties", Action: Properties},
	}
}

// Row is one laid-out item.
type Row struct {
	Item
	Rect geometry.Rect
}

// Panel is the laid-out menu.
type Panel struct {
	Rect geometry.Rect
	Rows []Row
}

// Layout opens the panel at anchor and shifts it back inside v when it would
// spill over the right edge or the taskbar.
func Layout(anchor geometry.Point, items []Item, v geometry.Viewport) Panel {
	h := 0.0
	for _, it := range items {
		if it.Separator {
			h += SeparatorHeight
		} else {
			h += ItemHeight
		}
	}
	size := geometry.Size{Width: MinWidth, Height: h}
	origin := geometry.Point{
		X: max(min(anchor.X, v.Width-size.Width), 0),
		Y: max(min(anchor.Y, v.Usable()-size.Height), 0),
	}

	p := Panel{Rect: geometry.Rect{Point: origin, Size: size}}
	y := origin.Y
	for _, it := range items {
		rh := ItemHeight
		if it.Separator {
			rh = SeparatorHeight
		}
		p.Rows = append(p.Rows, Row{
			Item: it,
			Rect: geometry.Rect{Point: geometry.Point{X: origin.X, Y: y}, Size: geometry.Size{Width: size.Width, Height: rh}},
		})
		y += rh
	}
	return p
}

// Hit returns the action under p. inside reports whether p is on the panel;
// presses inside never reach the desktop behind it.
func (p Panel) Hit(at geometry.Point) (action Action, inside bool) {
	if !p.Rect.Contains(at) {
		return None, false
	}
	for _, r := range p.Rows {
		if !r.Separator && r.Rect.Contains(at) {
			return r.Action, true
		}
	}
	return None, true
}
