package taskbar

import (
	"testing"
	"time"

	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/window"
)

var vp = geometry.Viewport{Width: 1280, Height: 800}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	ws := []*window.Descriptor{
		{ID: "b", Title: "Blog", Z: 105},
		{ID: "a", Title: "Mail", Z: 101, Minimized: true},
	}
	got := Entries(ws)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order %+v", got)
	}
	if !got[1].Minimized {
		t.Error("minimized flag should be projected")
	}
}

func TestLayoutHit(t *testing.T) {
	bar := Layout(vp, []Entry{{ID: "one"}, {ID: "two"}}, true)

	if bar.Rect.Y != 800-geometry.TaskbarHeight {
		t.Fatalf("taskbar should sit on the bottom edge, got y=%v", bar.Rect.Y)
	}

	tests := []struct {
		name   string
		at     geometry.Point
		target Target
		id     string
	}{
		{"start", geometry.Point{X: 10, Y: 780}, StartButton, ""},
		{"first entry", geometry.Point{X: bar.Slots[0].Rect.X + 1, Y: 780}, WindowEntry, "one"},
		{"second entry", geometry.Point{X: bar.Slots[1].Rect.X + 1, Y: 780}, WindowEntry, "two"},
		{"tray", geometry.Point{X: 1270, Y: 780}, Tray, ""},
		{"strip", geometry.Point{X: 900, Y: 780}, Strip, ""},
		{"above", geometry.Point{X: 10, Y: 100}, Miss, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, id := bar.Hit(tt.at)
			if target != tt.target || id != tt.id {
				t.Errorf("Hit(%+v) = %v %q, want %v %q", tt.at, target, id, tt.target, tt.id)
			}
		})
	}
}

func TestLayoutShrinksEntries(t *testing.T) {
	entries := make([]Entry, 20)
	bar := Layout(geometry.Viewport{Width: 640, Height: 480}, entries, false)
	last := bar.Slots[len(bar.Slots)-1].Rect
	if last.X+last.Width > 640 {
		t.Errorf("entries overflow the strip: %+v", last)
	}
	if bar.Slots[0].Rect.Width >= EntryMaxWidth {
		t.Error("entries should shrink when crowded")
	}
}

func TestIconRectsWrap(t *testing.T) {
	rects := IconRects(5, geometry.Viewport{Width: 800, Height: 400})
	if rects[0].X != IconInset || rects[0].Y != IconInset {
		t.Errorf("first icon should sit at the inset, got %+v", rects[0])
	}
	for _, r := range rects {
		if r.Y+r.Height > 400-geometry.TaskbarHeight {
			t.Errorf("icon %+v overlaps the taskbar", r)
		}
	}
	if rects[4].X == IconInset {
		t.Error("expected later icons to wrap into a second column")
	}
	if HitIcon(rects, geometry.Point{X: 20, Y: 20}) != 0 {
		t.Error("expected hit on first icon")
	}
	if HitIcon(rects, geometry.Point{X: 700, Y: 20}) != -1 {
		t.Error("expected miss")
	}
}

func TestMenuLayout(t *testing.T) {
	cat := DefaultCatalog()
	m := MenuLayout(cat.Menu, vp)

	if m.Rect.Y+m.Rect.Height != vp.Usable() {
		t.Errorf("menu should rest on the taskbar, bottom=%v", m.Rect.Y+m.Rect.Height)
	}
	if len(m.Items) != len(cat.Menu) {
		t.Fatalf("expected all %d items laid out, got %d", len(cat.Menu), len(m.Items))
	}

	var shutdown MenuSlot
	for _, s := range m.Items {
		if s.Item.Kind == ShutdownItem {
			shutdown = s
		}
	}
	slot, hit, inside := m.Hit(geometry.Point{X: shutdown.Rect.X + 4, Y: shutdown.Rect.Y + 4})
	if !hit || !inside || slot.Item.Kind != ShutdownItem {
		t.Errorf("expected shutdown hit, got %+v hit=%v inside=%v", slot, hit, inside)
	}

	if _, hit, inside := m.Hit(geometry.Point{X: 4, Y: m.Rect.Y + 4}); hit || !inside {
		t.Error("header press should be inside without hitting an item")
	}
	if _, _, inside := m.Hit(geometry.Point{X: 1000, Y: 100}); inside {
		t.Error("press far away should be outside")
	}
}

func TestMenuLayoutTinyViewport(t *testing.T) {
	m := MenuLayout(DefaultCatalog().Menu, geometry.Viewport{Width: 100, Height: 60})
	if m.Rect.Width > 100 || m.Rect.Y < 0 {
		t.Errorf("menu must fit the viewport, got %+v", m.Rect)
	}
}

func TestClickCounter(t *testing.T) {
	base := time.Unix(0, 0)
	c := ClickCounter{Threshold: 300 * time.Millisecond}

	if c.Click(1, base) {
		t.Error("single click is not a double click")
	}
	if !c.Click(1, base.Add(200*time.Millisecond)) {
		t.Error("second click inside the window should complete")
	}
	if c.Click(1, base.Add(300*time.Millisecond)) {
		t.Error("counter should reset after a double click")
	}
	if c.Click(1, base.Add(700*time.Millisecond)) {
		t.Error("click after the threshold starts over")
	}
	if c.Click(2, base.Add(750*time.Millisecond)) {
		t.Error("clicks on different icons never pair")
	}
}

func TestDefaultCatalogTypesValid(t *testing.T) {
	cat := DefaultCatalog()
	for _, ic := range cat.Icons {
		if !ic.Type.Valid() {
			t.Errorf("icon %q has invalid type %q", ic.Label, ic.Type)
		}
	}
	if cat.Icons[2].Type != content.Chrome || cat.Icons[2].Label != "Internet Explorer" {
		t.Errorf("unexpected third icon %+v", cat.Icons[2])
	}
}

func TestClock(t *testing.T) {
	hm, date := Clock(time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC))
	if hm != "2:05 PM" || date != "3/9/2024" {
		t.Errorf("unexpected clock %q %q", hm, date)
	}
}
