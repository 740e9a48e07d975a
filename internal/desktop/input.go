package desktop

import (
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/contextmenu"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/pointer"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/dodorz/glassdesk/internal/window"
)

// HandlePointer routes one abstract pointer event. It reports whether the
// desktop changed.
func (m *Manager) HandlePointer(ev pointer.Event) bool {
	if m.shutdown {
		return false
	}
	switch ev.Phase {
	case pointer.Start:
		// A session still registered for this pointer never saw its end.
		stale := m.endPointer(ev.PointerID)
		switch ev.Button {
		case pointer.Primary:
			return m.primaryPress(ev) || stale
		case pointer.Secondary:
			return m.secondaryPress(ev.At) || stale
		}
		return stale
	case pointer.Move:
		return m.movePointer(ev)
	case pointer.End, pointer.Cancel:
		return m.endPointer(ev.PointerID)
	}
	return false
}

// primaryPress walks targets top-down. Presses on the menus and the start
// button stop there; everything else ends by dismissing the overlays, as a
// click reaching the desktop background would.
func (m *Manager) primaryPress(ev pointer.Event) bool {
	at := ev.At

	if panel, ok := m.ContextMenuLayout(); ok {
		if action, inside := panel.Hit(at); inside {
			if action == contextmenu.None {
				return false
			}
			m.contextAt = nil
			m.runMenuAction(action)
			return true
		}
	}

	if m.startMenu {
		if slot, hit, inside := m.StartMenuLayout().Hit(at); inside {
			if !hit {
				return false
			}
			return m.runStartItem(slot.Item)
		}
	}

	switch target, id := m.TaskbarLayout().Hit(at); target {
	case taskbar.StartButton:
		return m.ToggleStartMenu()
	case taskbar.WindowEntry:
		m.Focus(id)
		m.DismissOverlays()
		return true
	case taskbar.Tray, taskbar.Strip:
		return m.DismissOverlays()
	}

	if d := m.windowAt(at); d != nil {
		m.raise(d)
		m.pressWindow(d, ev)
		m.DismissOverlays()
		return true
	}

	if i := taskbar.HitIcon(m.IconRects(), at); i >= 0 {
		m.selectedIcon = i
		if m.clicks.Click(i, m.clock()) {
			m.openIcon(i)
		}
		m.DismissOverlays()
		return true
	}

	changed := m.selectedIcon >= 0
	m.selectedIcon = -1
	return m.DismissOverlays() || changed
}

// secondaryPress opens the context menu anywhere except on the taskbar and
// the open menus.
func (m *Manager) secondaryPress(at geometry.Point) bool {
	if panel, ok := m.ContextMenuLayout(); ok {
		if _, inside := panel.Hit(at); inside {
			return false
		}
	}
	if m.startMenu {
		if _, _, inside := m.StartMenuLayout().Hit(at); inside {
			return false
		}
	}
	if target, _ := m.TaskbarLayout().Hit(at); target != taskbar.Miss {
		return false
	}
	return m.OpenContextMenu(at.X, at.Y)
}

func (m *Manager) pressWindow(d *window.Descriptor, ev pointer.Event) {
	switch d.HitTest(ev.At) {
	case window.CloseButton:
		m.Close(d.ID)
	case window.MinimizeButton:
		m.Minimize(d.ID)
	case window.MaximizeButton:
		// Reserved.
	case window.TitleBar:
		m.beginDrag(d, ev)
	case window.Body:
		if p := m.providers[d.ID]; p != nil {
			bx, by, _, _ := m.grid.Cells(d.BodyRect())
			col, row := m.grid.Cell(ev.At)
			if p.Press(col-bx, row-by) {
				return
			}
		}
		m.beginDrag(d, ev)
	}
}

func (m *Manager) beginDrag(d *window.Descriptor, ev pointer.Event) {
	if d.BeginDrag(ev.PointerID, ev.At) {
		m.pointers[ev.PointerID] = d.ID
		m.log.Debug("drag started", "id", d.ID, "pointer", ev.PointerID)
	}
}

func (m *Manager) movePointer(ev pointer.Event) bool {
	id, ok := m.pointers[ev.PointerID]
	if !ok {
		return false
	}
	d := m.lookup(id)
	if d == nil {
		delete(m.pointers, ev.PointerID)
		return false
	}
	return d.Move(ev.PointerID, ev.At, m.viewport)
}

func (m *Manager) endPointer(pid int) bool {
	id, ok := m.pointers[pid]
	if !ok {
		return false
	}
	delete(m.pointers, pid)
	if d := m.lookup(id); d != nil {
		m.log.Debug("drag ended", "id", id, "pointer", pid)
		return d.End(pid)
	}
	return false
}

func (m *Manager) runStartItem(it taskbar.MenuItem) bool {
	switch it.Kind {
	case taskbar.OpenItem:
		m.startMenu = false
		m.Open(it.Type, it.Label)
		return true
	case taskbar.ShutdownItem:
		return m.Shutdown()
	}
	return false
}

func (m *Manager) runMenuAction(a contextmenu.Action) {
	m.log.Debug("context menu action", "action", a)
	if a == contextmenu.Properties {
		m.Open(content.About, "")
	}
	if m.hooks.OnMenuAction != nil {
		m.hooks.OnMenuAction(a)
	}
}

func (m *Manager) openIcon(i int) {
	if i < 0 || i >= len(m.catalog.Icons) {
		return
	}
	ic := m.catalog.Icons[i]
	m.Open(ic.Type, ic.Label)
}

// windowAt is the visible window with the greatest z under p.
func (m *Manager) windowAt(p geometry.Point) *window.Descriptor {
	var hit *window.Descriptor
	for _, d := range m.windows {
		if d.Minimized || !d.Bounds.Contains(p) {
			continue
		}
		if hit == nil || d.Z > hit.Z {
			hit = d
		}
	}
	return hit
}

// =============================================================================
// Keyboard
// =============================================================================

// SelectIcon moves the icon selection by delta, wrapping around.
func (m *Manager) SelectIcon(delta int) bool {
	n := len(m.catalog.Icons)
	if m.shutdown || n == 0 {
		return false
	}
	if m.selectedIcon < 0 {
		m.selectedIcon = 0
		return true
	}
	m.selectedIcon = ((m.selectedIcon+delta)%n + n) % n
	return true
}

// ActivateSelectedIcon opens the selected icon.
func (m *Manager) ActivateSelectedIcon() bool {
	if m.shutdown || m.selectedIcon < 0 {
		return false
	}
	m.openIcon(m.selectedIcon)
	return true
}

// TypeText forwards text to the topmost window when it accepts input.
func (m *Manager) TypeText(text string) bool {
	if in, ok := m.focusedInput(); ok {
		in.Insert(text)
		return true
	}
	return false
}

// Backspace deletes from the topmost window's input.
func (m *Manager) Backspace() bool {
	if in, ok := m.focusedInput(); ok {
		in.Backspace()
		return true
	}
	return false
}

func (m *Manager) focusedInput() (content.TextInput, bool) {
	if m.shutdown {
		return nil, false
	}
	d := m.topmost()
	if d == nil {
		return nil, false
	}
	in, ok := m.providers[d.ID].(content.TextInput)
	return in, ok
}
