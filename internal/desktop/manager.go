// Package desktop is the window manager: the single authoritative state of an
// emulated desktop session.
//
// A Manager owns the window collection, the z-order counter, the overlay
// flags and the shutdown flag. Every mutation goes through a named operation.
// Operations are total: an unknown id is a no-op reported by a false result,
// never an error.
//
// A Manager is not safe for concurrent use. Each desktop is driven by exactly
// one event loop.
package desktop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/contextmenu"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/dodorz/glassdesk/internal/window"
	"github.com/google/uuid"
)

// InitialZ is the counter value before the first window opens.
const InitialZ = 100

// Hooks are notifications the presentation layer can subscribe to.
type Hooks struct {
	// OnSent fires after a provider reports a completed send. The sending
	// window is already closed.
	OnSent func(id string, t content.Type)
	// OnMenuAction fires for every context menu selection.
	OnMenuAction func(contextmenu.Action)
	// OnShutdown fires once when the session ends.
	OnShutdown func()
}

// Options configures a Manager. Zero values get defaults.
type Options struct {
	Viewport    geometry.Viewport
	Grid        geometry.Grid
	Catalog     taskbar.Catalog
	MenuItems   []contextmenu.Item
	Mounter     content.Mounter
	DoubleClick time.Duration
	ShowTray    bool
	Clock       func() time.Time
	NewID       func(t content.Type, now time.Time) string
	Logger      *log.Logger
	Hooks       Hooks
}

// Manager is the desktop state container.
type Manager struct {
	windows   []*window.Descriptor
	providers map[string]content.Provider
	pointers  map[int]string
	issued    map[string]struct{}

	maxZ      int
	startMenu bool
	contextAt *geometry.Point
	shutdown  bool

	viewport     geometry.Viewport
	grid         geometry.Grid
	catalog      taskbar.Catalog
	menuItems    []contextmenu.Item
	showTray     bool
	clicks       taskbar.ClickCounter
	selectedIcon int

	mounter content.Mounter
	clock   func() time.Time
	newID   func(t content.Type, now time.Time) string
	log     *log.Logger
	hooks   Hooks
}

// DefaultID is type, unix millis and a short random suffix.
func DefaultID(t content.Type, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", t, now.UnixMilli(), uuid.New().String()[:8])
}

// New creates an empty desktop.
func New(opts Options) *Manager {
	m := &Manager{
		providers:    make(map[string]content.Provider),
		pointers:     make(map[int]string),
		issued:       make(map[string]struct{}),
		maxZ:         InitialZ,
		viewport:     opts.Viewport,
		grid:         opts.Grid,
		catalog:      opts.Catalog,
		menuItems:    opts.MenuItems,
		showTray:     opts.ShowTray,
		clicks:       taskbar.ClickCounter{Threshold: opts.DoubleClick},
		selectedIcon: -1,
		mounter:      opts.Mounter,
		clock:        opts.Clock,
		newID:        opts.NewID,
		log:          opts.Logger,
		hooks:        opts.Hooks,
	}
	if m.grid == (geometry.Grid{}) {
		m.grid = geometry.DefaultGrid()
	}
	if m.catalog.Icons == nil && m.catalog.Menu == nil {
		m.catalog = taskbar.DefaultCatalog()
	}
	if m.menuItems == nil {
		m.menuItems = contextmenu.DefaultItems()
	}
	if m.mounter == nil {
		m.mounter = content.DefaultLibrary().Mounter()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.newID == nil {
		m.newID = DefaultID
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	return m
}

// =============================================================================
// Window lifecycle
// =============================================================================

// Open shows the window for t. If one is already open it is focused and
// restored instead, and its id returned. An empty title uses the type's
// default. Open returns "" after shutdown or for an unknown type.
func (m *Manager) Open(t content.Type, title string) string {
	if m.shutdown || !t.Valid() {
		return ""
	}
	if d := m.byType(t); d != nil {
		m.raise(d)
		m.log.Debug("window reopened", "id", d.ID, "type", t, "z", d.Z)
		return d.ID
	}

	id := m.allocateID(t)
	m.maxZ++
	d := window.New(id, t, title, m.maxZ, m.viewport)
	m.windows = append(m.windows, d)
	m.providers[id] = m.mounter.Mount(t, m.callbacks(id))
	m.log.Debug("window opened", "id", id, "type", t, "z", d.Z,
		"x", d.Bounds.X, "y", d.Bounds.Y, "w", d.Bounds.Width, "h", d.Bounds.Height)
	return id
}

// Close removes a window and tears down its pointer sessions. Other windows
// keep their z values.
func (m *Manager) Close(id string) bool {
	if m.shutdown {
		return false
	}
	i := m.index(id)
	if i < 0 {
		return false
	}
	d := m.windows[i]
	m.release(d)
	m.windows = append(m.windows[:i], m.windows[i+1:]...)
	delete(m.providers, id)
	m.log.Debug("window closed", "id", id, "type", d.Type)
	return true
}

// Minimize hides a window from the surface. It stays in the taskbar.
func (m *Manager) Minimize(id string) bool {
	if m.shutdown {
		return false
	}
	d := m.lookup(id)
	if d == nil {
		return false
	}
	m.release(d)
	d.Minimized = true
	m.log.Debug("window minimized", "id", id)
	return true
}

// Focus raises a window to the top and restores it if minimized.
func (m *Manager) Focus(id string) bool {
	if m.shutdown {
		return false
	}
	d := m.lookup(id)
	if d == nil {
		return false
	}
	m.raise(d)
	m.log.Debug("window focused", "id", id, "z", d.Z)
	return true
}

// raise is the only writer of maxZ after creation.
func (m *Manager) raise(d *window.Descriptor) {
	m.maxZ++
	d.Z = m.maxZ
	d.Minimized = false
}

// release ends every pointer session owned by d.
func (m *Manager) release(d *window.Descriptor) {
	for pid, wid := range m.pointers {
		if wid == d.ID {
			delete(m.pointers, pid)
		}
	}
	d.Reset()
}

func (m *Manager) allocateID(t content.Type) string {
	id := m.newID(t, m.clock())
	for {
		if _, taken := m.issued[id]; !taken && id != "" {
			break
		}
		id = DefaultID(t, m.clock())
	}
	m.issued[id] = struct{}{}
	return id
}

func (m *Manager) callbacks(id string) content.Callbacks {
	return content.Callbacks{
		Close:    func() { m.Close(id) },
		Minimize: func() { m.Minimize(id) },
		Focus:    func() { m.Focus(id) },
		OnSent:   func() { m.sent(id) },
	}
}

func (m *Manager) sent(id string) {
	d := m.lookup(id)
	if d == nil {
		return
	}
	t := d.Type
	m.Close(id)
	if m.hooks.OnSent != nil {
		m.hooks.OnSent(id, t)
	}
}

// =============================================================================
// Overlays and session
// =============================================================================

// ToggleStartMenu flips the start menu.
func (m *Manager) ToggleStartMenu() bool {
	if m.shutdown {
		return false
	}
	m.startMenu = !m.startMenu
	return true
}

// OpenContextMenu opens the context menu at (x, y). It does not close the
// start menu.
func (m *Manager) OpenContextMenu(x, y float64) bool {
	if m.shutdown {
		return false
	}
	m.contextAt = &geometry.Point{X: x, Y: y}
	return true
}

// DismissOverlays closes the start menu and the context menu together.
func (m *Manager) DismissOverlays() bool {
	if m.shutdown {
		return false
	}
	changed := m.startMenu || m.contextAt != nil
	m.startMenu = false
	m.contextAt = nil
	return changed
}

// Shutdown ends the session. It is terminal: every later operation is
// refused.
func (m *Manager) Shutdown() bool {
	if m.shutdown {
		return false
	}
	for _, d := range m.windows {
		d.Reset()
	}
	clear(m.pointers)
	m.startMenu = false
	m.contextAt = nil
	m.shutdown = true
	m.log.Info("desktop shut down", "windows", len(m.windows))
	if m.hooks.OnShutdown != nil {
		m.hooks.OnShutdown()
	}
	return true
}

// SetViewport records the current viewport. Open windows are not moved;
// drags clamp against the new size from their next move.
func (m *Manager) SetViewport(v geometry.Viewport) {
	m.viewport = v
}

// SetGrid changes the cell size used to map provider cells.
func (m *Manager) SetGrid(g geometry.Grid) {
	if g == (geometry.Grid{}) {
		g = geometry.DefaultGrid()
	}
	m.grid = g
}

// SetMounter changes how windows opened from now on get their content.
func (m *Manager) SetMounter(mt content.Mounter) {
	if mt != nil {
		m.mounter = mt
	}
}

// SetCatalog swaps the launcher catalog.
func (m *Manager) SetCatalog(c taskbar.Catalog) {
	m.catalog = c
	if m.selectedIcon >= len(c.Icons) {
		m.selectedIcon = -1
	}
}

// SetShowTray toggles the tray reservation in the taskbar layout.
func (m *Manager) SetShowTray(show bool) {
	m.showTray = show
}

// SetDoubleClick changes the icon double-click threshold.
func (m *Manager) SetDoubleClick(d time.Duration) {
	m.clicks.Threshold = d
}

// =============================================================================
// Queries
// =============================================================================

// Windows returns copies of all windows in insertion order.
func (m *Manager) Windows() []window.Descriptor {
	out := make([]window.Descriptor, len(m.windows))
	for i, d := range m.windows {
		out[i] = *d
	}
	return out
}

// Entries is the taskbar projection.
func (m *Manager) Entries() []taskbar.Entry {
	return taskbar.Entries(m.windows)
}

// Lookup returns a copy of the window with id.
func (m *Manager) Lookup(id string) (window.Descriptor, bool) {
	if d := m.lookup(id); d != nil {
		return *d, true
	}
	return window.Descriptor{}, false
}

// ByType returns the open window for t.
func (m *Manager) ByType(t content.Type) (window.Descriptor, bool) {
	if d := m.byType(t); d != nil {
		return *d, true
	}
	return window.Descriptor{}, false
}

// Topmost is the visible window with the greatest z.
func (m *Manager) Topmost() (window.Descriptor, bool) {
	if d := m.topmost(); d != nil {
		return *d, true
	}
	return window.Descriptor{}, false
}

// Provider returns the content mounted in window id.
func (m *Manager) Provider(id string) content.Provider {
	return m.providers[id]
}

// StartMenuOpen reports whether the start menu is showing.
func (m *Manager) StartMenuOpen() bool { return m.startMenu }

// ContextMenu returns the invocation point of the open context menu.
func (m *Manager) ContextMenu() (geometry.Point, bool) {
	if m.contextAt == nil {
		return geometry.Point{}, false
	}
	return *m.contextAt, true
}

// IsShutdown reports whether the session has ended.
func (m *Manager) IsShutdown() bool { return m.shutdown }

// MaxZ is the greatest z handed out so far.
func (m *Manager) MaxZ() int { return m.maxZ }

// Viewport is the size drags clamp against.
func (m *Manager) Viewport() geometry.Viewport { return m.viewport }

// Grid maps cells to viewport pixels.
func (m *Manager) Grid() geometry.Grid { return m.grid }

// Catalog is the launcher catalog in use.
func (m *Manager) Catalog() taskbar.Catalog { return m.catalog }

// MenuItems are the context menu entries.
func (m *Manager) MenuItems() []contextmenu.Item { return m.menuItems }

// SelectedIcon is the keyboard-selected icon, or -1.
func (m *Manager) SelectedIcon() int { return m.selectedIcon }

// ActivePointers is the number of registered drag sessions.
func (m *Manager) ActivePointers() int { return len(m.pointers) }

// TaskbarLayout lays out the taskbar strip for the current windows.
func (m *Manager) TaskbarLayout() taskbar.Bar {
	return taskbar.Layout(m.viewport, m.Entries(), m.showTray)
}

// StartMenuLayout lays out the start menu panel.
func (m *Manager) StartMenuLayout() taskbar.Menu {
	return taskbar.MenuLayout(m.catalog.Menu, m.viewport)
}

// IconRects lays out the desktop icons.
func (m *Manager) IconRects() []geometry.Rect {
	return taskbar.IconRects(len(m.catalog.Icons), m.viewport)
}

// ContextMenuLayout lays out the open context menu.
func (m *Manager) ContextMenuLayout() (contextmenu.Panel, bool) {
	if m.contextAt == nil {
		return contextmenu.Panel{}, false
	}
	return contextmenu.Layout(*m.contextAt, m.menuItems, m.viewport), true
}

// Snapshot is a serializable view of the whole desktop.
type Snapshot struct {
	Viewport      geometry.Viewport   `json:"viewport"`
	MaxZ          int                 `json:"max_z"`
	StartMenuOpen bool                `json:"start_menu_open"`
	ContextMenu   *geometry.Point     `json:"context_menu,omitempty"`
	ShutDown      bool                `json:"shut_down"`
	Windows       []window.Descriptor `json:"windows"`
}

// Snapshot captures the current state.
func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		Viewport:      m.viewport,
		MaxZ:          m.maxZ,
		StartMenuOpen: m.startMenu,
		ShutDown:      m.shutdown,
		Windows:       m.Windows(),
	}
	if m.contextAt != nil {
		p := *m.contextAt
		s.ContextMenu = &p
	}
	return s
}

func (m *Manager) index(id string) int {
	for i, d := range m.windows {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) lookup(id string) *window.Descriptor {
	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}

func (m *Manager) byType(t content.Type) *window.Descriptor {
	for _, d := range m.windows {
		if d.Type == t {
			return d
		}
	}
	return nil
}

func (m *Manager) topmost() *window.Descriptor {
	var top *window.Descriptor
	for _, d := range m.windows {
		if d.Minimized {
			continue
		}
		if top == nil || d.Z > top.Z {
			top = d
		}
	}
	return top
}
