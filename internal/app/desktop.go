// Package app is the terminal front end: a bubbletea model that feeds mouse
// and key input to the window manager and draws its state on a cell grid.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/contextmenu"
	"github.com/dodorz/glassdesk/internal/desktop"
	"github.com/dodorz/glassdesk/internal/logging"
	"github.com/dodorz/glassdesk/internal/pointer"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/google/uuid"
)

// Sampler reads tray statistics.
type Sampler func(ctx context.Context, now time.Time) (taskbar.Stats, error)

// Options configures a Desktop.
type Options struct {
	Settings config.Settings
	Logger   *log.Logger
	// Reloads delivers config changes; nil disables live reload.
	Reloads <-chan config.Reload
	// Sampler defaults to taskbar.Sample.
	Sampler Sampler
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Width and Height are the initial size in cells, before the first
	// WindowSizeMsg arrives.
	Width, Height int
}

// Notification is a toast shown in the top-right corner.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// Desktop is the bubbletea model of one session.
type Desktop struct {
	wm       *desktop.Manager
	settings config.Settings
	mouse    *pointer.MouseAdapter
	log      *log.Logger
	reloads  <-chan config.Reload
	sample   Sampler
	clock    func() time.Time

	width, height int
	stats         taskbar.Stats
	wallpaper     string
	notifications []Notification

	shutdownScheduled bool
	quitting          bool
}

// New builds the model and its window manager.
func New(opts Options) *Desktop {
	s := opts.Settings
	if s.Keymap == nil {
		s = config.ApplyOverrides(config.Overrides{}, nil)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Sampler == nil {
		opts.Sampler = taskbar.Sample
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	d := &Desktop{
		settings:  s,
		mouse:     pointer.NewMouseAdapter(s.Grid),
		log:       opts.Logger,
		reloads:   opts.Reloads,
		sample:    opts.Sampler,
		clock:     opts.Clock,
		width:     opts.Width,
		height:    opts.Height,
		wallpaper: s.Wallpaper,
	}
	d.wm = desktop.New(desktop.Options{
		Viewport:    s.Grid.Viewport(opts.Width, opts.Height),
		Grid:        s.Grid,
		Catalog:     s.Catalog,
		Mounter:     s.Library.Mounter(),
		DoubleClick: s.DoubleClick,
		ShowTray:    !s.HideTray || !s.HideClock,
		Clock:       opts.Clock,
		Logger:      opts.Logger,
		Hooks: desktop.Hooks{
			OnSent:       d.onSent,
			OnMenuAction: d.onMenuAction,
		},
	})
	return d
}

// Manager exposes the window manager driving this desktop.
func (d *Desktop) Manager() *desktop.Manager {
	return d.wm
}

// Settings returns the settings currently in effect.
func (d *Desktop) Settings() config.Settings {
	return d.settings
}

// Notifications returns the active toasts.
func (d *Desktop) Notifications() []Notification {
	return d.notifications
}

// Wallpaper is the pattern currently drawn.
func (d *Desktop) Wallpaper() string {
	return d.wallpaper
}

// ShowNotification displays a temporary notification.
func (d *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	d.notifications = append(d.notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: d.clock(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		d.log.Error(message)
	case "warning":
		d.log.Warn(message)
	default:
		d.log.Info(message)
	}
}

// CleanupNotifications removes expired notifications.
func (d *Desktop) CleanupNotifications() bool {
	now := d.clock()
	active := d.notifications[:0]
	for _, n := range d.notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	changed := len(active) != len(d.notifications)
	d.notifications = active
	return changed
}

func (d *Desktop) onSent(id string, t content.Type) {
	d.log.Info("message sent", "id", id, "type", t)
	d.ShowNotification("Message sent. Thanks for reaching out!", "success", config.NotificationDuration)
}

func (d *Desktop) onMenuAction(a contextmenu.Action) {
	switch a {
	case contextmenu.Refresh:
		d.ShowNotification("Desktop refreshed", "info", config.NotificationDuration)
	case contextmenu.ChangeBackground:
		d.wallpaper = nextWallpaper(d.wallpaper)
		d.ShowNotification("Background: "+d.wallpaper, "info", config.NotificationDuration)
	}
}

func nextWallpaper(cur string) string {
	for i, w := range config.Wallpapers {
		if w == cur {
			return config.Wallpapers[(i+1)%len(config.Wallpapers)]
		}
	}
	return config.Wallpapers[0]
}

// applySettings swaps in reloaded settings without touching open windows.
func (d *Desktop) applySettings(s config.Settings) {
	d.settings = s
	d.wallpaper = s.Wallpaper
	d.mouse.Grid = s.Grid
	d.wm.SetGrid(s.Grid)
	d.wm.SetCatalog(s.Catalog)
	d.wm.SetMounter(s.Library.Mounter())
	d.wm.SetDoubleClick(s.DoubleClick)
	d.wm.SetShowTray(!s.HideTray || !s.HideClock)
	d.wm.SetViewport(s.Grid.Viewport(d.width, d.height))
}
