package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/dodorz/glassdesk/internal/theme"
)

// TickerMsg drives the clock and notification expiry.
type TickerMsg time.Time

// StatsMsg carries a tray sample.
type StatsMsg struct {
	Stats taskbar.Stats
	Err   error
}

// ConfigReloadMsg carries a reloaded config file.
type ConfigReloadMsg config.Reload

// ShutdownDoneMsg ends the program after the shutdown screen.
type ShutdownDoneMsg struct{}

// Init starts the tick, the first tray sample and the reload listener.
func (d *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(), d.sampleCmd()}
	if d.reloads != nil {
		cmds = append(cmds, ListenForReloads(d.reloads))
	}
	return tea.Batch(cmds...)
}

// TickCmd ticks once per tray interval.
func TickCmd() tea.Cmd {
	return tea.Tick(taskbar.TrayInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

func (d *Desktop) sampleCmd() tea.Cmd {
	if d.settings.HideTray {
		return nil
	}
	sample, now := d.sample, d.clock()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), taskbar.TrayInterval)
		defer cancel()
		s, err := sample(ctx, now)
		return StatsMsg{Stats: s, Err: err}
	}
}

// ListenForReloads waits for the next config reload.
func ListenForReloads(ch <-chan config.Reload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadMsg(r)
	}
}

// Update handles keyboard, mouse, timer and config messages.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		d.wm.SetViewport(d.settings.Grid.Viewport(msg.Width, msg.Height))

	case TickerMsg:
		d.CleanupNotifications()
		cmds = append(cmds, TickCmd(), d.sampleCmd())

	case StatsMsg:
		if msg.Err != nil {
			d.log.Debug("tray sample failed", "err", msg.Err)
		}
		d.stats = msg.Stats

	case ConfigReloadMsg:
		d.handleReload(config.Reload(msg))
		if d.reloads != nil {
			cmds = append(cmds, ListenForReloads(d.reloads))
		}

	case ShutdownDoneMsg:
		d.quitting = true
		return d, tea.Quit

	case tea.KeyPressMsg:
		if cmd := d.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.BlurMsg:
		if ev, ok := d.mouse.Translate(msg); ok {
			d.wm.HandlePointer(ev)
		}
	}

	if d.wm.IsShutdown() && !d.shutdownScheduled {
		d.shutdownScheduled = true
		d.log.Info("shutdown screen", "delay", d.settings.ShutdownDelay)
		cmds = append(cmds, tea.Tick(d.settings.ShutdownDelay, func(time.Time) tea.Msg {
			return ShutdownDoneMsg{}
		}))
	}
	return d, tea.Batch(cmds...)
}

func (d *Desktop) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch d.settings.Keymap.Action(key) {
	case config.ActionQuit:
		d.quitting = true
		return tea.Quit
	case config.ActionDismiss:
		d.wm.DismissOverlays()
	case config.ActionIconNext:
		d.wm.SelectIcon(1)
	case config.ActionIconPrev:
		d.wm.SelectIcon(-1)
	case config.ActionIconOpen:
		d.wm.ActivateSelectedIcon()
	case config.ActionStartMenu:
		d.wm.ToggleStartMenu()
	case config.ActionCloseWindow:
		if w, ok := d.wm.Topmost(); ok {
			d.wm.Close(w.ID)
		}
	case config.ActionBackspace:
		d.wm.Backspace()
	default:
		if msg.Text != "" && d.wm.TypeText(msg.Text) {
			return nil
		}
		if key == "space" {
			d.wm.ActivateSelectedIcon()
		}
	}
	return nil
}

func (d *Desktop) handleReload(r config.Reload) {
	if r.Err != nil {
		d.ShowNotification("Config not reloaded: "+r.Err.Error(), "error", config.NotificationDuration)
		return
	}
	if r.Validation != nil {
		for _, w := range r.Validation.Warnings {
			d.log.Warn("config warning", "issue", w.String())
		}
	}
	next := config.ApplyOverrides(d.settings.Overrides, r.Config)
	if next.Theme != d.settings.Theme {
		if err := theme.Initialize(next.Theme); err != nil {
			d.ShowNotification("Theme: "+err.Error(), "warning", config.NotificationDuration)
		}
	}
	d.applySettings(next)
	d.ShowNotification("Config reloaded", "info", config.NotificationDuration)
}

// FilterMouseMotion drops motion events unless a button is held, which is
// the only time a drag can use them.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if d, ok := model.(*Desktop); ok && !d.mouse.Pressed() {
		return nil
	}
	return msg
}
