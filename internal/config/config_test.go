package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/taskbar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glassdesk", "config.toml")
	if _, err := createDefaultConfig(path); err != nil {
		t.Fatalf("createDefaultConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# glassdesk configuration file") {
		t.Error("expected commented header")
	}

	cfg, v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if v.HasWarnings() {
		t.Errorf("expected no warnings, got %v", v.Warnings)
	}
	if len(cfg.Launcher.Icons) != len(taskbar.DefaultCatalog().Icons) {
		t.Errorf("expected default icons, got %d", len(cfg.Launcher.Icons))
	}
	if cfg.Behavior.DoubleClickMS != DefaultDoubleClickMS {
		t.Errorf("expected %d, got %d", DefaultDoubleClickMS, cfg.Behavior.DoubleClickMS)
	}
}

func TestLoadFileFillsMissing(t *testing.T) {
	path := writeConfig(t, `
[appearance]
theme = "nord"
`)
	cfg, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Appearance.Theme != "nord" {
		t.Errorf("expected theme nord, got %q", cfg.Appearance.Theme)
	}
	if cfg.Appearance.Wallpaper != "bliss" || cfg.Appearance.CellWidth != 8 {
		t.Errorf("expected defaults filled, got %+v", cfg.Appearance)
	}
	if cfg.Content.Email == "" || len(cfg.Keybindings) == 0 {
		t.Error("expected content and keybindings filled")
	}
}

func TestLoadFileCustomLauncher(t *testing.T) {
	path := writeConfig(t, `
[[launcher.icons]]
type = "blog"
label = "Journal"
`)
	cfg, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(cfg.Launcher.Icons) != 1 || cfg.Launcher.Icons[0].Label != "Journal" {
		t.Errorf("expected the configured icon only, got %+v", cfg.Launcher.Icons)
	}
	if len(cfg.Launcher.Menu) == 0 {
		t.Error("expected default start menu")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*UserConfig)
		errors   int
		warnings int
	}{
		{"defaults", func(*UserConfig) {}, 0, 0},
		{"unknown icon type", func(c *UserConfig) {
			c.Launcher.Icons = append(c.Launcher.Icons, taskbar.Icon{Type: "calc", Label: "Calc"})
		}, 1, 0},
		{"unknown menu kind", func(c *UserConfig) {
			c.Launcher.Menu = []taskbar.MenuItem{{Label: "x", Kind: "launch"}}
		}, 1, 0},
		{"bad cell size", func(c *UserConfig) { c.Appearance.CellWidth = -1 }, 1, 0},
		{"double click clamped", func(c *UserConfig) { c.Behavior.DoubleClickMS = 5 }, 0, 1},
		{"unknown wallpaper", func(c *UserConfig) { c.Appearance.Wallpaper = "plaid" }, 0, 1},
		{"unknown action", func(c *UserConfig) { c.Keybindings["fly"] = []string{"f"} }, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			v := ValidateConfig(cfg)
			if len(v.Errors) != tt.errors {
				t.Errorf("expected %d errors, got %v", tt.errors, v.Errors)
			}
			if len(v.Warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, v.Warnings)
			}
		})
	}
}

func TestValidateClampsInPlace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Behavior.DoubleClickMS = 99999
	ValidateConfig(cfg)
	if cfg.Behavior.DoubleClickMS != MaxDoubleClickMS {
		t.Errorf("expected clamp to %d, got %d", MaxDoubleClickMS, cfg.Behavior.DoubleClickMS)
	}
}

func TestLoadFileRejectsErrors(t *testing.T) {
	path := writeConfig(t, `
[[launcher.icons]]
type = "calculator"
label = "Calc"
`)
	_, v, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected an error for an unknown content type")
	}
	if v == nil || !v.HasErrors() {
		t.Error("expected validation errors to be returned")
	}
	if !strings.Contains(err.Error(), content.ErrUnknownContentType.Error()) {
		t.Errorf("expected error to name the problem, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "dracula"
	cfg.Appearance.HideClock = true

	s := ApplyOverrides(Overrides{}, cfg)
	if s.Theme != "dracula" || !s.HideClock {
		t.Errorf("expected config values, got %+v", s)
	}
	if s.DoubleClick != 300*time.Millisecond {
		t.Errorf("expected 300ms, got %v", s.DoubleClick)
	}

	s = ApplyOverrides(Overrides{ThemeName: "nord", ASCIIOnly: true, CellWidth: 500, DoubleClick: time.Second}, cfg)
	if s.Theme != "nord" {
		t.Errorf("expected flag theme, got %q", s.Theme)
	}
	if !s.ASCIIOnly || s.Glyphs().Close != WindowButtonCloseASCII {
		t.Error("expected ASCII glyphs")
	}
	if s.Grid.CellWidth != MaxCellSize {
		t.Errorf("expected cell width clamped to %v, got %v", MaxCellSize, s.Grid.CellWidth)
	}
	if s.DoubleClick != time.Second {
		t.Errorf("expected 1s, got %v", s.DoubleClick)
	}
}

func TestApplyOverridesNilConfig(t *testing.T) {
	s := ApplyOverrides(Overrides{HideTray: true}, nil)
	if !s.HideTray || s.Grid.CellWidth != 8 || s.Keymap.Action("esc") != ActionDismiss {
		t.Errorf("expected defaults plus flags, got %+v", s)
	}
}

func TestKeymap(t *testing.T) {
	km := NewKeymap(map[string][]string{
		ActionQuit:    {"Ctrl+Q"},
		ActionDismiss: {"esc", "ctrl+q"},
		"unknown":     {"u"},
	})

	tests := []struct {
		key    string
		action string
	}{
		{"ctrl+q", ActionDismiss},
		{"esc", ActionDismiss},
		{"u", ""},
		{"x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := km.Action(tt.key); got != tt.action {
				t.Errorf("Action(%q) = %q, want %q", tt.key, got, tt.action)
			}
		})
	}

	help := km.Help()
	if len(help) != 1 || help[0].Key != "ctrl+q/esc" {
		t.Errorf("unexpected help %+v", help)
	}
}

func TestGlyphIcons(t *testing.T) {
	for _, ty := range content.All() {
		if GlyphsFor(false).Icon(ty) == "*" || GlyphsFor(true).Icon(ty) == "*" {
			t.Errorf("missing glyph for %s", ty)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "[appearance]\ntheme = \"nord\"\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan Reload, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(r Reload) {
			select {
			case reloads <- r:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[appearance]\ntheme = \"dracula\"\n"), 0600); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-reloads:
			if r.Err != nil || r.Config == nil {
				continue
			}
			if r.Config.Appearance.Theme == "dracula" {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("expected clean stop, got %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}
