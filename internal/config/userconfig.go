package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/taskbar"
	"github.com/pelletier/go-toml/v2"
)

// RelPath is the config file location under the XDG config home.
const RelPath = "glassdesk/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Behavior    BehaviorConfig      `toml:"behavior"`
	Keybindings map[string][]string `toml:"keybindings"`
	Launcher    taskbar.Catalog     `toml:"launcher"`
	Content     content.Library     `toml:"content"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme      string  `toml:"theme"`       // Color theme name (e.g., dracula, nord, my-custom-theme)
	Wallpaper  string  `toml:"wallpaper"`   // Wallpaper pattern: solid, dots, stripes, bliss
	ASCIIOnly  bool    `toml:"ascii_only"`  // Use ASCII glyphs instead of Unicode symbols
	HideClock  bool    `toml:"hide_clock"`  // Hide the taskbar clock
	HideTray   bool    `toml:"hide_tray"`   // Hide CPU and memory in the tray
	CellWidth  float64 `toml:"cell_width"`  // Pixel width of one terminal cell (default: 8)
	CellHeight float64 `toml:"cell_height"` // Pixel height of one terminal cell (default: 16)
}

// BehaviorConfig holds interaction settings
type BehaviorConfig struct {
	DoubleClickMS   int `toml:"double_click_ms"`   // Icon double-click threshold (default: 300)
	ShutdownDelayMS int `toml:"shutdown_delay_ms"` // Shutdown screen duration before exit (default: 1500)
}

// Wallpapers that the renderer knows how to draw.
var Wallpapers = []string{"solid", "dots", "stripes", "bliss"}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Wallpaper:  "bliss",
			CellWidth:  geometry.DefaultCellWidth,
			CellHeight: geometry.DefaultCellHeight,
		},
		Behavior: BehaviorConfig{
			DoubleClickMS:   DefaultDoubleClickMS,
			ShutdownDelayMS: int(DefaultShutdownDelay.Milliseconds()),
		},
		Keybindings: DefaultKeybindings(),
		Launcher:    taskbar.DefaultCatalog(),
		Content:     content.DefaultLibrary(),
	}
}

// LoadUserConfig loads the user configuration from XDG config directory,
// writing a default file on first run.
func LoadUserConfig() (*UserConfig, *ValidationResult, error) {
	configPath, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		path, err := xdg.ConfigFile(RelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get config path: %w", err)
		}
		cfg, err := createDefaultConfig(path)
		return cfg, &ValidationResult{}, err
	}
	return LoadFile(configPath)
}

// LoadFile reads, fills and validates the config at path. Warnings are
// returned alongside a usable config; errors make the config unusable.
func LoadFile(path string) (*UserConfig, *ValidationResult, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingBehavior(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	fillMissingLauncher(&cfg, defaultCfg)
	fillMissingContent(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		return nil, validation, fmt.Errorf("configuration has %d error(s): %s", len(validation.Errors), validation.Errors[0])
	}
	return &cfg, validation, nil
}

// createDefaultConfig writes the default config with a commented header
func createDefaultConfig(configPath string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# glassdesk configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# Reset with: glassdesk config reset\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: Color theme name. Run `glassdesk themes` for the list.\n")
	sb.WriteString("#   Custom themes: ~/.config/glassdesk/themes/*.json\n")
	sb.WriteString("#   Default: (empty - built-in palette)\n")
	sb.WriteString("#\n")
	sb.WriteString("# wallpaper: " + strings.Join(Wallpapers, ", ") + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# cell_width, cell_height: pixel size of one terminal cell.\n")
	sb.WriteString("#   Window sizes are defined in pixels and mapped onto this grid.\n")
	sb.WriteString("#\n")
	sb.WriteString("# BEHAVIOR\n")
	sb.WriteString("# double_click_ms: Range " + fmt.Sprintf("%d to %d", MinDoubleClickMS, MaxDoubleClickMS) + "\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

// ResetConfig overwrites the config file with defaults.
func ResetConfig() (string, error) {
	path, err := xdg.ConfigFile(RelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := createDefaultConfig(path); err != nil {
		return "", err
	}
	return path, nil
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.Wallpaper == "" {
		cfg.Appearance.Wallpaper = defaultCfg.Appearance.Wallpaper
	}
	if cfg.Appearance.CellWidth == 0 {
		cfg.Appearance.CellWidth = defaultCfg.Appearance.CellWidth
	}
	if cfg.Appearance.CellHeight == 0 {
		cfg.Appearance.CellHeight = defaultCfg.Appearance.CellHeight
	}
}

func fillMissingBehavior(cfg, defaultCfg *UserConfig) {
	if cfg.Behavior.DoubleClickMS <= 0 {
		cfg.Behavior.DoubleClickMS = defaultCfg.Behavior.DoubleClickMS
	}
	if cfg.Behavior.ShutdownDelayMS <= 0 {
		cfg.Behavior.ShutdownDelayMS = defaultCfg.Behavior.ShutdownDelayMS
	}
}

func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for k, v := range defaultCfg.Keybindings {
		if _, exists := cfg.Keybindings[k]; !exists {
			cfg.Keybindings[k] = v
		}
	}
}

// fillMissingLauncher keeps a configured list as a whole; only an absent
// list falls back to the default.
func fillMissingLauncher(cfg, defaultCfg *UserConfig) {
	if cfg.Launcher.Icons == nil {
		cfg.Launcher.Icons = defaultCfg.Launcher.Icons
	}
	if cfg.Launcher.Menu == nil {
		cfg.Launcher.Menu = defaultCfg.Launcher.Menu
	}
}

func fillMissingContent(cfg, defaultCfg *UserConfig) {
	c, d := &cfg.Content, defaultCfg.Content
	if c.Owner == "" {
		c.Owner = d.Owner
	}
	if c.Email == "" {
		c.Email = d.Email
	}
	if c.Homepage == "" {
		c.Homepage = d.Homepage
	}
	if c.About == nil {
		c.About = d.About
	}
	if c.Resume == nil {
		c.Resume = d.Resume
	}
	if c.Projects == nil {
		c.Projects = d.Projects
	}
	if c.Posts == nil {
		c.Posts = d.Posts
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return xdg.ConfigFile(RelPath)
	}
	return path, nil
}

// =============================================================================
// Validation
// =============================================================================

// ValidationIssue is one problem found in a config.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Field, i.Key, i.Message)
}

// ValidationResult collects errors, which reject the config, and warnings,
// which are corrected in place.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

func (v *ValidationResult) HasErrors() bool   { return len(v.Errors) > 0 }
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) fail(field, key, msg string) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, msg})
}

func (v *ValidationResult) warn(field, key, msg string) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, msg})
}

// ValidateConfig checks cfg and clamps out-of-range values.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	a := &cfg.Appearance
	if !contains(Wallpapers, a.Wallpaper) {
		v.warn("appearance", "wallpaper", fmt.Sprintf("unknown wallpaper %q, using bliss", a.Wallpaper))
		a.Wallpaper = "bliss"
	}
	for key, p := range map[string]*float64{"cell_width": &a.CellWidth, "cell_height": &a.CellHeight} {
		if *p < MinCellSize || *p > MaxCellSize {
			v.fail("appearance", key, fmt.Sprintf("must be between %v and %v, got %v", MinCellSize, MaxCellSize, *p))
		}
	}

	b := &cfg.Behavior
	if b.DoubleClickMS < MinDoubleClickMS {
		v.warn("behavior", "double_click_ms", fmt.Sprintf("raised to %d", MinDoubleClickMS))
		b.DoubleClickMS = MinDoubleClickMS
	} else if b.DoubleClickMS > MaxDoubleClickMS {
		v.warn("behavior", "double_click_ms", fmt.Sprintf("lowered to %d", MaxDoubleClickMS))
		b.DoubleClickMS = MaxDoubleClickMS
	}
	if b.ShutdownDelayMS > MaxShutdownDelayMS {
		v.warn("behavior", "shutdown_delay_ms", fmt.Sprintf("lowered to %d", MaxShutdownDelayMS))
		b.ShutdownDelayMS = MaxShutdownDelayMS
	}

	for i, ic := range cfg.Launcher.Icons {
		if !ic.Type.Valid() {
			v.fail("launcher", fmt.Sprintf("icons[%d]", i), fmt.Sprintf("%v: %q", content.ErrUnknownContentType, ic.Type))
		}
		if ic.Label == "" {
			v.warn("launcher", fmt.Sprintf("icons[%d]", i), "empty label")
		}
	}
	for i, it := range cfg.Launcher.Menu {
		key := fmt.Sprintf("start_menu[%d]", i)
		switch it.Kind {
		case taskbar.OpenItem:
			if !it.Type.Valid() {
				v.fail("launcher", key, fmt.Sprintf("%v: %q", content.ErrUnknownContentType, it.Type))
			}
		case taskbar.PlaceholderItem, taskbar.ShutdownItem:
		default:
			v.fail("launcher", key, fmt.Sprintf("unknown kind %q", it.Kind))
		}
		if it.Column < 0 || it.Column > 1 {
			v.warn("launcher", key, "column must be 0 or 1")
		}
	}

	validateKeybindings(cfg.Keybindings, v)
	return v
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
