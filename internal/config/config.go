package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// ServerConfig points the client at the PrismMail backend.
type ServerConfig struct {
	// BaseURL is the REST endpoint root, e.g. "http://localhost:8080"
	BaseURL string `json:"base_url"`

	// WebSocketURL is the push channel endpoint, e.g. "ws://localhost:8080/ws".
	// Empty disables push; the client degrades to manual refresh.
	WebSocketURL string `json:"websocket_url"`

	// Timeout for individual HTTP requests (e.g. "30s")
	Timeout string `json:"timeout"`

	// RateLimit caps outgoing requests per second (0 = default)
	RateLimit float64 `json:"rate_limit"`
}

// Config holds all configuration for the PrismMail terminal client
type Config struct {
	Server ServerConfig `json:"server"`

	// Layout configuration
	Layout LayoutConfig `json:"layout"`

	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Logging
	LogFile string `json:"log_file"`
}

// LayoutConfig defines layout-specific configuration
type LayoutConfig struct {
	// Breakpoint boundaries in terminal columns. Each value is the minimum
	// width (inclusive) for that classification; anything below TabletMinWidth
	// is the single-pane mobile layout.
	TabletMinWidth  int `json:"tablet_min_width"`
	DesktopMinWidth int `json:"desktop_min_width"`
	XLMinWidth      int `json:"xl_min_width"`

	// Panel split clamps (percent of the list/viewer row)
	ListMinPercent   int `json:"list_min_percent"`
	ListMaxPercent   int `json:"list_max_percent"`
	ViewerMinPercent int `json:"viewer_min_percent"`
	ViewerMaxPercent int `json:"viewer_max_percent"`

	// PersistDebounceMs is how long panel resizes settle before persisting
	PersistDebounceMs int `json:"persist_debounce_ms"`

	// UI customization
	ShowBorders  bool   `json:"show_borders"`
	ShowTitles   bool   `json:"show_titles"`
	CurrentTheme string `json:"current_theme"`
	// Custom themes directory (empty = default)
	CustomThemeDir string `json:"custom_theme_dir"`
}

// KeyBindings defines keyboard shortcuts for the client
type KeyBindings struct {
	Compose     string `json:"compose"`
	Reply       string `json:"reply"`
	Refresh     string `json:"refresh"`
	Search      string `json:"search"`
	Settings    string `json:"settings"`
	ToggleRead  string `json:"toggle_read"`
	ToggleStar  string `json:"toggle_star"`
	ToggleFlag  string `json:"toggle_flag"`
	Archive     string `json:"archive"`
	Trash       string `json:"trash"`
	Drawer      string `json:"drawer"`
	Back        string `json:"back"`
	GrowList    string `json:"grow_list"`
	ShrinkList  string `json:"shrink_list"`
	ThemePicker string `json:"theme_picker"`
	Help        string `json:"help"`
	Quit        string `json:"quit"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: DefaultServerConfig(),
		Layout: DefaultLayoutConfig(),
		Keys:   DefaultKeyBindings(),
	}
}

// DefaultServerConfig returns default backend connection settings
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		BaseURL:      "http://localhost:8080",
		WebSocketURL: "ws://localhost:8080/ws",
		Timeout:      "30s",
		RateLimit:    10,
	}
}

// DefaultLayoutConfig returns default layout configuration
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TabletMinWidth:    80,
		DesktopMinWidth:   120,
		XLMinWidth:        160,
		ListMinPercent:    25,
		ListMaxPercent:    60,
		ViewerMinPercent:  40,
		ViewerMaxPercent:  75,
		PersistDebounceMs: 200,
		ShowBorders:       true,
		ShowTitles:        true,
		CurrentTheme:      "prism-dark",
		CustomThemeDir:    "",
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Compose:     "c",
		Reply:       "r",
		Refresh:     "R",
		Search:      "/",
		Settings:    ",",
		ToggleRead:  "t",
		ToggleStar:  "s",
		ToggleFlag:  "f",
		Archive:     "a",
		Trash:       "d",
		Drawer:      "b",
		Back:        "esc",
		GrowList:    ">",
		ShrinkList:  "<",
		ThemePicker: "H",
		Help:        "?",
		Quit:        "q",
	}
}

// LoadConfig loads configuration from file, falling back to defaults for
// anything the file does not set.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the layout engine cannot work with.
func (c *Config) Validate() error {
	l := c.Layout
	if !(l.TabletMinWidth < l.DesktopMinWidth && l.DesktopMinWidth < l.XLMinWidth) {
		return fmt.Errorf("layout breakpoints must be strictly increasing: %d/%d/%d",
			l.TabletMinWidth, l.DesktopMinWidth, l.XLMinWidth)
	}
	if l.ListMinPercent <= 0 || l.ListMaxPercent > 100 || l.ListMinPercent > l.ListMaxPercent {
		return fmt.Errorf("invalid list panel clamp [%d,%d]", l.ListMinPercent, l.ListMaxPercent)
	}
	if l.ViewerMinPercent <= 0 || l.ViewerMaxPercent > 100 || l.ViewerMinPercent > l.ViewerMaxPercent {
		return fmt.Errorf("invalid viewer panel clamp [%d,%d]", l.ViewerMinPercent, l.ViewerMaxPercent)
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	path, err := xdg.ConfigFile(filepath.Join("prism", "config.json"))
	if err != nil {
		return ""
	}
	return path
}

// DefaultStateDir returns the directory for the local SQLite store and logs
func DefaultStateDir() string {
	return filepath.Join(xdg.StateHome, "prism")
}

// DefaultDBPath returns the default local database path
func DefaultDBPath() string {
	return filepath.Join(DefaultStateDir(), "prism.db")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// GetRequestTimeout returns the parsed HTTP timeout
func (c *Config) GetRequestTimeout() time.Duration {
	if c.Server.Timeout != "" {
		if d, err := time.ParseDuration(c.Server.Timeout); err == nil {
			return d
		}
	}
	return 30 * time.Second
}

// PersistDebounce returns the panel persist debounce as a duration
func (c *Config) PersistDebounce() time.Duration {
	if c.Layout.PersistDebounceMs > 0 {
		return time.Duration(c.Layout.PersistDebounceMs) * time.Millisecond
	}
	return 200 * time.Millisecond
}
