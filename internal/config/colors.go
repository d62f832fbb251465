package config

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Color represents a color in the application
type Color string

const (
	// DefaultColor represents a default color
	DefaultColor Color = "default"

	// TransparentColor represents the terminal bg color
	TransparentColor Color = "-"
)

// NewColor returns a new color
func NewColor(c string) Color {
	return Color(c)
}

// String returns color as string
func (c Color) String() string {
	if c.isHex() {
		return string(c)
	}
	if c == DefaultColor {
		return "-"
	}
	col := c.Color().TrueColor().Hex()
	if col < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", col)
}

func (c Color) isHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// ComponentColors groups the colors one UI component draws with.
type ComponentColors struct {
	Background Color `yaml:"background"`
	Foreground Color `yaml:"foreground"`
	Border     Color `yaml:"border"`
	Title      Color `yaml:"title"`
	Accent     Color `yaml:"accent"`
}

// StatusColors defines colors for transient status levels
type StatusColors struct {
	Info    Color `yaml:"info"`
	Warning Color `yaml:"warning"`
	Error   Color `yaml:"error"`
	Success Color `yaml:"success"`
}

// EmailColors defines colors for list-row email states
type EmailColors struct {
	Unread  Color `yaml:"unread"`
	Read    Color `yaml:"read"`
	Starred Color `yaml:"starred"`
	Flagged Color `yaml:"flagged"`
	High    Color `yaml:"high"` // high-priority rows
}

// Theme is the full color configuration loaded from a YAML theme file.
type Theme struct {
	Name    string          `yaml:"name"`
	General ComponentColors `yaml:"general"`
	Sidebar ComponentColors `yaml:"sidebar"`
	List    ComponentColors `yaml:"list"`
	Viewer  ComponentColors `yaml:"viewer"`
	Compose ComponentColors `yaml:"compose"`
	Status  StatusColors    `yaml:"status"`
	Email   EmailColors     `yaml:"email"`
}

// DefaultTheme returns the built-in prism-dark theme, used whenever no theme
// file can be loaded.
func DefaultTheme() *Theme {
	general := ComponentColors{
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Border:     "#45475a",
		Title:      "#89b4fa",
		Accent:     "#f5c2e7",
	}
	return &Theme{
		Name:    "prism-dark",
		General: general,
		Sidebar: general,
		List:    general,
		Viewer:  general,
		Compose: general,
		Status: StatusColors{
			Info:    "#89b4fa",
			Warning: "#f9e2af",
			Error:   "#f38ba8",
			Success: "#a6e3a1",
		},
		Email: EmailColors{
			Unread:  "#cdd6f4",
			Read:    "#6c7086",
			Starred: "#f9e2af",
			Flagged: "#fab387",
			High:    "#f38ba8",
		},
	}
}

// Component returns the colors for a named component, falling back to the
// general palette for unknown names or unset sections.
func (t *Theme) Component(name string) ComponentColors {
	if t == nil {
		return DefaultTheme().General
	}
	var cc ComponentColors
	switch name {
	case "sidebar":
		cc = t.Sidebar
	case "list":
		cc = t.List
	case "viewer":
		cc = t.Viewer
	case "compose":
		cc = t.Compose
	default:
		cc = t.General
	}
	return cc.withFallback(t.General)
}

func (cc ComponentColors) withFallback(base ComponentColors) ComponentColors {
	if cc.Background == "" {
		cc.Background = base.Background
	}
	if cc.Foreground == "" {
		cc.Foreground = base.Foreground
	}
	if cc.Border == "" {
		cc.Border = base.Border
	}
	if cc.Title == "" {
		cc.Title = base.Title
	}
	if cc.Accent == "" {
		cc.Accent = base.Accent
	}
	return cc
}
