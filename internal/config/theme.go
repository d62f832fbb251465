package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThemeLoader handles loading themes from YAML files
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{themesDir: themesDir}
}

// LoadTheme loads a theme by name ("prism-dark") or filename. The built-in
// default is returned for the default name or when no directory is set.
func (tl *ThemeLoader) LoadTheme(name string) (*Theme, error) {
	if name == "" || name == "prism-dark" {
		return DefaultTheme(), nil
	}
	filename := name
	if !strings.HasSuffix(filename, ".yaml") {
		filename += ".yaml"
	}

	path := filepath.Join(tl.themesDir, filename)
	if !fileExists(path) {
		// Try absolute path
		path = filename
		if !fileExists(path) {
			return nil, fmt.Errorf("theme file not found: %s", filename)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var wrapper struct {
		Prism *Theme `yaml:"prism"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse theme file: %w", err)
	}
	if wrapper.Prism == nil {
		return nil, fmt.Errorf("invalid theme file: missing prism section")
	}
	if wrapper.Prism.Name == "" {
		wrapper.Prism.Name = strings.TrimSuffix(filename, ".yaml")
	}
	return wrapper.Prism, nil
}

// ListAvailableThemes returns the theme names available on disk, always
// including the built-in default.
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	themes := []string{"prism-dark"}

	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			themes = append(themes, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}

	return themes, nil
}

// SaveTheme writes a theme to the themes directory.
func (tl *ThemeLoader) SaveTheme(theme *Theme, filename string) error {
	if err := os.MkdirAll(tl.themesDir, 0o755); err != nil {
		return fmt.Errorf("create themes directory: %w", err)
	}
	wrapper := struct {
		Prism *Theme `yaml:"prism"`
	}{Prism: theme}

	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	return os.WriteFile(filepath.Join(tl.themesDir, filename), data, 0o644)
}

// ValidateTheme checks that the foundation colors a theme must carry parse.
func (tl *ThemeLoader) ValidateTheme(theme *Theme) error {
	if theme == nil {
		return fmt.Errorf("theme is nil")
	}
	required := []struct {
		name  string
		value Color
	}{
		{"general.background", theme.General.Background},
		{"general.foreground", theme.General.Foreground},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("theme %q missing required color %s", theme.Name, r.name)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
