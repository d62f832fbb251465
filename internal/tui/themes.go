package tui

import (
	"os"
	"path/filepath"

	"github.com/derailed/tview"
	"github.com/prismmail/prism-tui/internal/config"
)

// themesDir resolves where theme YAML files live.
func (a *App) themesDir() string {
	if dir := a.Config.Layout.CustomThemeDir; dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(config.DefaultConfigPath()), "themes")
}

// loadTheme installs a theme by name, falling back to the built-in default
// when the file is missing, malformed or lacks the foundation colors.
func (a *App) loadTheme(name string) {
	loader := config.NewThemeLoader(a.themesDir())
	a.seedThemeTemplate(loader)
	theme, err := loader.LoadTheme(name)
	if err != nil {
		a.logger.Printf("theme %q load failed, using default: %v", name, err)
		theme = config.DefaultTheme()
	} else if err := loader.ValidateTheme(theme); err != nil {
		a.logger.Printf("theme %q invalid, using default: %v", name, err)
		theme = config.DefaultTheme()
	}
	a.currentTheme = theme
	a.emailRenderer.UpdateFromTheme(theme)
}

// seedThemeTemplate writes the built-in theme out once so users have an
// editable file to start their own from.
func (a *App) seedThemeTemplate(loader *config.ThemeLoader) {
	path := filepath.Join(a.themesDir(), "prism-dark.yaml")
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := loader.SaveTheme(config.DefaultTheme(), "prism-dark.yaml"); err != nil {
		a.logger.Printf("could not write theme template: %v", err)
	}
}

// cycleTheme switches to the next available theme and repaints.
func (a *App) cycleTheme() {
	loader := config.NewThemeLoader(a.themesDir())
	names, err := loader.ListAvailableThemes()
	if err != nil || len(names) == 0 {
		a.errorHandler.ShowWarning(a.ctx, "No themes available")
		return
	}

	current := a.Config.Layout.CurrentTheme
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}

	a.loadTheme(next)
	a.Config.Layout.CurrentTheme = next
	a.applyThemeToViews()
	a.errorHandler.ShowSuccess(a.ctx, "Theme: "+next)
}

// applyThemeToViews repaints the long-lived primitives with the current
// theme. Layout containers are rebuilt, picking colors up on the way.
func (a *App) applyThemeToViews() {
	if list, ok := a.views["list"].(*tview.Table); ok {
		colors := a.GetComponentColors("list")
		list.SetBackgroundColor(colors.Background.Color())
		list.SetBorderColor(colors.Border.Color())
		list.SetTitleColor(colors.Title.Color())
	}
	if header, ok := a.views["header"].(*tview.TextView); ok {
		colors := a.GetComponentColors("viewer")
		header.SetBackgroundColor(colors.Background.Color())
		header.SetTextColor(colors.Title.Color())
	}
	if body, ok := a.views["body"].(*tview.TextView); ok {
		colors := a.GetComponentColors("viewer")
		body.SetBackgroundColor(colors.Background.Color())
		body.SetTextColor(colors.Foreground.Color())
	}
	if vc, ok := a.views["viewerContainer"].(*tview.Flex); ok {
		colors := a.GetComponentColors("viewer")
		vc.SetBackgroundColor(colors.Background.Color())
		vc.SetBorderColor(colors.Border.Color())
		vc.SetTitleColor(colors.Title.Color())
	}
	a.sidebar.SetColors(a.GetComponentColors("sidebar"))
	a.composePanel.ApplyTheme()
	a.settingsPanel.ApplyTheme()
	a.rebuildLayout()
}
