package tui

import (
	"context"
	"strconv"

	"github.com/derailed/tview"
	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/services"
)

// SettingsPanel is the preferences overlay: auto-sync toggle and sync
// interval, validated inline before anything is sent to the backend.
type SettingsPanel struct {
	*tview.Flex
	app *App

	form     *tview.Form
	errView  *tview.TextView
	autoSync bool
	interval string
}

func NewSettingsPanel(app *App) *SettingsPanel {
	s := &SettingsPanel{
		Flex: tview.NewFlex().SetDirection(tview.FlexRow),
		app:  app,
	}

	s.form = tview.NewForm()
	s.errView = tview.NewTextView().SetDynamicColors(true)

	s.SetBorder(true).
		SetTitle(" ⚙️  Settings ").
		SetTitleAlign(tview.AlignCenter)
	s.AddItem(s.form, 0, 1, true)
	s.AddItem(s.errView, 2, 0, false)

	s.ApplyTheme()
	return s
}

// ApplyTheme repaints the panel with the current theme.
func (s *SettingsPanel) ApplyTheme() {
	s.applyColors(s.app.GetComponentColors("general"))
}

func (s *SettingsPanel) applyColors(colors config.ComponentColors) {
	bg := colors.Background.Color()
	s.SetBackgroundColor(bg)
	s.SetBorderColor(colors.Border.Color())
	s.SetTitleColor(colors.Title.Color())

	s.form.SetBackgroundColor(bg)
	s.form.SetFieldBackgroundColor(bg)
	s.form.SetFieldTextColor(colors.Foreground.Color())
	s.form.SetLabelColor(colors.Title.Color())
	s.form.SetButtonBackgroundColor(colors.Accent.Color())

	s.errView.SetBackgroundColor(bg)
}

// Open loads current preferences into the form.
func (s *SettingsPanel) Open() {
	s.errView.SetText("")
	s.rebuildForm(api.Preferences{AutoSync: true, SyncInterval: 300})

	go func() {
		prefs, err := s.app.prefService.Get(s.app.ctx)
		if err != nil {
			s.app.logger.Printf("settings: preference load failed: %v", err)
			return
		}
		s.app.QueueUpdateDraw(func() { s.rebuildForm(*prefs) })
	}()
}

func (s *SettingsPanel) rebuildForm(prefs api.Preferences) {
	s.autoSync = prefs.AutoSync
	s.interval = strconv.Itoa(prefs.SyncInterval)

	s.form.Clear(true)
	s.form.AddCheckbox("Auto-sync", s.autoSync, func(_ string, checked bool) {
		s.autoSync = checked
	})
	s.form.AddInputField("Sync interval (seconds)", s.interval, 8, nil, func(text string) {
		s.interval = text
	})
	s.form.AddButton("Save", s.save)
	s.form.AddButton("Cancel", s.Close)
}

// save validates the form and pushes the preferences to the backend, then
// reconfigures the running sync scheduler.
func (s *SettingsPanel) save() {
	interval, err := strconv.Atoi(s.interval)
	if err != nil {
		s.showErrors([]services.ValidationError{{Field: "syncInterval", Message: "must be a number"}})
		return
	}
	prefs := api.Preferences{AutoSync: s.autoSync, SyncInterval: interval}
	if errs := services.ValidatePreferences(prefs); len(errs) > 0 {
		s.showErrors(errs)
		return
	}
	s.errView.SetText("")

	go func() {
		ctx, cancel := context.WithTimeout(s.app.ctx, s.app.Config.GetRequestTimeout())
		defer cancel()
		if err := s.app.prefService.Save(ctx, prefs); err != nil {
			s.app.errorHandler.HandleError(s.app.ctx, err, "Could not save settings")
			return
		}
		s.app.syncService.Apply(s.app.ctx, prefs)
		s.app.ShowSuccess("Settings saved")
		s.app.QueueUpdateDraw(func() { s.Close() })
	}()
}

// showErrors renders field errors inline under the form.
func (s *SettingsPanel) showErrors(errs []services.ValidationError) {
	text := ""
	for _, e := range errs {
		text += "[red]" + e.Field + ": " + e.Message + "[-]\n"
	}
	s.errView.SetText(text)
}

// Close hides the panel.
func (s *SettingsPanel) Close() {
	s.app.settingsOpen = false
	s.app.Pages.HidePage("settings")
	s.app.SetFocus(s.app.views["list"])
}
