package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// bindKeys installs the global key handler. Configured bindings are single
// runes; Escape is handled separately so Back always works.
func (a *App) bindKeys() {
	a.SetInputCapture(a.handleKeyEvent)
}

func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		a.Back()
		return nil
	}

	// Text-entry surfaces own their runes
	if a.composeOpen || a.settingsOpen || a.filterOpen {
		return event
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch string(event.Rune()) {
	case a.Keys.Quit:
		a.Stop()
	case a.Keys.Compose:
		a.OpenCompose()
	case a.Keys.Reply:
		a.replySelected()
	case a.Keys.Refresh:
		a.Refresh()
	case a.Keys.Search:
		a.openFilter()
	case a.Keys.Settings:
		a.OpenSettings()
	case a.Keys.ToggleRead:
		a.toggleReadSelected()
	case a.Keys.ToggleStar:
		a.toggleStarSelected()
	case a.Keys.ToggleFlag:
		a.toggleFlagSelected()
	case a.Keys.Archive:
		a.archiveSelected()
	case a.Keys.Trash:
		a.trashSelected()
	case a.Keys.Drawer:
		if a.drawerOpen {
			a.CloseDrawer()
		} else {
			a.OpenDrawer()
		}
	case a.Keys.GrowList:
		a.adjustPanels(5)
	case a.Keys.ShrinkList:
		a.adjustPanels(-5)
	case a.Keys.ThemePicker:
		a.cycleTheme()
	case a.Keys.Help:
		a.toggleHelp()
	default:
		return event
	}
	return nil
}

// replySelected opens compose pre-addressed to the selected message's
// sender.
func (a *App) replySelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	if a.composeOpen {
		return
	}
	a.composeOpen = true
	a.composePanel.OpenReply(email)
	a.Pages.ShowPage("compose")
	a.SetFocus(a.composePanel.FirstField())
}

// toggleHelp swaps the viewer body between the message and the key
// reference.
func (a *App) toggleHelp() {
	body, ok := a.views["body"].(*tview.TextView)
	if !ok {
		return
	}
	if a.showHelp {
		a.showHelp = false
		a.updateViewerFromSelection()
		return
	}
	a.showHelp = true
	body.SetText(a.helpText())
	body.ScrollToBeginning()
}

func (a *App) helpText() string {
	k := a.Keys
	return `[::b]Navigation[-:-:-]
  ↑/↓        move in the list
  enter      open message
  ` + k.Back + `        back / close overlay
  ` + k.Drawer + `          folder drawer

[::b]Messages[-:-:-]
  ` + k.ToggleRead + `          toggle read
  ` + k.ToggleStar + `          toggle star
  ` + k.ToggleFlag + `          toggle flag
  ` + k.Archive + `          archive
  ` + k.Trash + `          trash
  ` + k.Refresh + `          refresh
  ` + k.Search + `          filter list

[::b]Compose[-:-:-]
  ` + k.Compose + `          new message
  ` + k.Reply + `          reply

[::b]Layout[-:-:-]
  ` + k.GrowList + `          grow list pane
  ` + k.ShrinkList + `          shrink list pane
  ` + k.ThemePicker + `          cycle theme

[::b]Other[-:-:-]
  ` + k.Settings + `          settings
  ` + k.Help + `          this help
  ` + k.Quit + `          quit`
}
