package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tview"
)

// statusBaseline is the idle status bar text: scope, folder and the two keys
// everyone needs.
func (a *App) statusBaseline() string {
	sel := a.nav.Selection()
	scope := "All Accounts"
	if sel.AccountID != "" {
		if name, ok := a.sidebarModel.AccountName(sel.AccountID); ok {
			scope = name
		} else {
			scope = sel.AccountID
		}
	}
	return fmt.Sprintf(" PrismMail | %s / %s | %s help | %s quit",
		scope, folderLabel(sel.FolderID), a.Keys.Help, a.Keys.Quit)
}

// pullIndicator renders in-drag pull feedback: a dot per dragged row below
// the threshold, flipping to the release hint once the pull is armed.
func pullIndicator(distance int) string {
	if distance <= 0 {
		return ""
	}
	if distance >= pullThresholdRows {
		return " ↓ release to refresh"
	}
	return " ↓ pull to refresh " + strings.Repeat("·", distance)
}

// showPullProgress paints the pull indicator while the drag is active.
func (a *App) showPullProgress(distance int) {
	if a.errorHandler != nil && a.errorHandler.Busy() {
		return
	}
	if status, ok := a.views["status"].(*tview.TextView); ok {
		status.SetText(pullIndicator(distance))
	}
}

// refreshStatusBaseline repaints the baseline unless a transient message is
// showing.
func (a *App) refreshStatusBaseline() {
	if a.errorHandler != nil && a.errorHandler.Busy() {
		return
	}
	if status, ok := a.views["status"].(*tview.TextView); ok {
		status.SetText(a.statusBaseline())
	}
}
