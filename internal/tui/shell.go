package tui

// App is the shell; the ShellActions surface below is what embedded
// components (sidebar, gestures, compose) are given.

// SelectFolder switches the list to a folder, scoped to one account or to
// the unified view (""), and kicks off the fetch under a fresh generation.
func (a *App) SelectFolder(folderID, accountID string) {
	gen := a.nav.SelectFolder(folderID, accountID)
	sel := a.nav.Selection()
	a.logger.Printf("nav: folder=%s account=%q gen=%d", sel.FolderID, sel.AccountID, gen)

	if a.drawerOpen {
		a.CloseDrawer()
	}
	a.renderList()
	a.refreshStatusBaseline()
	go a.fetchMessages(sel, gen)
}

// SelectAccount rescopes the current folder to one account ("" = unified).
func (a *App) SelectAccount(accountID string) {
	gen := a.nav.SelectAccount(accountID)
	sel := a.nav.Selection()
	a.logger.Printf("nav: account=%q gen=%d", sel.AccountID, gen)

	a.renderList()
	a.refreshStatusBaseline()
	go a.fetchMessages(sel, gen)
}

// OpenMessage selects a message and brings its content into view. On mobile
// this pushes the full-screen message page; wider layouts already show the
// viewer inline. Unread messages are marked read optimistically.
func (a *App) OpenMessage(messageID string) {
	a.list.Select(messageID)
	if email, ok := a.list.Get(messageID); ok && !email.IsRead {
		a.markRead(messageID, true)
	}
	a.updateViewerFromSelection()

	if a.breakpoint.Class == ClassMobile {
		a.messageOpen = true
		a.Pages.SwitchToPage("message")
		a.SetFocus(a.views["body"])
	} else {
		a.SetFocus(a.views["viewerContainer"])
	}
}

// Back closes the topmost overlay. Folder and account selection are left
// untouched, so leaving a mobile message returns to the same list.
func (a *App) Back() {
	switch {
	case a.composeOpen:
		a.composePanel.Close()
	case a.settingsOpen:
		a.settingsPanel.Close()
	case a.drawerOpen:
		a.CloseDrawer()
	case a.filterOpen:
		a.closeFilter(true)
	case a.messageOpen:
		a.messageOpen = false
		a.Pages.SwitchToPage("main")
		a.SetFocus(a.views["list"])
	case a.showHelp:
		a.toggleHelp()
	default:
		a.SetFocus(a.views["list"])
	}
}

// OpenCompose opens the composition overlay, resuming the most recently
// kept draft when one exists.
func (a *App) OpenCompose() {
	if a.composeOpen {
		return
	}
	a.composeOpen = true
	a.composePanel.OpenLatest(a.nav.Selection().AccountID)
	a.Pages.ShowPage("compose")
	a.SetFocus(a.composePanel.FirstField())
}

// OpenSettings opens the preferences form.
func (a *App) OpenSettings() {
	if a.settingsOpen {
		return
	}
	a.settingsOpen = true
	a.settingsPanel.Open()
	a.Pages.ShowPage("settings")
	a.SetFocus(a.settingsPanel)
}

// OpenDrawer shows the folder drawer on layouts without a persistent
// sidebar; on desktop widths it just focuses the sidebar.
func (a *App) OpenDrawer() {
	if a.breakpoint.HasSidebar() {
		a.SetFocus(a.sidebar.View())
		return
	}
	if a.drawerOpen {
		return
	}
	a.drawerOpen = true
	a.sidebar.Reload()
	a.Pages.ShowPage("drawer")
	a.SetFocus(a.sidebar.View())
}

// CloseDrawer hides the folder drawer.
func (a *App) CloseDrawer() {
	if !a.drawerOpen {
		return
	}
	a.drawerOpen = false
	a.Pages.HidePage("drawer")
	a.SetFocus(a.views["list"])
}

// Refresh reloads the current listing and the sidebar counts. Only one
// manual refresh runs at a time; extra requests are dropped.
func (a *App) Refresh() {
	a.mu.Lock()
	if a.refreshing {
		a.mu.Unlock()
		return
	}
	a.refreshing = true
	a.mu.Unlock()

	a.errorHandler.ShowProgress(a.ctx, "Refreshing…")
	go func() {
		defer func() {
			a.mu.Lock()
			a.refreshing = false
			a.mu.Unlock()
			a.pull.Complete()
			a.errorHandler.ClearProgress()
		}()
		a.reloadMessages()
		a.refreshCounts()
	}()
}

// ShowError surfaces an error message in the status bar.
func (a *App) ShowError(msg string) {
	a.errorHandler.ShowError(a.ctx, msg)
}

// ShowSuccess surfaces a success message in the status bar.
func (a *App) ShowSuccess(msg string) {
	a.errorHandler.ShowSuccess(a.ctx, msg)
}
