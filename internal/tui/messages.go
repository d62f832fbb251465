package tui

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/derailed/tview"
	"github.com/prismmail/prism-tui/internal/api"
)

// reloadMessages fetches the listing for the current selection. Safe to call
// from any goroutine; it blocks until the fetch lands or is discarded.
func (a *App) reloadMessages() {
	sel := a.nav.Selection()
	gen := a.nav.Generation()
	a.fetchMessages(sel, gen)
}

// fetchMessages loads one folder listing and installs it unless a newer
// selection superseded the fetch while it was in flight.
func (a *App) fetchMessages(sel NavigationSelection, gen uint64) {
	ctx, cancel := context.WithTimeout(a.ctx, a.Config.GetRequestTimeout())
	defer cancel()

	emails, err := a.mailService.ListMail(ctx, sel.FolderID, sel.AccountID)
	if err != nil {
		if a.nav.IsCurrent(gen) {
			a.errorHandler.HandleError(a.ctx, err, "Could not load "+folderLabel(sel.FolderID))
		}
		return
	}
	if !a.list.ReplaceIfCurrent(a.nav, gen, emails) {
		a.logger.Printf("fetch: discarded stale listing for %s (gen %d)", sel.FolderID, gen)
		return
	}
	a.QueueUpdateDraw(func() {
		a.renderList()
		a.updateViewerFromSelection()
		a.refreshStatusBaseline()
	})
}

// visibleEmails applies the local filter to the list model.
func (a *App) visibleEmails() []api.EmailSummary {
	emails := a.list.Emails()
	filter := strings.ToLower(strings.TrimSpace(a.localFilter))
	if filter == "" {
		return emails
	}
	out := emails[:0]
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e.From), filter) ||
			strings.Contains(strings.ToLower(e.Subject), filter) {
			out = append(out, e)
		}
	}
	return out
}

// renderList redraws the message table from the list model.
func (a *App) renderList() {
	table, ok := a.views["list"].(*tview.Table)
	if !ok {
		return
	}

	emails := a.visibleEmails()
	width := a.listWidth()
	selectedID := a.list.SelectedID()

	table.Clear()
	selectedRow := 0
	for i, email := range emails {
		text, color := a.emailRenderer.FormatListRow(email, width)
		cell := tview.NewTableCell(text).
			SetTextColor(color).
			SetExpansion(1).
			SetReference(email.ID)
		table.SetCell(i, 0, cell)
		if email.ID == selectedID {
			selectedRow = i
		}
	}
	if len(emails) > 0 {
		table.Select(selectedRow, 0)
	}

	title := " 📧 " + folderLabel(a.nav.Selection().FolderID) + " "
	if a.localFilter != "" {
		title = title + "(filtered) "
	}
	table.SetTitle(title)
}

// onListCursor tracks the cursor and, in two-pane layouts, previews the
// message under it.
func (a *App) onListCursor(row int) {
	id, ok := a.rowMessageID(row)
	if !ok {
		return
	}
	a.list.Select(id)
	if a.breakpoint.TwoPane() {
		a.updateViewerFromSelection()
	}
	a.refreshStatusBaseline()
}

// onListActivated opens the message under the cursor.
func (a *App) onListActivated(row int) {
	if id, ok := a.rowMessageID(row); ok {
		a.OpenMessage(id)
	}
}

func (a *App) rowMessageID(row int) (string, bool) {
	table, ok := a.views["list"].(*tview.Table)
	if !ok || row < 0 || row >= table.GetRowCount() {
		return "", false
	}
	id, ok := table.GetCell(row, 0).GetReference().(string)
	return id, ok && id != ""
}

// updateViewerFromSelection paints the selected message into the viewer.
func (a *App) updateViewerFromSelection() {
	header, okH := a.views["header"].(*tview.TextView)
	body, okB := a.views["body"].(*tview.TextView)
	if !okH || !okB {
		return
	}

	email, ok := a.list.Selected()
	if !ok {
		header.SetText("")
		body.SetText("[gray]No message selected")
		return
	}
	header.SetText(a.emailRenderer.FormatViewerHeader(email))
	body.SetText(email.Snippet)
	body.ScrollToBeginning()
}

// refreshCounts pulls the unified counts payload into the sidebar. Failures
// are logged only; the sidebar keeps its last good counts.
func (a *App) refreshCounts() {
	ctx, cancel := context.WithTimeout(a.ctx, a.Config.GetRequestTimeout())
	defer cancel()

	counts, err := a.countsService.UnifiedCounts(ctx)
	if err != nil {
		a.logger.Printf("counts refresh failed: %v", err)
		return
	}
	a.sidebarModel.SetCounts(counts)
	a.QueueUpdateDraw(func() { a.sidebar.Reload() })
}

// onPushEvent reacts to server pushes: refresh counts always, reload the
// list when the event touches the folder being looked at.
func (a *App) onPushEvent(ev api.PushEvent) {
	var payload struct {
		AccountID string `json:"accountId"`
		Folder    string `json:"folder"`
	}
	if len(ev.Data) > 0 {
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			a.logger.Printf("push: undecodable %s payload: %v", ev.Type, err)
		}
	}
	a.logger.Printf("push: %s account=%s folder=%s", ev.Type, payload.AccountID, payload.Folder)

	go a.refreshCounts()

	sel := a.nav.Selection()
	relevant := payload.Folder == "" || payload.Folder == sel.FolderID
	if relevant && (sel.Unified() || sel.AccountID == payload.AccountID) {
		go a.reloadMessages()
	}
}

// openFilter reveals the local filter input above the list.
func (a *App) openFilter() {
	container, ok := a.views["listContainer"].(*tview.Flex)
	if !ok {
		return
	}
	a.filterOpen = true
	container.ResizeItem(a.views["filterInput"], 1, 0)
	a.SetFocus(a.views["filterInput"])
}

// closeFilter hides the input; cancelled closes also drop the filter text.
func (a *App) closeFilter(cancelled bool) {
	container, ok := a.views["listContainer"].(*tview.Flex)
	if !ok {
		return
	}
	a.filterOpen = false
	if cancelled {
		a.localFilter = ""
		if input, ok := a.views["filterInput"].(*tview.InputField); ok {
			input.SetText("")
		}
		a.renderList()
	}
	container.ResizeItem(a.views["filterInput"], 0, 0)
	a.SetFocus(a.views["list"])
}

func (a *App) applyLocalFilter(text string) {
	a.localFilter = text
	a.renderList()
}

// listAtTop reports whether the list cursor sits on the first row, the
// precondition for pull-to-refresh.
func (a *App) listAtTop() bool {
	table, ok := a.views["list"].(*tview.Table)
	if !ok {
		return false
	}
	row, _ := table.GetSelection()
	return row <= 0
}
