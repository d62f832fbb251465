package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Widths in columns for the fixed panes.
const (
	sidebarCols    = 28
	drawerCols     = 32
	tabletListCols = 45
)

// initComponents builds the leaf primitives once; rebuildLayout composes
// them into the breakpoint-specific page structure.
func (a *App) initComponents() {
	listColors := a.GetComponentColors("list")
	list := tview.NewTable().SetSelectable(true, false)
	list.SetBackgroundColor(listColors.Background.Color())
	list.SetBorder(true).
		SetBorderColor(listColors.Border.Color()).
		SetBorderAttributes(tcell.AttrBold).
		SetTitle(" 📧 Messages ").
		SetTitleColor(listColors.Title.Color()).
		SetTitleAlign(tview.AlignCenter)
	list.SetSelectionChangedFunc(func(row, _ int) { a.onListCursor(row) })
	list.SetSelectedFunc(func(row, _ int) { a.onListActivated(row) })

	// Local filter input, mounted hidden above the list
	filterInput := tview.NewInputField().
		SetLabel(" 🔍 ").
		SetFieldBackgroundColor(listColors.Background.Color())
	filterInput.SetChangedFunc(func(text string) { a.applyLocalFilter(text) })
	filterInput.SetDoneFunc(func(key tcell.Key) { a.closeFilter(key == tcell.KeyEscape) })

	listContainer := tview.NewFlex().SetDirection(tview.FlexRow)
	listContainer.SetBackgroundColor(listColors.Background.Color())
	listContainer.AddItem(filterInput, 0, 0, false)
	listContainer.AddItem(list, 0, 1, true)

	// Viewer: colored header block above the scrollable body
	viewerColors := a.GetComponentColors("viewer")
	header := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	header.SetBackgroundColor(viewerColors.Background.Color())
	header.SetTextColor(viewerColors.Title.Color())

	body := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	body.SetBackgroundColor(viewerColors.Background.Color())
	body.SetTextColor(viewerColors.Foreground.Color())

	viewerContainer := tview.NewFlex().SetDirection(tview.FlexRow)
	viewerContainer.SetBackgroundColor(viewerColors.Background.Color())
	viewerContainer.SetBorder(true).
		SetBorderColor(viewerColors.Border.Color()).
		SetBorderAttributes(tcell.AttrBold).
		SetTitle(" 📄 Message ").
		SetTitleColor(viewerColors.Title.Color()).
		SetTitleAlign(tview.AlignCenter)
	viewerContainer.AddItem(header, 4, 0, false)
	viewerContainer.AddItem(body, 0, 1, false)

	status := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	status.SetBackgroundColor(a.GetComponentColors("general").Background.Color())

	a.views["list"] = list
	a.views["filterInput"] = filterInput
	a.views["listContainer"] = listContainer
	a.views["header"] = header
	a.views["body"] = body
	a.views["viewerContainer"] = viewerContainer
	a.views["status"] = status

	a.errorHandler = NewErrorHandler(a.Application, a, status, a.logger)

	a.sidebar = NewSidebar(a.sidebarModel, a, a.GetComponentColors("sidebar"))
	a.composePanel = NewComposePanel(a)
	a.settingsPanel = NewSettingsPanel(a)

	status.SetText(a.statusBaseline())
}

// rebuildLayout recomposes the page structure for the current breakpoint.
// The three modes are mutually exclusive: single-pane with overlays, fixed
// two-pane, and resizable two-pane with a persistent sidebar.
func (a *App) rebuildLayout() {
	class := a.breakpoint.Class

	for _, page := range []string{"main", "message", "drawer", "compose", "settings"} {
		a.Pages.RemovePage(page)
	}

	generalBg := a.GetComponentColors("general").Background.Color()
	main := tview.NewFlex().SetDirection(tview.FlexRow)
	main.SetBackgroundColor(generalBg)

	switch class {
	case ClassMobile:
		// Single pane; the viewer lives on its own page
		main.AddItem(a.views["listContainer"], 0, 1, true)

	case ClassTablet:
		split := tview.NewFlex().SetDirection(tview.FlexColumn)
		split.SetBackgroundColor(generalBg)
		split.AddItem(a.views["listContainer"], tabletListCols, 0, true)
		split.AddItem(a.views["viewerContainer"], 0, 1, false)
		main.AddItem(split, 0, 1, true)

	default: // desktop, xl
		sizes := a.panels.Restore(a.ctx, class)

		content := tview.NewFlex().SetDirection(tview.FlexColumn)
		content.SetBackgroundColor(generalBg)
		content.AddItem(a.views["listContainer"], 0, sizes[0], true)
		content.AddItem(a.views["viewerContainer"], 0, sizes[1], false)
		a.views["contentSplit"] = content

		split := tview.NewFlex().SetDirection(tview.FlexColumn)
		split.SetBackgroundColor(generalBg)
		split.AddItem(a.sidebar.View(), sidebarCols, 0, false)
		split.AddItem(content, 0, 1, true)
		main.AddItem(split, 0, 1, true)
	}

	main.AddItem(a.views["status"], 1, 0, false)
	a.views["mainFlex"] = main
	a.Pages.AddPage("main", main, true, true)

	// Mobile-only full-screen message page
	if class == ClassMobile {
		message := tview.NewFlex().SetDirection(tview.FlexRow)
		message.SetBackgroundColor(generalBg)
		message.AddItem(a.views["viewerContainer"], 0, 1, true)
		message.AddItem(a.views["status"], 1, 0, false)
		a.Pages.AddPage("message", message, true, false)
	} else {
		// A two-pane layout shows the viewer inline; drop the overlay
		a.messageOpen = false
	}

	// Drawer overlay for the widths without a persistent sidebar
	if !a.breakpoint.HasSidebar() {
		drawer := tview.NewFlex().SetDirection(tview.FlexColumn)
		drawer.AddItem(a.sidebar.View(), drawerCols, 0, true)
		scrim := tview.NewBox().SetBackgroundColor(generalBg)
		drawer.AddItem(scrim, 0, 1, false)
		a.Pages.AddPage("drawer", drawer, true, false)
	} else {
		a.drawerOpen = false
	}

	// Compose and settings keep their pages across breakpoints
	a.Pages.AddPage("compose", a.composePanel, true, false)
	a.Pages.AddPage("settings", a.settingsPanel, true, false)

	a.restoreOverlays()
	a.renderList()
	a.updateViewerFromSelection()
}

// restoreOverlays re-shows whichever overlay was open before a rebuild.
func (a *App) restoreOverlays() {
	switch {
	case a.composeOpen:
		a.Pages.ShowPage("compose")
	case a.settingsOpen:
		a.Pages.ShowPage("settings")
	case a.messageOpen && a.breakpoint.Class == ClassMobile:
		a.Pages.SwitchToPage("message")
	case a.drawerOpen && !a.breakpoint.HasSidebar():
		a.Pages.ShowPage("drawer")
		a.SetFocus(a.sidebar.View())
	}
}

// applyPanelSizes pushes the current split into the live flex without a full
// rebuild.
func (a *App) applyPanelSizes(sizes PanelSizes) {
	content, ok := a.views["contentSplit"].(*tview.Flex)
	if !ok || !a.breakpoint.Resizable() {
		return
	}
	content.ResizeItem(a.views["listContainer"], 0, sizes[0])
	content.ResizeItem(a.views["viewerContainer"], 0, sizes[1])
}

// adjustPanels grows or shrinks the list pane by delta percentage points.
func (a *App) adjustPanels(delta int) {
	if !a.breakpoint.Resizable() {
		return
	}
	sizes := a.panels.AdjustList(delta)
	a.applyPanelSizes(sizes)
	a.renderList()
}

// listWidth returns the columns currently available to list rows.
func (a *App) listWidth() int {
	w := a.screenWidth
	switch a.breakpoint.Class {
	case ClassMobile:
		// full width
	case ClassTablet:
		w = tabletListCols
	default:
		sizes := a.panels.Get()
		w = (a.screenWidth - sidebarCols) * sizes[0] / 100
	}
	w -= 2 // border columns
	if w < 20 {
		w = 20
	}
	return w
}
