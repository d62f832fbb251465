package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// handleMouse feeds mouse events into the gesture layer. The first event
// proves the terminal is mouse-capable and arms the gestures; keyboard-only
// terminals never get here, so gestures cost them nothing.
func (a *App) handleMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	if event == nil {
		return event, action
	}
	if !a.breakpoint.MouseCapable {
		a.breakpoint.MouseCapable = true
		a.logger.Printf("mouse capability detected, gestures enabled")
	}

	// Gestures only drive the compact layouts; desktop has the sidebar
	// and keys for everything.
	if a.breakpoint.HasSidebar() || a.composeOpen || a.settingsOpen {
		return event, action
	}

	x, y := event.Position()
	switch action {
	case tview.MouseLeftDown:
		a.swipe.Begin(x, a.screenWidth)
		a.pull.Begin(y, a.listAtTop())

	case tview.MouseMove:
		if intent := a.swipe.Move(x); intent != IntentNone {
			a.fireGesture(intent)
			return nil, action
		}
		if d := a.pull.Move(y); d > 0 {
			a.showPullProgress(d)
		}

	case tview.MouseLeftUp:
		a.swipe.Release()
		if intent := a.pull.Release(); intent != IntentNone {
			a.fireGesture(intent)
			return nil, action
		}
		// an abandoned pull leaves the indicator behind
		a.refreshStatusBaseline()
	}
	return event, action
}

func (a *App) fireGesture(intent GestureIntent) {
	switch intent {
	case IntentRefresh:
		a.logger.Printf("gesture: pull-to-refresh")
		a.Refresh()
	case IntentOpenDrawer:
		a.logger.Printf("gesture: edge swipe -> drawer")
		a.OpenDrawer()
	case IntentCompose:
		a.logger.Printf("gesture: edge swipe -> compose")
		a.OpenCompose()
	}
}
