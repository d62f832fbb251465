package tui

import (
	"context"

	"github.com/prismmail/prism-tui/internal/api"
)

// Optimistic mail mutations: the list changes immediately, the backend call
// follows in the background, and a rejection rolls the list back to its
// pre-mutation snapshot before the error is surfaced.

// dispatchOptimistic applies the local change, redraws, and runs the remote
// call off the event loop.
func (a *App) dispatchOptimistic(apply func(*ListState), call func(context.Context) error, failMsg string) {
	rollback := applyOptimistic(a.list, apply)
	a.renderList()
	a.updateViewerFromSelection()

	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, a.Config.GetRequestTimeout())
		defer cancel()
		if err := call(ctx); err != nil {
			rollback()
			a.errorHandler.HandleError(a.ctx, err, failMsg)
			a.QueueUpdateDraw(func() {
				a.renderList()
				a.updateViewerFromSelection()
			})
		}
	}()
}

func (a *App) markRead(messageID string, read bool) {
	a.dispatchOptimistic(
		func(ls *ListState) {
			ls.Update(messageID, func(e *api.EmailSummary) { e.IsRead = read })
		},
		func(ctx context.Context) error {
			return a.mailService.MarkRead(ctx, messageID, read)
		},
		"Could not update read state",
	)
}

func (a *App) toggleReadSelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	a.markRead(email.ID, !email.IsRead)
}

func (a *App) toggleStarSelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	a.dispatchOptimistic(
		func(ls *ListState) {
			ls.Update(email.ID, func(e *api.EmailSummary) { e.IsStarred = !e.IsStarred })
		},
		func(ctx context.Context) error {
			return a.mailService.ToggleStar(ctx, email.ID)
		},
		"Could not update star",
	)
}

func (a *App) toggleFlagSelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	flagged := !email.IsFlagged
	a.dispatchOptimistic(
		func(ls *ListState) {
			ls.Update(email.ID, func(e *api.EmailSummary) { e.IsFlagged = flagged })
		},
		func(ctx context.Context) error {
			return a.mailService.ToggleFlag(ctx, email.ID, flagged)
		},
		"Could not update flag",
	)
}

// archiveSelected removes the row optimistically; the message reappears on
// rollback if the server rejects the archive.
func (a *App) archiveSelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	a.dispatchOptimistic(
		func(ls *ListState) { ls.Remove(email.ID) },
		func(ctx context.Context) error {
			return a.mailService.Archive(ctx, email.ID)
		},
		"Could not archive message",
	)
}

func (a *App) trashSelected() {
	email, ok := a.list.Selected()
	if !ok {
		return
	}
	a.dispatchOptimistic(
		func(ls *ListState) { ls.Remove(email.ID) },
		func(ctx context.Context) error {
			return a.mailService.Delete(ctx, email.ID)
		},
		"Could not delete message",
	)
}
