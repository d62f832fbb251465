package tui

import "context"

// applyOptimistic applies a local list mutation immediately and returns a
// rollback closure restoring the exact pre-mutation state. The caller
// dispatches the remote call afterwards and invokes rollback if the server
// rejects it.
func applyOptimistic(list *ListState, apply func(*ListState)) (rollback func()) {
	snap := list.Snapshot()
	apply(list)
	return func() { list.Restore(snap) }
}

// runOptimistic is the synchronous core of an optimistic mutation: local
// apply, remote dispatch, rollback on rejection. onRolledBack fires after the
// list has been restored so the caller can redraw and surface the error.
func runOptimistic(ctx context.Context, list *ListState, apply func(*ListState), call func(context.Context) error, onRolledBack func(error)) error {
	rollback := applyOptimistic(list, apply)
	if err := call(ctx); err != nil {
		rollback()
		if onRolledBack != nil {
			onRolledBack(err)
		}
		return err
	}
	return nil
}
