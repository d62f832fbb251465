package tui

import (
	"testing"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEmails(ids ...string) []api.EmailSummary {
	out := make([]api.EmailSummary, len(ids))
	for i, id := range ids {
		out[i] = api.EmailSummary{ID: id, Subject: "subject " + id}
	}
	return out
}

func TestListState_ReplaceIfCurrent_DiscardsStaleFetch(t *testing.T) {
	nav := NewNavModel()
	ls := NewListState()

	slowGen := nav.SelectFolder("inbox", "")
	// the user switches folders while the inbox fetch is in flight
	fastGen := nav.SelectFolder("archive", "")

	ok := ls.ReplaceIfCurrent(nav, fastGen, sampleEmails("a1", "a2"))
	require.True(t, ok)

	// the slow inbox response lands afterwards and must be dropped
	ok = ls.ReplaceIfCurrent(nav, slowGen, sampleEmails("i1"))
	assert.False(t, ok)
	assert.Equal(t, sampleEmails("a1", "a2"), ls.Emails())
}

func TestListState_ReplaceClearsVanishedSelection(t *testing.T) {
	ls := NewListState()
	ls.ReplaceIfCurrent(nil, 0, sampleEmails("m1", "m2"))
	ls.Select("m2")

	ls.ReplaceIfCurrent(nil, 0, sampleEmails("m1", "m3"))

	assert.Empty(t, ls.SelectedID())
}

func TestListState_SnapshotRestore_ExactState(t *testing.T) {
	ls := NewListState()
	ls.ReplaceIfCurrent(nil, 0, sampleEmails("m1", "m2", "m3"))
	ls.Select("m2")

	snap := ls.Snapshot()

	ls.Update("m2", func(e *api.EmailSummary) { e.IsRead = true })
	ls.Remove("m1")
	ls.Select("m3")

	ls.Restore(snap)

	assert.Equal(t, sampleEmails("m1", "m2", "m3"), ls.Emails())
	assert.Equal(t, "m2", ls.SelectedID())
}

func TestListState_Remove_MovesSelectionToNeighbor(t *testing.T) {
	ls := NewListState()
	ls.ReplaceIfCurrent(nil, 0, sampleEmails("m1", "m2", "m3"))
	ls.Select("m2")

	require.True(t, ls.Remove("m2"))
	assert.Equal(t, "m3", ls.SelectedID())

	ls.Select("m3")
	require.True(t, ls.Remove("m3"))
	assert.Equal(t, "m1", ls.SelectedID())

	require.True(t, ls.Remove("m1"))
	assert.Empty(t, ls.SelectedID())
	assert.Zero(t, ls.Len())
}

func TestListState_UpdateMissingMessage(t *testing.T) {
	ls := NewListState()
	ls.ReplaceIfCurrent(nil, 0, sampleEmails("m1"))

	ok := ls.Update("missing", func(e *api.EmailSummary) { e.IsRead = true })
	assert.False(t, ok)
}
