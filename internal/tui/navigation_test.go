package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavModel_StartsAtUnifiedInbox(t *testing.T) {
	m := NewNavModel()

	sel := m.Selection()
	assert.Equal(t, "inbox", sel.FolderID)
	assert.Empty(t, sel.AccountID)
	assert.True(t, sel.Unified())
}

func TestNavModel_FolderNeverEmpty(t *testing.T) {
	m := NewNavModel()
	m.SelectFolder("archive", "acct-1")

	// empty folder keeps the current one but still rescopes
	m.SelectFolder("", "")

	sel := m.Selection()
	assert.Equal(t, "archive", sel.FolderID)
	assert.Empty(t, sel.AccountID)
}

func TestNavModel_GenerationBumpsOnEveryChange(t *testing.T) {
	m := NewNavModel()
	g0 := m.Generation()

	g1 := m.SelectFolder("sent", "")
	g2 := m.SelectAccount("acct-1")
	g3 := m.SelectFolder("inbox", "acct-1")

	assert.Greater(t, g1, g0)
	assert.Greater(t, g2, g1)
	assert.Greater(t, g3, g2)
	assert.True(t, m.IsCurrent(g3))
	assert.False(t, m.IsCurrent(g1))
}

func TestNavModel_SelectAccountKeepsFolder(t *testing.T) {
	m := NewNavModel()
	m.SelectFolder("starred", "")

	m.SelectAccount("acct-2")

	sel := m.Selection()
	assert.Equal(t, "starred", sel.FolderID)
	assert.Equal(t, "acct-2", sel.AccountID)
	assert.False(t, sel.Unified())

	// back to unified
	m.SelectAccount("")
	assert.True(t, m.Selection().Unified())
}
