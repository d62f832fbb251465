package tui

import "sync"

const defaultFolderID = "inbox"

// NavigationSelection identifies what the message list shows: a folder,
// scoped either to a single account or to the unified view across all
// accounts. FolderID is never empty.
type NavigationSelection struct {
	FolderID  string
	AccountID string // "" selects the unified view
}

// Unified reports whether the selection spans all accounts.
func (s NavigationSelection) Unified() bool {
	return s.AccountID == ""
}

// NavModel holds the current folder/account selection together with a
// generation counter used to discard stale list responses. Every selection
// change bumps the generation; a fetch started under an older generation must
// never land, no matter how late its response arrives.
type NavModel struct {
	mu  sync.Mutex
	sel NavigationSelection
	gen uint64
}

// NewNavModel starts at the unified inbox.
func NewNavModel() *NavModel {
	return &NavModel{sel: NavigationSelection{FolderID: defaultFolderID}}
}

// Selection returns the current selection.
func (m *NavModel) Selection() NavigationSelection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sel
}

// Generation returns the current selection generation.
func (m *NavModel) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// IsCurrent reports whether a fetch started at gen is still the latest.
func (m *NavModel) IsCurrent(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen
}

// SelectFolder switches to a folder within the given account scope and
// returns the new generation. An empty folder keeps the current one so the
// selection can never end up folderless.
func (m *NavModel) SelectFolder(folderID, accountID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if folderID == "" {
		folderID = m.sel.FolderID
	}
	m.sel = NavigationSelection{FolderID: folderID, AccountID: accountID}
	m.gen++
	return m.gen
}

// SelectAccount keeps the current folder but scopes it to one account.
// An empty accountID returns to the unified view.
func (m *NavModel) SelectAccount(accountID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sel.AccountID = accountID
	m.gen++
	return m.gen
}
