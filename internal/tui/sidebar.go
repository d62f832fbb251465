package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
)

// Sidebar section keys. Account sections use sectionAccountPrefix + ID.
const (
	sectionUnified       = "unified"
	sectionSmart         = "smart"
	sectionOrganization  = "organization"
	sectionAccountPrefix = "account:"
)

var (
	unifiedFolders      = []string{"inbox", "sent", "drafts"}
	accountFolders      = []string{"inbox", "sent", "drafts"}
	smartFolders        = []string{"focus", "unread", "priority"}
	organizationFolders = []string{"starred", "archive", "trash"}
)

// SidebarModel is the navigation tree's data: accounts, folder counts and
// which sections are expanded. Expansion defaults favor the everyday groups;
// smart folders start collapsed.
type SidebarModel struct {
	mu        sync.Mutex
	accounts  []api.AccountConnection
	expansion map[string]bool
	counts    *api.UnifiedCounts
	live      bool
}

func NewSidebarModel() *SidebarModel {
	return &SidebarModel{expansion: make(map[string]bool)}
}

func defaultExpanded(key string) bool {
	return key != sectionSmart
}

// IsExpanded reports whether a section is expanded, using the per-section
// default until the user has toggled it.
func (m *SidebarModel) IsExpanded(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isExpandedLocked(key)
}

func (m *SidebarModel) isExpandedLocked(key string) bool {
	if v, ok := m.expansion[key]; ok {
		return v
	}
	return defaultExpanded(key)
}

// SetExpanded sets a section's expansion explicitly. Setting an already
// matching state is a no-op.
func (m *SidebarModel) SetExpanded(key string, expanded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expansion[key] = expanded
}

// Toggle flips one section and returns the new state.
func (m *SidebarModel) Toggle(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := !m.isExpandedLocked(key)
	m.expansion[key] = next
	return next
}

// SetAccounts replaces the account list.
func (m *SidebarModel) SetAccounts(accounts []api.AccountConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = accounts
}

// Accounts returns the known accounts.
func (m *SidebarModel) Accounts() []api.AccountConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.AccountConnection, len(m.accounts))
	copy(out, m.accounts)
	return out
}

// AccountName resolves an account ID to its display name.
func (m *SidebarModel) AccountName(accountID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ID == accountID {
			return a.Name, true
		}
	}
	return "", false
}

// SetCounts installs a live counts payload. Live data always wins over the
// zeroed placeholder the tree starts with; nil payloads are ignored so a
// failed refresh never blanks the badges.
func (m *SidebarModel) SetCounts(counts *api.UnifiedCounts) {
	if counts == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = counts
	m.live = true
}

// HasLiveCounts reports whether at least one counts payload has landed.
func (m *SidebarModel) HasLiveCounts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// CountFor returns the counts for a folder, scoped to an account or to the
// unified view ("").
func (m *SidebarModel) CountFor(folderID, accountID string) (api.FolderCounts, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countForLocked(folderID, accountID)
}

func (m *SidebarModel) countForLocked(folderID, accountID string) (api.FolderCounts, bool) {
	if m.counts == nil {
		return api.FolderCounts{}, false
	}
	if accountID == "" {
		c, ok := m.counts.Unified[folderID]
		return c, ok
	}
	acct, ok := m.counts.Accounts[accountID]
	if !ok {
		return api.FolderCounts{}, false
	}
	c, ok := acct[folderID]
	return c, ok
}

// SidebarRowKind distinguishes section headers from selectable folders.
type SidebarRowKind int

const (
	RowSectionHeader SidebarRowKind = iota
	RowFolder
)

// SidebarRow is one renderable line of the navigation tree.
type SidebarRow struct {
	Kind      SidebarRowKind
	Label     string
	Section   string // section key, set on headers
	FolderID  string // set on folder rows
	AccountID string // "" = unified scope
	Unread    int
	HasCount  bool
}

// Rows flattens the tree into the visible rows, honoring expansion state.
func (m *SidebarModel) Rows() []SidebarRow {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []SidebarRow
	section := func(key, label string, folders []string, accountID string) {
		rows = append(rows, SidebarRow{Kind: RowSectionHeader, Label: label, Section: key, AccountID: accountID})
		if !m.isExpandedLocked(key) {
			return
		}
		for _, f := range folders {
			row := SidebarRow{Kind: RowFolder, Label: folderLabel(f), FolderID: f, AccountID: accountID}
			if c, ok := m.countForLocked(f, accountID); ok {
				row.Unread, row.HasCount = c.Unread, true
			}
			rows = append(rows, row)
		}
	}

	section(sectionUnified, "All Accounts", unifiedFolders, "")
	for _, acct := range m.accounts {
		section(sectionAccountPrefix+acct.ID, acct.Name, accountFolders, acct.ID)
	}
	section(sectionSmart, "Smart Folders", smartFolders, "")
	section(sectionOrganization, "Organization", organizationFolders, "")
	return rows
}

func folderLabel(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// Sidebar renders the navigation tree into a table and routes selections to
// the shell. It is mounted as a persistent column on desktop widths and
// inside the drawer overlay below that.
type Sidebar struct {
	table   *tview.Table
	model   *SidebarModel
	actions ShellActions
	colors  config.ComponentColors
	rows    []SidebarRow
}

func NewSidebar(model *SidebarModel, actions ShellActions, colors config.ComponentColors) *Sidebar {
	s := &Sidebar{
		model:   model,
		actions: actions,
		colors:  colors,
	}
	table := tview.NewTable().SetSelectable(true, false)
	table.SetBackgroundColor(colors.Background.Color())
	table.SetBorder(true).
		SetBorderColor(colors.Border.Color()).
		SetTitle(" 📁 Folders ").
		SetTitleColor(colors.Title.Color()).
		SetTitleAlign(tview.AlignCenter)
	table.SetSelectedFunc(func(row, _ int) { s.activate(row) })
	table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == ' ' {
			row, _ := table.GetSelection()
			s.toggleSection(row)
			return nil
		}
		return event
	})
	s.table = table
	s.Reload()
	return s
}

// View returns the table primitive for mounting.
func (s *Sidebar) View() *tview.Table {
	return s.table
}

// SetColors re-themes the sidebar.
func (s *Sidebar) SetColors(colors config.ComponentColors) {
	s.colors = colors
	s.table.SetBackgroundColor(colors.Background.Color())
	s.table.SetBorderColor(colors.Border.Color())
	s.table.SetTitleColor(colors.Title.Color())
	s.Reload()
}

// Reload rebuilds the visible rows from the model, keeping the cursor on the
// same row index where possible.
func (s *Sidebar) Reload() {
	row, _ := s.table.GetSelection()
	s.rows = s.model.Rows()
	s.table.Clear()
	for i, r := range s.rows {
		cell := tview.NewTableCell(s.renderRow(r)).SetExpansion(1)
		if r.Kind == RowSectionHeader {
			cell.SetTextColor(s.colors.Title.Color()).SetAttributes(tcell.AttrBold)
		} else {
			cell.SetTextColor(s.colors.Foreground.Color())
		}
		s.table.SetCell(i, 0, cell)
	}
	if row >= len(s.rows) {
		row = len(s.rows) - 1
	}
	if row >= 0 {
		s.table.Select(row, 0)
	}
}

func (s *Sidebar) renderRow(r SidebarRow) string {
	if r.Kind == RowSectionHeader {
		chevron := "▸"
		if s.model.IsExpanded(r.Section) {
			chevron = "▾"
		}
		return fmt.Sprintf("%s %s", chevron, r.Label)
	}
	label := "   " + r.Label
	if r.HasCount && r.Unread > 0 {
		return fmt.Sprintf("%s (%d)", label, r.Unread)
	}
	return label
}

func (s *Sidebar) activate(row int) {
	if row < 0 || row >= len(s.rows) {
		return
	}
	r := s.rows[row]
	switch r.Kind {
	case RowSectionHeader:
		// Account headers rescope the current folder to that account; the
		// chevron toggle lives on the space key.
		if id, ok := strings.CutPrefix(r.Section, sectionAccountPrefix); ok {
			if s.actions != nil {
				s.actions.SelectAccount(id)
			}
			return
		}
		s.model.Toggle(r.Section)
		s.Reload()
	case RowFolder:
		if s.actions != nil {
			s.actions.SelectFolder(r.FolderID, r.AccountID)
		}
	}
}

// toggleSection collapses or expands the section header under the cursor.
func (s *Sidebar) toggleSection(row int) {
	if row < 0 || row >= len(s.rows) {
		return
	}
	r := s.rows[row]
	if r.Kind != RowSectionHeader {
		return
	}
	s.model.Toggle(r.Section)
	s.Reload()
}
