package tui

import (
	"sync"

	"github.com/prismmail/prism-tui/internal/api"
)

// ListState is the message list's data model: the visible rows plus the
// selected message ID. Fetch goroutines and optimistic mutations write it,
// the renderer reads it.
type ListState struct {
	mu       sync.RWMutex
	emails   []api.EmailSummary
	selected string
}

func NewListState() *ListState {
	return &ListState{}
}

// ReplaceIfCurrent installs a freshly fetched listing, but only when the
// fetch's generation is still the latest selection. Stale responses are
// dropped so a slow fetch for a previous folder can never overwrite the rows
// of the folder the user switched to afterwards.
func (s *ListState) ReplaceIfCurrent(nav *NavModel, gen uint64, emails []api.EmailSummary) bool {
	if nav != nil && !nav.IsCurrent(gen) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = emails
	if s.selected != "" && s.indexOfLocked(s.selected) < 0 {
		s.selected = ""
	}
	return true
}

// Emails returns a copy of the visible rows.
func (s *ListState) Emails() []api.EmailSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.EmailSummary, len(s.emails))
	copy(out, s.emails)
	return out
}

// Len returns the number of visible rows.
func (s *ListState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.emails)
}

// Get returns the row with the given message ID.
func (s *ListState) Get(id string) (api.EmailSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfLocked(id); i >= 0 {
		return s.emails[i], true
	}
	return api.EmailSummary{}, false
}

// IndexOf returns the row index of a message ID, or -1.
func (s *ListState) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfLocked(id)
}

// Select marks a message as the current one.
func (s *ListState) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// SelectedID returns the current message ID, "" when nothing is selected.
func (s *ListState) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Selected returns the currently selected row.
func (s *ListState) Selected() (api.EmailSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return api.EmailSummary{}, false
	}
	if i := s.indexOfLocked(s.selected); i >= 0 {
		return s.emails[i], true
	}
	return api.EmailSummary{}, false
}

// Update applies fn to the row with the given ID, returning false when the
// message is no longer visible.
func (s *ListState) Update(id string, fn func(*api.EmailSummary)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return false
	}
	fn(&s.emails[i])
	return true
}

// Remove drops the row with the given ID, keeping the selection on the
// nearest remaining row.
func (s *ListState) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return false
	}
	s.emails = append(s.emails[:i], s.emails[i+1:]...)
	if s.selected == id {
		s.selected = ""
		if len(s.emails) > 0 {
			if i >= len(s.emails) {
				i = len(s.emails) - 1
			}
			s.selected = s.emails[i].ID
		}
	}
	return true
}

// Snapshot copies the current rows and selection so a rejected remote
// mutation can roll back to exactly the pre-mutation state.
func (s *ListState) Snapshot() ListSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := ListSnapshot{
		emails:   make([]api.EmailSummary, len(s.emails)),
		selected: s.selected,
	}
	copy(snap.emails, s.emails)
	return snap
}

// Restore reinstalls a snapshot taken before an optimistic mutation.
func (s *ListState) Restore(snap ListSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = make([]api.EmailSummary, len(snap.emails))
	copy(s.emails, snap.emails)
	s.selected = snap.selected
}

func (s *ListState) indexOfLocked(id string) int {
	for i := range s.emails {
		if s.emails[i].ID == id {
			return i
		}
	}
	return -1
}

// ListSnapshot is an immutable copy of the list used for rollback.
type ListSnapshot struct {
	emails   []api.EmailSummary
	selected string
}

// Emails returns the snapshot rows.
func (ls ListSnapshot) Emails() []api.EmailSummary {
	out := make([]api.EmailSummary, len(ls.emails))
	copy(out, ls.emails)
	return out
}
