package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/prismmail/prism-tui/internal/api"
)

// CountsAPI is the slice of the REST client the counts service uses.
type CountsAPI interface {
	UnifiedCounts(ctx context.Context) (*api.UnifiedCounts, error)
}

// CountsServiceImpl implements CountsService. It remembers the last
// successfully fetched payload so a transient refresh failure never blanks
// badges that already showed live data.
type CountsServiceImpl struct {
	client CountsAPI

	mu   sync.RWMutex
	last *api.UnifiedCounts
}

// NewCountsService creates a new counts service
func NewCountsService(client CountsAPI) *CountsServiceImpl {
	return &CountsServiceImpl{client: client}
}

// UnifiedCounts fetches fresh counts. On failure it returns the last good
// payload when one exists, surfacing the error only when nothing live has
// ever loaded.
func (s *CountsServiceImpl) UnifiedCounts(ctx context.Context) (*api.UnifiedCounts, error) {
	counts, err := s.client.UnifiedCounts(ctx)
	if err != nil {
		s.mu.RLock()
		last := s.last
		s.mu.RUnlock()
		if last != nil {
			return last, nil
		}
		return nil, err
	}
	s.mu.Lock()
	s.last = counts
	s.mu.Unlock()
	return counts, nil
}

// AccountCounts returns one account's per-folder counts.
func (s *CountsServiceImpl) AccountCounts(ctx context.Context, accountID string) (map[string]api.FolderCounts, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf("accountID cannot be empty: %w", ErrInvalidInput)
	}
	counts, err := s.UnifiedCounts(ctx)
	if err != nil {
		return nil, err
	}
	if counts.Accounts == nil {
		return map[string]api.FolderCounts{}, nil
	}
	folders, ok := counts.Accounts[accountID]
	if !ok {
		// Unknown account: empty counts, mirrors "no results" behavior.
		return map[string]api.FolderCounts{}, nil
	}
	return folders, nil
}

// HasLiveData reports whether a live counts payload has ever loaded.
func (s *CountsServiceImpl) HasLiveData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last != nil
}
