package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/prismmail/prism-tui/internal/api"
)

// SyncAPI is the slice of the REST client the sync service uses.
type SyncAPI interface {
	TriggerSync(ctx context.Context, accountID string, req api.SyncRequest) error
}

// SyncServiceImpl implements SyncService. It runs one scheduler goroutine
// that wakes on the configured interval, walks the active accounts in
// protocol-preference order, and fires their sync calls one at a time
// through a rate limiter so the backend never sees a burst.
type SyncServiceImpl struct {
	client   SyncAPI
	accounts AccountService
	logger   *log.Logger

	// stagger spaces successive per-account sync calls within one round.
	stagger *rate.Limiter

	mu      sync.Mutex
	cancel  context.CancelFunc
	applyCh chan api.Preferences
	running bool
	// OnRoundComplete is invoked after each completed sync round (tests, UI refresh).
	OnRoundComplete func(synced int)
}

// NewSyncService creates a new sync scheduler.
func NewSyncService(client SyncAPI, accounts AccountService, logger *log.Logger) *SyncServiceImpl {
	return &SyncServiceImpl{
		client:   client,
		accounts: accounts,
		logger:   logger,
		// One sync call per 500ms keeps multi-account rounds staggered.
		stagger: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		applyCh: make(chan api.Preferences, 1),
	}
}

// Start launches the scheduler. A second Start while running is a no-op.
func (s *SyncServiceImpl) Start(ctx context.Context, prefs api.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	go s.run(ctx, prefs)
}

// Stop halts the scheduler.
func (s *SyncServiceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running = false
}

// Apply reconfigures the scheduler after a preference change. When the
// scheduler is idle and auto-sync was just enabled, it starts it.
func (s *SyncServiceImpl) Apply(ctx context.Context, prefs api.Preferences) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		if prefs.AutoSync {
			s.Start(ctx, prefs)
		}
		return
	}
	select {
	case s.applyCh <- prefs:
	default:
		// A pending reconfiguration is already queued; the latest delivery
		// below drains it first, so drop-and-replace.
		select {
		case <-s.applyCh:
		default:
		}
		s.applyCh <- prefs
	}
}

// SyncNow triggers an immediate sync of one account's folder.
func (s *SyncServiceImpl) SyncNow(ctx context.Context, accountID, folder string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("accountID cannot be empty: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(folder) == "" {
		folder = "inbox"
	}
	return s.client.TriggerSync(ctx, accountID, api.SyncRequest{Folder: folder, Limit: 50})
}

func (s *SyncServiceImpl) run(ctx context.Context, prefs api.Preferences) {
	ticker := time.NewTicker(intervalFor(prefs))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case next := <-s.applyCh:
			prefs = next
			ticker.Reset(intervalFor(prefs))
		case <-ticker.C:
			if !prefs.AutoSync {
				continue
			}
			s.syncRound(ctx)
		}
	}
}

// syncRound fires one staggered sync per active account. A failure on one
// account never aborts the round; background errors are logged, not surfaced.
func (s *SyncServiceImpl) syncRound(ctx context.Context) {
	accounts, err := s.accounts.ActiveAccounts(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("sync round: listing accounts failed: %v", err)
		}
		return
	}
	synced := 0
	for _, acct := range PlanSyncOrder(accounts) {
		if err := s.stagger.Wait(ctx); err != nil {
			return
		}
		if err := s.SyncNow(ctx, acct.ID, "inbox"); err != nil {
			if s.logger != nil {
				s.logger.Printf("sync round: account %s failed: %v", acct.ID, err)
			}
			continue
		}
		synced++
	}
	if s.OnRoundComplete != nil {
		s.OnRoundComplete(synced)
	}
}

// PlanSyncOrder orders accounts for a sync round: IMAP-backed connections
// first, then EWS, stable within each protocol.
func PlanSyncOrder(accounts []api.AccountConnection) []api.AccountConnection {
	ordered := make([]api.AccountConnection, len(accounts))
	copy(ordered, accounts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return protocolRank(ordered[i].Protocol) < protocolRank(ordered[j].Protocol)
	})
	return ordered
}

func protocolRank(p api.Protocol) int {
	switch p {
	case api.ProtocolIMAP:
		return 0
	case api.ProtocolEWS:
		return 1
	default:
		return 2
	}
}

func intervalFor(prefs api.Preferences) time.Duration {
	if prefs.SyncInterval >= MinSyncIntervalSeconds {
		return time.Duration(prefs.SyncInterval) * time.Second
	}
	return 5 * time.Minute
}
