package services

import (
	"context"
	"time"

	"github.com/prismmail/prism-tui/internal/api"
)

// MailService handles mail listing and mutation business logic.
type MailService interface {
	ListMail(ctx context.Context, folder, accountID string) ([]api.EmailSummary, error)
	MarkRead(ctx context.Context, messageID string, read bool) error
	ToggleFlag(ctx context.Context, messageID string, flagged bool) error
	ToggleStar(ctx context.Context, messageID string) error
	Archive(ctx context.Context, messageID string) error
	Delete(ctx context.Context, messageID string) error
	Send(ctx context.Context, msg api.OutgoingMessage) error
}

// AccountService handles account listing and selection helpers.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]api.AccountConnection, error)
	ActiveAccounts(ctx context.Context) ([]api.AccountConnection, error)
}

// CountsService fetches unread/total folder counts, unified and per account.
type CountsService interface {
	UnifiedCounts(ctx context.Context) (*api.UnifiedCounts, error)
	// AccountCounts extracts one account's per-folder counts from the
	// unified payload.
	AccountCounts(ctx context.Context, accountID string) (map[string]api.FolderCounts, error)
}

// PreferenceService loads and stores user preferences.
type PreferenceService interface {
	Get(ctx context.Context) (*api.Preferences, error)
	Save(ctx context.Context, prefs api.Preferences) error
}

// SyncService schedules periodic background syncs per active account.
// Accounts are staggered, never fired simultaneously, with IMAP-backed
// accounts ordered ahead of EWS when both kinds are present.
type SyncService interface {
	Start(ctx context.Context, prefs api.Preferences)
	Stop()
	// SyncNow triggers an immediate sync of one account's folder.
	SyncNow(ctx context.Context, accountID, folder string) error
	// Apply reconfigures the scheduler after a preference change, starting
	// it when auto-sync was just enabled on an idle scheduler.
	Apply(ctx context.Context, prefs api.Preferences)
}

// DraftService handles local draft autosave and signatures.
type DraftService interface {
	Autosave(ctx context.Context, draft DraftState) error
	Load(ctx context.Context, draftID string) (*DraftState, bool, error)
	List(ctx context.Context) ([]DraftState, error)
	Discard(ctx context.Context, draftID string) error
	Signature(ctx context.Context, accountID string) (string, bool, error)
}

// DraftState is an in-progress composition.
type DraftState struct {
	ID        string
	AccountID string
	To        string
	Cc        string
	Subject   string
	Body      string
	UpdatedAt time.Time
}

// ValidationError represents a field-level validation failure surfaced
// inline next to the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
