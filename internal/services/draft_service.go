package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prismmail/prism-tui/internal/db"
)

// DraftServiceImpl implements DraftService on top of the local SQLite store.
// Autosave failures are the caller's to downgrade: the compose dialog logs
// them and keeps typing, it never surfaces them as blocking errors.
type DraftServiceImpl struct {
	store *db.DraftStore
}

// NewDraftService creates a new draft service
func NewDraftService(store *db.DraftStore) *DraftServiceImpl {
	return &DraftServiceImpl{store: store}
}

func (s *DraftServiceImpl) Autosave(ctx context.Context, draft DraftState) error {
	if s.store == nil {
		return ErrServiceUnavailable
	}
	if strings.TrimSpace(draft.ID) == "" {
		return fmt.Errorf("draft id cannot be empty: %w", ErrInvalidInput)
	}
	return s.store.SaveDraft(ctx, db.Draft{
		ID:        draft.ID,
		AccountID: draft.AccountID,
		To:        draft.To,
		Cc:        draft.Cc,
		Subject:   draft.Subject,
		Body:      draft.Body,
	})
}

func (s *DraftServiceImpl) Load(ctx context.Context, draftID string) (*DraftState, bool, error) {
	if s.store == nil {
		return nil, false, ErrServiceUnavailable
	}
	d, ok, err := s.store.LoadDraft(ctx, draftID)
	if err != nil || !ok {
		return nil, ok, err
	}
	state := fromRow(*d)
	return &state, true, nil
}

func (s *DraftServiceImpl) List(ctx context.Context) ([]DraftState, error) {
	if s.store == nil {
		return nil, ErrServiceUnavailable
	}
	rows, err := s.store.ListDrafts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DraftState, 0, len(rows))
	for _, d := range rows {
		out = append(out, fromRow(d))
	}
	return out, nil
}

func (s *DraftServiceImpl) Discard(ctx context.Context, draftID string) error {
	if s.store == nil {
		return ErrServiceUnavailable
	}
	return s.store.DeleteDraft(ctx, draftID)
}

func (s *DraftServiceImpl) Signature(ctx context.Context, accountID string) (string, bool, error) {
	if s.store == nil {
		return "", false, ErrServiceUnavailable
	}
	return s.store.LoadSignature(ctx, accountID)
}

func fromRow(d db.Draft) DraftState {
	return DraftState{
		ID:        d.ID,
		AccountID: d.AccountID,
		To:        d.To,
		Cc:        d.Cc,
		Subject:   d.Subject,
		Body:      d.Body,
		UpdatedAt: d.UpdatedAt,
	}
}
