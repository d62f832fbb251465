package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Draft is a locally autosaved composition. Drafts survive crashes and
// restarts; they are removed once the message is sent.
type Draft struct {
	ID        string
	AccountID string
	To        string
	Cc        string
	Subject   string
	Body      string
	UpdatedAt time.Time
}

// DraftStore handles draft autosave and signature cache operations
type DraftStore struct {
	db *sql.DB
}

// NewDraftStore creates a draft store from a base store
func NewDraftStore(store *Store) *DraftStore {
	if store == nil {
		return nil
	}
	return &DraftStore{db: store.DB()}
}

// SaveDraft upserts a draft by ID.
func (ds *DraftStore) SaveDraft(ctx context.Context, d Draft) error {
	if ds == nil || ds.db == nil {
		return fmt.Errorf("draft store not initialized")
	}
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("draft id cannot be empty")
	}
	_, err := ds.db.ExecContext(ctx, `INSERT INTO drafts(id, account_id, to_addrs, cc_addrs, subject, body, updated_at)
VALUES(?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  account_id=excluded.account_id,
  to_addrs=excluded.to_addrs,
  cc_addrs=excluded.cc_addrs,
  subject=excluded.subject,
  body=excluded.body,
  updated_at=excluded.updated_at;
`, d.ID, d.AccountID, d.To, d.Cc, d.Subject, d.Body, time.Now().Unix())
	return err
}

// LoadDraft returns a draft by ID if present.
func (ds *DraftStore) LoadDraft(ctx context.Context, id string) (*Draft, bool, error) {
	if ds == nil || ds.db == nil {
		return nil, false, fmt.Errorf("draft store not initialized")
	}
	var d Draft
	var updated int64
	err := ds.db.QueryRowContext(ctx, `SELECT id, account_id, to_addrs, cc_addrs, subject, body, updated_at
FROM drafts WHERE id=?`, id).Scan(&d.ID, &d.AccountID, &d.To, &d.Cc, &d.Subject, &d.Body, &updated)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	d.UpdatedAt = time.Unix(updated, 0)
	return &d, true, nil
}

// ListDrafts returns all saved drafts, newest first.
func (ds *DraftStore) ListDrafts(ctx context.Context) ([]Draft, error) {
	if ds == nil || ds.db == nil {
		return nil, fmt.Errorf("draft store not initialized")
	}
	rows, err := ds.db.QueryContext(ctx, `SELECT id, account_id, to_addrs, cc_addrs, subject, body, updated_at
FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Draft
	for rows.Next() {
		var d Draft
		var updated int64
		if err := rows.Scan(&d.ID, &d.AccountID, &d.To, &d.Cc, &d.Subject, &d.Body, &updated); err != nil {
			return nil, err
		}
		d.UpdatedAt = time.Unix(updated, 0)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDraft removes a draft (after a successful send, or on discard).
func (ds *DraftStore) DeleteDraft(ctx context.Context, id string) error {
	if ds == nil || ds.db == nil {
		return fmt.Errorf("draft store not initialized")
	}
	_, err := ds.db.ExecContext(ctx, `DELETE FROM drafts WHERE id=?`, id)
	return err
}

// SaveSignature upserts the cached signature for an account.
func (ds *DraftStore) SaveSignature(ctx context.Context, accountID, signature string) error {
	if ds == nil || ds.db == nil {
		return fmt.Errorf("draft store not initialized")
	}
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account id cannot be empty")
	}
	_, err := ds.db.ExecContext(ctx, `INSERT INTO signatures(account_id, signature, updated_at)
VALUES(?,?,?)
ON CONFLICT(account_id) DO UPDATE SET signature=excluded.signature, updated_at=excluded.updated_at;
`, accountID, signature, time.Now().Unix())
	return err
}

// LoadSignature returns the cached signature for an account if present.
func (ds *DraftStore) LoadSignature(ctx context.Context, accountID string) (string, bool, error) {
	if ds == nil || ds.db == nil {
		return "", false, fmt.Errorf("draft store not initialized")
	}
	var out string
	err := ds.db.QueryRowContext(ctx, `SELECT signature FROM signatures WHERE account_id=?`, accountID).Scan(&out)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}
