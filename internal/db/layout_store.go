package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// layoutSizesKey is the layout_state row holding the list/viewer split.
const layoutSizesKey = "panel_sizes"

// LayoutStore persists UI geometry. Corruption here is never fatal: callers
// fall back to computed defaults when a read fails or returns garbage.
type LayoutStore struct {
	db *sql.DB
}

// NewLayoutStore creates a layout store from a base store
func NewLayoutStore(store *Store) *LayoutStore {
	if store == nil {
		return nil
	}
	return &LayoutStore{db: store.DB()}
}

// SavePanelSizes upserts the [list%, viewer%] pair as a JSON array.
func (ls *LayoutStore) SavePanelSizes(ctx context.Context, sizes [2]int) error {
	if ls == nil || ls.db == nil {
		return fmt.Errorf("layout store not initialized")
	}
	value, err := json.Marshal([]int{sizes[0], sizes[1]})
	if err != nil {
		return err
	}
	_, err = ls.db.ExecContext(ctx, `INSERT INTO layout_state(key, value, updated_at)
VALUES(?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`, layoutSizesKey, string(value), time.Now().Unix())
	return err
}

// LoadPanelSizes returns the persisted split if present and well-formed.
// A missing or malformed row reports ok=false with a nil error; the caller
// substitutes a breakpoint default.
func (ls *LayoutStore) LoadPanelSizes(ctx context.Context) (sizes [2]int, ok bool, err error) {
	if ls == nil || ls.db == nil {
		return sizes, false, fmt.Errorf("layout store not initialized")
	}
	var raw string
	err = ls.db.QueryRowContext(ctx, `SELECT value FROM layout_state WHERE key=?`, layoutSizesKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return sizes, false, nil
	}
	if err != nil {
		return sizes, false, err
	}
	var parsed []int
	if jerr := json.Unmarshal([]byte(raw), &parsed); jerr != nil || len(parsed) != 2 {
		// Malformed persisted value: treat as absent rather than erroring.
		return sizes, false, nil
	}
	sizes[0], sizes[1] = parsed[0], parsed[1]
	return sizes, true, nil
}

// ClearPanelSizes removes the persisted split (used when resetting layout).
func (ls *LayoutStore) ClearPanelSizes(ctx context.Context) error {
	if ls == nil || ls.db == nil {
		return fmt.Errorf("layout store not initialized")
	}
	_, err := ls.db.ExecContext(ctx, `DELETE FROM layout_state WHERE key=?`, layoutSizesKey)
	return err
}
