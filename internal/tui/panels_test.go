package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLayoutStore(t *testing.T) *db.LayoutStore {
	t.Helper()
	store, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "prism.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return db.NewLayoutStore(store)
}

func newTestPanelManager(store *db.LayoutStore) *PanelManager {
	return NewPanelManager(store, config.DefaultLayoutConfig(), time.Millisecond, nil)
}

func TestDefaultPanelSizes_PerBreakpoint(t *testing.T) {
	assert.Equal(t, PanelSizes{35, 65}, DefaultPanelSizes(ClassDesktop))
	assert.Equal(t, PanelSizes{35, 65}, DefaultPanelSizes(ClassTablet))
	assert.Equal(t, PanelSizes{30, 70}, DefaultPanelSizes(ClassXL))
}

func TestPanelManager_SetClampsToConfiguredRange(t *testing.T) {
	pm := newTestPanelManager(nil)

	assert.Equal(t, PanelSizes{25, 75}, pm.Set(PanelSizes{10, 90}))
	assert.Equal(t, PanelSizes{60, 40}, pm.Set(PanelSizes{80, 20}))
	assert.Equal(t, PanelSizes{40, 60}, pm.Set(PanelSizes{40, 60}))
}

func TestPanelManager_AdjustList(t *testing.T) {
	pm := newTestPanelManager(nil)
	pm.Set(PanelSizes{35, 65})

	assert.Equal(t, PanelSizes{40, 60}, pm.AdjustList(5))
	assert.Equal(t, PanelSizes{35, 65}, pm.AdjustList(-5))

	// repeated shrinking stops at the lower clamp
	for i := 0; i < 10; i++ {
		pm.AdjustList(-5)
	}
	assert.Equal(t, PanelSizes{25, 75}, pm.Get())
}

func TestPanelManager_RestoreWithoutStoreUsesDefaults(t *testing.T) {
	pm := newTestPanelManager(nil)

	assert.Equal(t, PanelSizes{30, 70}, pm.Restore(context.Background(), ClassXL))
	assert.Equal(t, PanelSizes{35, 65}, pm.Restore(context.Background(), ClassDesktop))
}

func TestPanelManager_RoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newTestLayoutStore(t)

	pm := newTestPanelManager(store)
	pm.Set(PanelSizes{45, 55})
	pm.Flush(ctx)

	// a fresh manager on xl restores the persisted split, not the xl default
	fresh := newTestPanelManager(store)
	assert.Equal(t, PanelSizes{45, 55}, fresh.Restore(ctx, ClassXL))
}

func TestPanelManager_RestoreRejectsOutOfRangeStoredValue(t *testing.T) {
	ctx := context.Background()
	store := newTestLayoutStore(t)
	require.NoError(t, store.SavePanelSizes(ctx, [2]int{90, 10}))

	pm := newTestPanelManager(store)

	// out-of-range persisted splits yield the default, never a clamped value
	assert.Equal(t, PanelSizes{30, 70}, pm.Restore(ctx, ClassXL))
}

func TestPanelManager_RestoreAfterClearUsesDefaults(t *testing.T) {
	ctx := context.Background()
	store := newTestLayoutStore(t)

	pm := newTestPanelManager(store)
	pm.Set(PanelSizes{50, 50})
	pm.Flush(ctx)
	require.NoError(t, store.ClearPanelSizes(ctx))

	assert.Equal(t, PanelSizes{35, 65}, pm.Restore(ctx, ClassDesktop))
}

func TestPanelManager_DebouncedPersistWritesOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestLayoutStore(t)
	pm := NewPanelManager(store, config.DefaultLayoutConfig(), 20*time.Millisecond, nil)

	// a drag is a burst of Sets; only the settled value should persist
	pm.Set(PanelSizes{40, 60})
	pm.Set(PanelSizes{45, 55})
	pm.Set(PanelSizes{50, 50})

	assert.Eventually(t, func() bool {
		stored, ok, err := store.LoadPanelSizes(ctx)
		return err == nil && ok && stored == [2]int{50, 50}
	}, time.Second, 5*time.Millisecond)
}
