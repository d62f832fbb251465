package tui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/db"
)

// PanelSizes is the [list, viewer] split of the resizable row as percentages.
// The two values always sum to 100.
type PanelSizes [2]int

// DefaultPanelSizes returns the breakpoint-appropriate split: a wider list on
// regular desktop widths, a narrower one on very wide screens where the
// viewer has columns to spare.
func DefaultPanelSizes(class Classification) PanelSizes {
	if class == ClassXL {
		return PanelSizes{30, 70}
	}
	return PanelSizes{35, 65}
}

// PanelManager owns the resizable list/viewer split: clamping, restoring the
// persisted split on startup and debouncing persistence while the user is
// still dragging.
type PanelManager struct {
	mu       sync.Mutex
	sizes    PanelSizes
	clamps   config.LayoutConfig
	store    *db.LayoutStore
	debounce time.Duration
	timer    *time.Timer
	dirty    bool
	logger   *log.Logger
}

func NewPanelManager(store *db.LayoutStore, layout config.LayoutConfig, debounce time.Duration, logger *log.Logger) *PanelManager {
	return &PanelManager{
		sizes:    DefaultPanelSizes(ClassDesktop),
		clamps:   layout,
		store:    store,
		debounce: debounce,
		logger:   logger,
	}
}

// SetStore wires the persistence layer after the database has been opened.
func (pm *PanelManager) SetStore(store *db.LayoutStore) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.store = store
}

// Restore loads the persisted split, falling back to the breakpoint default
// when nothing usable is stored. A persisted value outside the clamp range
// counts as unusable and yields the default instead of a silently adjusted
// value.
func (pm *PanelManager) Restore(ctx context.Context, class Classification) PanelSizes {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.sizes = DefaultPanelSizes(class)
	if pm.store == nil {
		return pm.sizes
	}
	stored, ok, err := pm.store.LoadPanelSizes(ctx)
	if err != nil {
		if pm.logger != nil {
			pm.logger.Printf("panel restore failed: %v", err)
		}
		return pm.sizes
	}
	if !ok {
		return pm.sizes
	}
	sizes := PanelSizes(stored)
	if pm.clamp(sizes) != sizes {
		return pm.sizes
	}
	pm.sizes = sizes
	return pm.sizes
}

// Get returns the current split.
func (pm *PanelManager) Get() PanelSizes {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.sizes
}

// Set clamps and installs a new split, scheduling a debounced persist so a
// continuous drag writes once after settling. Returns the effective split.
func (pm *PanelManager) Set(sizes PanelSizes) PanelSizes {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	sizes = pm.clamp(sizes)
	if sizes == pm.sizes {
		return sizes
	}
	pm.sizes = sizes
	pm.dirty = true
	if pm.store != nil {
		if pm.timer != nil {
			pm.timer.Stop()
		}
		pm.timer = time.AfterFunc(pm.debounce, func() {
			pm.Flush(context.Background())
		})
	}
	return sizes
}

// AdjustList moves the split boundary by delta percentage points.
func (pm *PanelManager) AdjustList(delta int) PanelSizes {
	cur := pm.Get()
	list := cur[0] + delta
	return pm.Set(PanelSizes{list, 100 - list})
}

// Flush persists a pending change immediately. Called from the debounce
// timer and on shutdown.
func (pm *PanelManager) Flush(ctx context.Context) {
	pm.mu.Lock()
	if pm.timer != nil {
		pm.timer.Stop()
		pm.timer = nil
	}
	if !pm.dirty || pm.store == nil {
		pm.mu.Unlock()
		return
	}
	pm.dirty = false
	sizes := pm.sizes
	store := pm.store
	pm.mu.Unlock()

	if err := store.SavePanelSizes(ctx, [2]int(sizes)); err != nil && pm.logger != nil {
		pm.logger.Printf("panel persist failed: %v", err)
	}
}

// clamp bounds the list percentage first, then re-checks the implied viewer
// share. The configured ranges overlap, so this converges to a pair that
// sums to 100.
func (pm *PanelManager) clamp(s PanelSizes) PanelSizes {
	list := s[0]
	if list < pm.clamps.ListMinPercent {
		list = pm.clamps.ListMinPercent
	}
	if list > pm.clamps.ListMaxPercent {
		list = pm.clamps.ListMaxPercent
	}
	viewer := 100 - list
	if viewer < pm.clamps.ViewerMinPercent {
		viewer = pm.clamps.ViewerMinPercent
	}
	if viewer > pm.clamps.ViewerMaxPercent {
		viewer = pm.clamps.ViewerMaxPercent
	}
	return PanelSizes{100 - viewer, viewer}
}
