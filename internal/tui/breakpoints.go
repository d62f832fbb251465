package tui

import (
	"github.com/prismmail/prism-tui/internal/config"
)

// Classification buckets the terminal width into one of four layout modes.
type Classification int

const (
	ClassMobile Classification = iota
	ClassTablet
	ClassDesktop
	ClassXL
)

func (c Classification) String() string {
	switch c {
	case ClassMobile:
		return "mobile"
	case ClassTablet:
		return "tablet"
	case ClassDesktop:
		return "desktop"
	case ClassXL:
		return "xl"
	default:
		return "unknown"
	}
}

// BreakpointState pairs the width classification with what we know about the
// terminal. MouseCapable flips on when the first mouse event arrives; gesture
// handling stays off until then.
type BreakpointState struct {
	Class        Classification
	Width        int
	Height       int
	MouseCapable bool
}

// TwoPane reports whether list and viewer render side by side.
func (s BreakpointState) TwoPane() bool {
	return s.Class != ClassMobile
}

// HasSidebar reports whether the persistent sidebar column is shown. Below
// desktop the sidebar is only reachable through the drawer overlay.
func (s BreakpointState) HasSidebar() bool {
	return s.Class == ClassDesktop || s.Class == ClassXL
}

// Resizable reports whether the list/viewer split can be adjusted.
func (s BreakpointState) Resizable() bool {
	return s.HasSidebar()
}

// BreakpointResolver classifies terminal widths against configured boundary
// columns. Each boundary is the inclusive minimum for its classification.
type BreakpointResolver struct {
	tabletMin  int
	desktopMin int
	xlMin      int
}

// NewBreakpointResolver builds a resolver from the layout configuration,
// falling back to the default boundaries when the configured ones are not
// strictly increasing.
func NewBreakpointResolver(layout config.LayoutConfig) *BreakpointResolver {
	r := &BreakpointResolver{
		tabletMin:  layout.TabletMinWidth,
		desktopMin: layout.DesktopMinWidth,
		xlMin:      layout.XLMinWidth,
	}
	if !(r.tabletMin > 0 && r.tabletMin < r.desktopMin && r.desktopMin < r.xlMin) {
		def := config.DefaultLayoutConfig()
		r.tabletMin, r.desktopMin, r.xlMin = def.TabletMinWidth, def.DesktopMinWidth, def.XLMinWidth
	}
	return r
}

// Resolve maps a width in columns to its classification. A non-positive width
// means the screen size is not known yet; desktop is the general-purpose
// fallback until a real size arrives.
func (r *BreakpointResolver) Resolve(width int) Classification {
	switch {
	case width <= 0:
		return ClassDesktop
	case width >= r.xlMin:
		return ClassXL
	case width >= r.desktopMin:
		return ClassDesktop
	case width >= r.tabletMin:
		return ClassTablet
	default:
		return ClassMobile
	}
}
