package tui

// GestureIntent is the action a completed mouse gesture maps to.
type GestureIntent int

const (
	IntentNone GestureIntent = iota
	IntentRefresh
	IntentOpenDrawer
	IntentCompose
)

// Gesture tuning, in terminal rows/columns.
const (
	pullThresholdRows  = 3
	edgeZoneCols       = 3
	swipeThresholdCols = 8
)

// PullToRefresh tracks a downward drag started while the message list is
// scrolled to the top. Crossing the threshold and releasing triggers exactly
// one refresh; further pulls are ignored until the in-flight refresh
// completes.
type PullToRefresh struct {
	active   bool
	startY   int
	lastY    int
	inFlight bool
}

// Begin starts tracking a drag. Drags that start below the top of the list
// do not participate.
func (p *PullToRefresh) Begin(y int, atTop bool) bool {
	if !atTop {
		p.active = false
		return false
	}
	p.active = true
	p.startY = y
	p.lastY = y
	return true
}

// Move updates the drag and returns the pull distance in rows.
func (p *PullToRefresh) Move(y int) int {
	if !p.active {
		return 0
	}
	p.lastY = y
	d := y - p.startY
	if d < 0 {
		d = 0
	}
	return d
}

// Armed reports whether releasing now would trigger a refresh.
func (p *PullToRefresh) Armed() bool {
	return p.active && p.lastY-p.startY >= pullThresholdRows
}

// Release ends the drag. It returns IntentRefresh at most once per completed
// pull, and never while a previous refresh is still in flight.
func (p *PullToRefresh) Release() GestureIntent {
	armed := p.Armed()
	p.active = false
	if !armed || p.inFlight {
		return IntentNone
	}
	p.inFlight = true
	return IntentRefresh
}

// Complete marks the in-flight refresh as finished, re-arming the gesture.
func (p *PullToRefresh) Complete() {
	p.inFlight = false
}

// InFlight reports whether a gesture-triggered refresh is still running.
func (p *PullToRefresh) InFlight() bool {
	return p.inFlight
}

// EdgeSwipe tracks horizontal drags that start in the few columns next to a
// screen edge: inward from the left edge opens the folder drawer, inward
// from the right edge opens compose.
type EdgeSwipe struct {
	active   bool
	fromLeft bool
	startX   int
	fired    bool
}

// Begin starts tracking when x falls inside an edge zone.
func (e *EdgeSwipe) Begin(x, screenWidth int) bool {
	e.active = false
	e.fired = false
	switch {
	case x >= 0 && x < edgeZoneCols:
		e.active, e.fromLeft, e.startX = true, true, x
	case screenWidth > 0 && x >= screenWidth-edgeZoneCols:
		e.active, e.fromLeft, e.startX = true, false, x
	}
	return e.active
}

// Move returns the gesture's intent once the drag crosses the distance
// threshold in the inward direction. It fires at most once per gesture.
func (e *EdgeSwipe) Move(x int) GestureIntent {
	if !e.active || e.fired {
		return IntentNone
	}
	if e.fromLeft && x-e.startX >= swipeThresholdCols {
		e.fired = true
		return IntentOpenDrawer
	}
	if !e.fromLeft && e.startX-x >= swipeThresholdCols {
		e.fired = true
		return IntentCompose
	}
	return IntentNone
}

// Release ends the gesture.
func (e *EdgeSwipe) Release() {
	e.active = false
}
