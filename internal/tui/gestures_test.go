package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPullToRefresh_FiresAtThreshold(t *testing.T) {
	var p PullToRefresh

	assert.True(t, p.Begin(5, true))
	p.Move(7)
	assert.False(t, p.Armed())
	p.Move(8)
	assert.True(t, p.Armed())
	assert.Equal(t, IntentRefresh, p.Release())
}

func TestPullToRefresh_ShortPullDoesNothing(t *testing.T) {
	var p PullToRefresh

	p.Begin(5, true)
	p.Move(6)
	assert.Equal(t, IntentNone, p.Release())
	assert.False(t, p.InFlight())
}

func TestPullToRefresh_IgnoredWhenNotAtTop(t *testing.T) {
	var p PullToRefresh

	assert.False(t, p.Begin(5, false))
	p.Move(20)
	assert.False(t, p.Armed())
	assert.Equal(t, IntentNone, p.Release())
}

func TestPullToRefresh_DoublePullSingleFlight(t *testing.T) {
	var p PullToRefresh

	p.Begin(0, true)
	p.Move(pullThresholdRows)
	assert.Equal(t, IntentRefresh, p.Release())

	// a second full pull while the first refresh is still running is dropped
	p.Begin(0, true)
	p.Move(pullThresholdRows)
	assert.Equal(t, IntentNone, p.Release())

	p.Complete()
	p.Begin(0, true)
	p.Move(pullThresholdRows)
	assert.Equal(t, IntentRefresh, p.Release())
}

func TestPullToRefresh_UpwardDragNeverArms(t *testing.T) {
	var p PullToRefresh

	p.Begin(10, true)
	assert.Zero(t, p.Move(4))
	assert.Equal(t, IntentNone, p.Release())
}

func TestEdgeSwipe_LeftEdgeOpensDrawer(t *testing.T) {
	var e EdgeSwipe

	assert.True(t, e.Begin(1, 100))
	assert.Equal(t, IntentNone, e.Move(5))
	assert.Equal(t, IntentOpenDrawer, e.Move(1+swipeThresholdCols))
	// fires at most once per gesture
	assert.Equal(t, IntentNone, e.Move(40))
	e.Release()
}

func TestEdgeSwipe_RightEdgeOpensCompose(t *testing.T) {
	var e EdgeSwipe

	assert.True(t, e.Begin(99, 100))
	assert.Equal(t, IntentNone, e.Move(95))
	assert.Equal(t, IntentCompose, e.Move(99-swipeThresholdCols))
}

func TestEdgeSwipe_OutsideEdgeZoneIsIgnored(t *testing.T) {
	var e EdgeSwipe

	assert.False(t, e.Begin(50, 100))
	assert.Equal(t, IntentNone, e.Move(80))
}

func TestEdgeSwipe_WrongDirectionNeverFires(t *testing.T) {
	var e EdgeSwipe

	e.Begin(0, 100)
	// dragging further off the left edge is not an inward swipe
	assert.Equal(t, IntentNone, e.Move(-5))
	e.Release()

	e.Begin(98, 100)
	assert.Equal(t, IntentNone, e.Move(120))
}

func TestPullIndicator_GrowsWithDragThenArms(t *testing.T) {
	assert.Empty(t, pullIndicator(0))
	assert.Empty(t, pullIndicator(-1))

	// below the threshold the indicator grows with the drag distance
	assert.Equal(t, " ↓ pull to refresh ·", pullIndicator(1))
	assert.Equal(t, " ↓ pull to refresh ··", pullIndicator(2))

	// at and past the threshold it flips to the release hint
	assert.Equal(t, " ↓ release to refresh", pullIndicator(3))
	assert.Equal(t, " ↓ release to refresh", pullIndicator(10))
}
