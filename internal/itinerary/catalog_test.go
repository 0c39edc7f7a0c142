package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/models"
)

func TestNewCatalogRejectsBrokenChains(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	segs := buildSegments(1, 1, 1)
	segs[2].ID = 5
	_, err = NewCatalog(segs)
	assert.ErrorIs(t, err, ErrInconsistentRange)

	segs = buildSegments(1, 1)
	segs[1].End = models.Waypoint{ID: 9, Name: "X"}
	_, err = NewCatalog(segs)
	assert.ErrorIs(t, err, ErrInconsistentRange)
}

func TestNewCatalogRejectsMalformedDurations(t *testing.T) {
	for _, d := range []float64{2.75, 1.60, 0.999} {
		_, err := NewCatalog(buildSegments(1, d, 2))
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %v", d)
	}

	c, err := NewCatalog(buildSegments(2.30, 4.45, 0.59))
	require.NoError(t, err)
	assert.Len(t, c.Segments(), 3)
}

func TestCatalogLookups(t *testing.T) {
	c := buildCatalog(t, 1, 2, 3)

	assert.Len(t, c.Segments(), 3)
	assert.Equal(t, []int{1, 2, 3, 4}, waypointIDs(c.Waypoints()))

	w, ok := c.Waypoint(4)
	require.True(t, ok)
	assert.Equal(t, "W4", w.Name)

	_, ok = c.Segment(4)
	assert.False(t, ok)
	_, ok = c.Waypoint(0)
	assert.False(t, ok)
}

func TestSliceFollowsWalkingOrder(t *testing.T) {
	c := buildCatalog(t, 1, 1, 1, 1, 1)

	fwd, err := c.Slice(2, 4, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, segmentIDs(fwd))

	rev, err := c.Slice(4, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, segmentIDs(rev))

	_, err = c.Slice(4, 2, false)
	assert.ErrorIs(t, err, ErrInconsistentRange)
	_, err = c.Slice(2, 4, true)
	assert.ErrorIs(t, err, ErrInconsistentRange)
	_, err = c.Slice(2, 9, false)
	assert.ErrorIs(t, err, ErrInconsistentRange)
}

func TestBoundsFromWaypoints(t *testing.T) {
	c := buildCatalog(t, 1, 1, 1, 1, 1)

	start, end, reversed, err := c.BoundsFromWaypoints(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)
	assert.False(t, reversed)

	start, end, reversed, err = c.BoundsFromWaypoints(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, start)
	assert.Equal(t, 2, end)
	assert.True(t, reversed)

	assert.Equal(t, 5, DepartureWaypoint(start, reversed))
	assert.Equal(t, 2, ArrivalWaypoint(end, reversed))

	_, _, _, err = c.BoundsFromWaypoints(3, 3)
	assert.ErrorIs(t, err, ErrInconsistentRange)
	_, _, _, err = c.BoundsFromWaypoints(1, 7)
	assert.ErrorIs(t, err, ErrInconsistentRange)
}

func TestRouteWaypoints(t *testing.T) {
	c := buildCatalog(t, 1, 1, 1, 1, 1)

	fwd, err := c.RouteWaypoints(2, 4, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, waypointIDs(fwd))

	rev, err := c.RouteWaypoints(4, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3, 2}, waypointIDs(rev))
}

func TestPassesThrough(t *testing.T) {
	// forward over segments 2..4 walks waypoints 2..5
	assert.True(t, PassesThrough(2, 4, false, 2))
	assert.True(t, PassesThrough(2, 4, false, 5))
	assert.False(t, PassesThrough(2, 4, false, 1))
	assert.False(t, PassesThrough(2, 4, false, 6))

	// reversed over segments 4..2 walks waypoints 5..2
	assert.True(t, PassesThrough(4, 2, true, 5))
	assert.True(t, PassesThrough(4, 2, true, 2))
	assert.False(t, PassesThrough(4, 2, true, 6))
	assert.False(t, PassesThrough(4, 2, true, 1))
}

func segmentIDs(segs []models.Segment) []int {
	ids := make([]int, len(segs))
	for i, s := range segs {
		ids[i] = s.ID
	}
	return ids
}
