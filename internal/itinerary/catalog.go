package itinerary

import (
	"fmt"

	"FRANCIGENA_BACK-END/internal/models"
)

// Catalog is an immutable, id-ordered view of the route. Segment i joins
// waypoint i to waypoint i+1.
type Catalog struct {
	segments  []models.Segment
	minutes   []int
	waypoints []models.Waypoint
	firstID   int
}

// NewCatalog validates that segment ids are contiguous, that every
// segment links consecutive waypoints and that durations are well formed
// hours.minutes values.
func NewCatalog(segments []models.Segment) (*Catalog, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		segments:  make([]models.Segment, len(segments)),
		minutes:   make([]int, len(segments)),
		waypoints: make([]models.Waypoint, 0, len(segments)+1),
		firstID:   segments[0].ID,
	}
	copy(c.segments, segments)

	for i, s := range c.segments {
		if s.ID != c.firstID+i {
			return nil, fmt.Errorf("%w: segment ids not contiguous at %d", ErrInconsistentRange, s.ID)
		}
		if s.Start.ID != s.ID || s.End.ID != s.ID+1 {
			return nil, fmt.Errorf("%w: segment %d joins waypoints %d and %d", ErrInconsistentRange, s.ID, s.Start.ID, s.End.ID)
		}
		if s.DurationHours < 0 {
			return nil, fmt.Errorf("%w: segment %d has negative duration", ErrInconsistentRange, s.ID)
		}
		minutes := ToMinutes(s.DurationHours)
		if FromMinutes(minutes) != s.DurationHours {
			return nil, fmt.Errorf("%w: segment %d lasts %v", ErrInvalidDuration, s.ID, s.DurationHours)
		}
		c.minutes[i] = minutes
		c.waypoints = append(c.waypoints, s.Start)
	}
	c.waypoints = append(c.waypoints, c.segments[len(c.segments)-1].End)

	return c, nil
}

// Segments returns the catalog in ascending id order.
func (c *Catalog) Segments() []models.Segment {
	out := make([]models.Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

func (c *Catalog) Waypoints() []models.Waypoint {
	out := make([]models.Waypoint, len(c.waypoints))
	copy(out, c.waypoints)
	return out
}

func (c *Catalog) Segment(id int) (models.Segment, bool) {
	i := id - c.firstID
	if i < 0 || i >= len(c.segments) {
		return models.Segment{}, false
	}
	return c.segments[i], true
}

func (c *Catalog) Waypoint(id int) (models.Waypoint, bool) {
	i := id - c.firstID
	if i < 0 || i >= len(c.waypoints) {
		return models.Waypoint{}, false
	}
	return c.waypoints[i], true
}

func (c *Catalog) segmentMinutes(id int) (int, bool) {
	i := id - c.firstID
	if i < 0 || i >= len(c.minutes) {
		return 0, false
	}
	return c.minutes[i], true
}

// Slice returns the segments from start to end inclusive in walking order:
// ascending when walking forward, descending when reversed.
func (c *Catalog) Slice(start, end int, reversed bool) ([]models.Segment, error) {
	if _, ok := c.Segment(start); !ok {
		return nil, fmt.Errorf("%w: unknown segment %d", ErrInconsistentRange, start)
	}
	if _, ok := c.Segment(end); !ok {
		return nil, fmt.Errorf("%w: unknown segment %d", ErrInconsistentRange, end)
	}
	if (!reversed && start > end) || (reversed && start < end) {
		return nil, fmt.Errorf("%w: segments %d..%d (reversed=%t)", ErrInconsistentRange, start, end, reversed)
	}

	step := stepOf(reversed)
	out := make([]models.Segment, 0, abs(end-start)+1)
	for id := start; ; id += step {
		s, _ := c.Segment(id)
		out = append(out, s)
		if id == end {
			break
		}
	}
	return out, nil
}

// BoundsFromWaypoints derives the trip's segment range from the chosen
// departure and arrival waypoints. Direction follows from their order.
func (c *Catalog) BoundsFromWaypoints(departure, arrival int) (start, end int, reversed bool, err error) {
	if _, ok := c.Waypoint(departure); !ok {
		return 0, 0, false, fmt.Errorf("%w: unknown waypoint %d", ErrInconsistentRange, departure)
	}
	if _, ok := c.Waypoint(arrival); !ok {
		return 0, 0, false, fmt.Errorf("%w: unknown waypoint %d", ErrInconsistentRange, arrival)
	}
	if departure == arrival {
		return 0, 0, false, fmt.Errorf("%w: departure and arrival coincide", ErrInconsistentRange)
	}

	if departure < arrival {
		return departure, arrival - 1, false, nil
	}
	return departure - 1, arrival, true, nil
}

// DepartureWaypoint is the waypoint where walking the start segment begins.
func DepartureWaypoint(startSegment int, reversed bool) int {
	if reversed {
		return startSegment + 1
	}
	return startSegment
}

// ArrivalWaypoint is the waypoint where walking the end segment finishes.
func ArrivalWaypoint(endSegment int, reversed bool) int {
	if reversed {
		return endSegment
	}
	return endSegment + 1
}

// RouteWaypoints lists the waypoints of a segment range in walking order.
func (c *Catalog) RouteWaypoints(start, end int, reversed bool) ([]models.Waypoint, error) {
	segs, err := c.Slice(start, end, reversed)
	if err != nil {
		return nil, err
	}

	out := make([]models.Waypoint, 0, len(segs)+1)
	for _, s := range segs {
		if reversed {
			out = append(out, s.End)
		} else {
			out = append(out, s.Start)
		}
	}
	last := segs[len(segs)-1]
	if reversed {
		out = append(out, last.Start)
	} else {
		out = append(out, last.End)
	}
	return out, nil
}

// PassesThrough reports whether a trip over the given segment range walks
// through the waypoint, endpoints included.
func PassesThrough(start, end int, reversed bool, waypointID int) bool {
	lo, hi := DepartureWaypoint(start, reversed), ArrivalWaypoint(end, reversed)
	if lo > hi {
		lo, hi = hi, lo
	}
	return waypointID >= lo && waypointID <= hi
}

func stepOf(reversed bool) int {
	if reversed {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
