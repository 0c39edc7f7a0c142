package itinerary

import (
	"fmt"

	"FRANCIGENA_BACK-END/internal/models"
)

// Mode selects which trip endpoint is being searched for.
type Mode int

const (
	// ArrivalSet keeps the departure fixed.
	ArrivalSet Mode = iota
	// DepartureSet keeps the arrival fixed.
	DepartureSet
)

func (m Mode) String() string {
	switch m {
	case ArrivalSet:
		return "arrival"
	case DepartureSet:
		return "departure"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ReachableEndpoints lists, nearest first, the waypoints that can serve as
// the other endpoint of a trip walked in travelDays days. fixedSegment is the
// trip's start segment in ArrivalSet mode and its end segment otherwise.
func (c *Catalog) ReachableEndpoints(fixedSegment, travelDays int, dailyHourBudget float64, reversed bool, mode Mode) ([]models.Waypoint, error) {
	if travelDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, travelDays)
	}
	if dailyHourBudget <= 0 {
		return nil, ErrInvalidBudget
	}
	if _, ok := c.Segment(fixedSegment); !ok {
		return nil, fmt.Errorf("%w: unknown segment %d", ErrInconsistentRange, fixedSegment)
	}

	budget := ToMinutes(dailyHourBudget)
	switch mode {
	case ArrivalSet:
		return c.arrivalSet(fixedSegment, travelDays, budget, reversed), nil
	case DepartureSet:
		return c.departureSet(fixedSegment, travelDays, budget, reversed), nil
	default:
		return nil, fmt.Errorf("unknown reachability mode %d", int(mode))
	}
}

// arrivalSet spans from the arrival of one segment per day to the furthest
// arrival maximal grouping achieves.
func (c *Catalog) arrivalSet(start, days, budget int, reversed bool) []models.Waypoint {
	step := stepOf(reversed)
	cur := start
	for d := 0; d < days; d++ {
		cur = c.walkDay(cur, budget, reversed)
	}

	nearest := start + step*(days-1)
	if _, ok := c.Segment(nearest); !ok {
		return []models.Waypoint{}
	}

	out := []models.Waypoint{}
	for id := nearest; id != cur; id += step {
		w, _ := c.Waypoint(ArrivalWaypoint(id, reversed))
		out = append(out, w)
	}
	return out
}

// departureSet scans outward from the closest candidate and stops at the
// first one that cannot reach the fixed segment. Greedy grouping is
// monotone in the start position, so nothing past that point qualifies.
func (c *Catalog) departureSet(end, days, budget int, reversed bool) []models.Waypoint {
	step := stepOf(reversed)
	first := end - step*(days-1)
	if _, ok := c.Segment(first); !ok {
		return []models.Waypoint{}
	}

	w, _ := c.Waypoint(DepartureWaypoint(first, reversed))
	out := []models.Waypoint{w}
	for cand := first - step; ; cand -= step {
		if _, ok := c.Segment(cand); !ok {
			break
		}
		if !c.reaches(cand, end, days, budget, reversed) {
			break
		}
		w, _ := c.Waypoint(DepartureWaypoint(cand, reversed))
		out = append(out, w)
	}
	return out
}

// reaches reports whether greedy grouping from start walks the target
// segment within days days.
func (c *Catalog) reaches(start, target, days, budget int, reversed bool) bool {
	cur := start
	for d := 0; d < days; d++ {
		cur = c.walkDay(cur, budget, reversed)
		if (!reversed && cur > target) || (reversed && cur < target) {
			return true
		}
	}
	return false
}

// walkDay consumes one day of segments starting at cur and returns the first
// segment left for the next day. It returns cur unchanged past the catalog
// boundary.
func (c *Catalog) walkDay(cur, budget int, reversed bool) int {
	step := stepOf(reversed)
	total, ok := c.segmentMinutes(cur)
	if !ok {
		return cur
	}
	cur += step
	for {
		m, ok := c.segmentMinutes(cur)
		if !ok || total+m > budget {
			return cur
		}
		total += m
		cur += step
	}
}
