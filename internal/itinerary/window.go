package itinerary

import (
	"fmt"
	"time"
)

// EditWindow bounds how far a trip's dates can move without changing its
// segment range.
type EditWindow struct {
	MinDays         int       `json:"min_days"`
	MaxDays         int       `json:"max_days"`
	EarliestArrival time.Time `json:"earliest_arrival"`
	LatestArrival   time.Time `json:"latest_arrival"`
}

// MinDays is the number of days greedy grouping needs for the range.
func (c *Catalog) MinDays(start, end int, reversed bool, dailyHourBudget float64) (int, error) {
	if dailyHourBudget <= 0 {
		return 0, ErrInvalidBudget
	}
	segs, err := c.Slice(start, end, reversed)
	if err != nil {
		return 0, err
	}

	minutes := make([]int, len(segs))
	for i, s := range segs {
		minutes[i] = ToMinutes(s.DurationHours)
	}

	budget := ToMinutes(dailyHourBudget)
	days := 0
	for i := 0; i < len(minutes); days++ {
		i += groupDay(minutes[i:], budget)
	}
	return days, nil
}

// Window computes the edit window for a trip starting on startDate. The
// longest useful trip walks one segment per day.
func (c *Catalog) Window(start, end int, reversed bool, dailyHourBudget float64, startDate time.Time) (EditWindow, error) {
	minDays, err := c.MinDays(start, end, reversed, dailyHourBudget)
	if err != nil {
		return EditWindow{}, fmt.Errorf("edit window: %w", err)
	}
	maxDays := abs(end-start) + 1
	day := CivilDate(startDate)

	return EditWindow{
		MinDays:         minDays,
		MaxDays:         maxDays,
		EarliestArrival: day.AddDate(0, 0, minDays-1),
		LatestArrival:   day.AddDate(0, 0, maxDays-1),
	}, nil
}
