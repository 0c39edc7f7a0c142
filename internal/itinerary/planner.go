package itinerary

import (
	"fmt"
	"time"

	"FRANCIGENA_BACK-END/internal/models"
)

// PlanRequest describes a segment range already sliced into walking order.
type PlanRequest struct {
	Segments        []models.Segment
	StartDate       time.Time
	EndDate         time.Time
	DailyHourBudget float64
	Reversed        bool
}

// Plan assigns every segment to a calendar day. While segments outnumber the
// remaining days they are grouped greedily under the daily budget; once they
// no longer do, each day gets exactly one. Segments that do not fit get a nil
// TravelDate. The result has one entry per input segment, in input order.
func Plan(req PlanRequest) ([]models.DayPlanEntry, error) {
	start, end := CivilDate(req.StartDate), CivilDate(req.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDays, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if req.DailyHourBudget <= 0 {
		return nil, ErrInvalidBudget
	}
	if err := checkWalkingOrder(req.Segments, req.Reversed); err != nil {
		return nil, err
	}

	totalDays := TotalDays(start, end)
	budget := ToMinutes(req.DailyHourBudget)

	minutes := make([]int, len(req.Segments))
	for i, s := range req.Segments {
		minutes[i] = ToMinutes(s.DurationHours)
	}

	plan := make([]models.DayPlanEntry, 0, len(req.Segments))
	i := 0
	for d := 0; d < totalDays && i < len(req.Segments); d++ {
		date := start.AddDate(0, 0, d)
		n := 1
		if len(req.Segments)-i > totalDays-d {
			n = groupDay(minutes[i:], budget)
		}
		for _, s := range req.Segments[i : i+n] {
			plan = append(plan, newEntry(len(plan), s, &date, req.Reversed))
		}
		i += n
	}
	for _, s := range req.Segments[i:] {
		plan = append(plan, newEntry(len(plan), s, nil, req.Reversed))
	}

	return plan, nil
}

// TotalDays counts calendar days from start to end, both included.
func TotalDays(start, end time.Time) int {
	return int(CivilDate(end).Sub(CivilDate(start)).Hours()/24) + 1
}

// CivilDate drops the time of day, keeping the calendar date in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StageName renders a segment label in walking order.
func StageName(s models.Segment, reversed bool) string {
	if reversed {
		return s.End.Name + " - " + s.Start.Name
	}
	return s.Start.Name + " - " + s.End.Name
}

// Unscheduled counts entries that did not fit in the date range.
func Unscheduled(plan []models.DayPlanEntry) int {
	n := 0
	for _, e := range plan {
		if e.TravelDate == nil {
			n++
		}
	}
	return n
}

// groupDay returns how many leading segments one day takes. The first one is
// always accepted so a day is never empty.
func groupDay(minutes []int, budget int) int {
	if len(minutes) == 0 {
		return 0
	}
	total, n := minutes[0], 1
	for n < len(minutes) && total+minutes[n] <= budget {
		total += minutes[n]
		n++
	}
	return n
}

func newEntry(position int, s models.Segment, date *time.Time, reversed bool) models.DayPlanEntry {
	e := models.DayPlanEntry{
		Position:  position,
		SegmentID: s.ID,
		StageName: StageName(s, reversed),
	}
	if date != nil {
		d := *date
		e.TravelDate = &d
	}
	return e
}

func checkWalkingOrder(segments []models.Segment, reversed bool) error {
	step := stepOf(reversed)
	for i := 1; i < len(segments); i++ {
		if segments[i].ID != segments[i-1].ID+step {
			return fmt.Errorf("%w: segment %d follows %d (reversed=%t)",
				ErrInconsistentRange, segments[i].ID, segments[i-1].ID, reversed)
		}
	}
	return nil
}
