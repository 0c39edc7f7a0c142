package itinerary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanGroupsUnderBudget(t *testing.T) {
	c := buildCatalog(t, 2.30, 3.15, 2.00)
	segs, err := c.Slice(1, 3, false)
	require.NoError(t, err)

	plan, err := Plan(PlanRequest{
		Segments:        segs,
		StartDate:       day("2026-05-01"),
		EndDate:         day("2026-05-01"),
		DailyHourBudget: 6.00,
	})
	require.NoError(t, err)
	require.Len(t, plan, 3)

	// 150 + 195 = 345 fits in 360, adding 120 does not
	require.NotNil(t, plan[0].TravelDate)
	require.NotNil(t, plan[1].TravelDate)
	assert.Equal(t, day("2026-05-01"), *plan[0].TravelDate)
	assert.Equal(t, day("2026-05-01"), *plan[1].TravelDate)
	assert.Nil(t, plan[2].TravelDate)
	assert.Equal(t, 1, Unscheduled(plan))

	plan, err = Plan(PlanRequest{
		Segments:        segs,
		StartDate:       day("2026-05-01"),
		EndDate:         day("2026-05-02"),
		DailyHourBudget: 6.00,
	})
	require.NoError(t, err)
	require.NotNil(t, plan[2].TravelDate)
	assert.Equal(t, day("2026-05-02"), *plan[2].TravelDate)
	assert.Zero(t, Unscheduled(plan))
}

func TestPlanOneSegmentPerDayWhenDaysSuffice(t *testing.T) {
	c := buildCatalog(t, 1.00, 1.00, 1.00, 1.00, 1.00)
	segs, err := c.Slice(1, 5, false)
	require.NoError(t, err)

	plan, err := Plan(PlanRequest{
		Segments:        segs,
		StartDate:       day("2026-06-10"),
		EndDate:         day("2026-06-14"),
		DailyHourBudget: 8.00,
	})
	require.NoError(t, err)
	require.Len(t, plan, 5)

	for i, e := range plan {
		require.NotNil(t, e.TravelDate)
		assert.Equal(t, day("2026-06-10").AddDate(0, 0, i), *e.TravelDate)
	}
}

func TestPlanNeverLeavesADayEmpty(t *testing.T) {
	c := buildCatalog(t, 3.00, 4.30, 3.00, 5.00, 3.00)
	segs, err := c.Slice(1, 5, false)
	require.NoError(t, err)

	plan, err := Plan(PlanRequest{
		Segments:        segs,
		StartDate:       day("2026-06-10"),
		EndDate:         day("2026-06-12"),
		DailyHourBudget: 1.00,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NotNil(t, plan[i].TravelDate)
		assert.Equal(t, day("2026-06-10").AddDate(0, 0, i), *plan[i].TravelDate)
	}
	assert.Nil(t, plan[3].TravelDate)
	assert.Nil(t, plan[4].TravelDate)
}

func TestPlanInvariantsAcrossInputs(t *testing.T) {
	durations := []float64{2.30, 3.15, 2.00, 1.45, 4.00, 0.30, 2.00, 3.00, 5.10, 1.00}
	c := buildCatalog(t, durations...)
	start := day("2026-04-01")

	for _, budget := range []float64{1.00, 4.30, 6.00, 9.45} {
		for from := 1; from <= len(durations); from++ {
			for to := from; to <= len(durations); to++ {
				for days := 1; days <= 12; days++ {
					segs, err := c.Slice(from, to, false)
					require.NoError(t, err)
					req := PlanRequest{
						Segments:        segs,
						StartDate:       start,
						EndDate:         start.AddDate(0, 0, days-1),
						DailyHourBudget: budget,
					}

					plan, err := Plan(req)
					require.NoError(t, err)
					require.Len(t, plan, len(segs))

					var prev *time.Time
					for i, e := range plan {
						assert.Equal(t, segs[i].ID, e.SegmentID)
						assert.Equal(t, i, e.Position)
						if e.TravelDate == nil {
							for _, rest := range plan[i:] {
								assert.Nil(t, rest.TravelDate, "dated entry after an unscheduled one")
							}
							break
						}
						assert.False(t, e.TravelDate.Before(req.StartDate))
						assert.False(t, e.TravelDate.After(req.EndDate))
						if prev != nil {
							assert.False(t, e.TravelDate.Before(*prev))
						}
						prev = e.TravelDate
					}

					again, err := Plan(req)
					require.NoError(t, err)
					assert.Equal(t, plan, again)
				}
			}
		}
	}
}

func TestPlanReversedMirrorsForward(t *testing.T) {
	// a palindrome of durations makes the mirrored range walk the same way
	c := buildCatalog(t, 2.00, 3.30, 1.00, 3.30, 2.00)

	fwdSegs, err := c.Slice(1, 5, false)
	require.NoError(t, err)
	revSegs, err := c.Slice(5, 1, true)
	require.NoError(t, err)

	base := PlanRequest{StartDate: day("2026-07-01"), EndDate: day("2026-07-03"), DailyHourBudget: 6.00}

	fwdReq := base
	fwdReq.Segments = fwdSegs
	fwd, err := Plan(fwdReq)
	require.NoError(t, err)

	revReq := base
	revReq.Segments = revSegs
	revReq.Reversed = true
	rev, err := Plan(revReq)
	require.NoError(t, err)

	require.Len(t, rev, len(fwd))
	for i := range fwd {
		assert.Equal(t, fwd[i].TravelDate, rev[i].TravelDate)
	}
	assert.Equal(t, "W1 - W2", fwd[0].StageName)
	assert.Equal(t, "W6 - W5", rev[0].StageName)
	assert.Equal(t, "W2 - W1", rev[4].StageName)
}

func TestPlanRejectsContractViolations(t *testing.T) {
	c := buildCatalog(t, 1, 1, 1)
	segs, err := c.Slice(1, 3, false)
	require.NoError(t, err)

	_, err = Plan(PlanRequest{Segments: segs, StartDate: day("2026-05-02"), EndDate: day("2026-05-01"), DailyHourBudget: 6})
	assert.ErrorIs(t, err, ErrInvalidDays)

	_, err = Plan(PlanRequest{Segments: segs, StartDate: day("2026-05-01"), EndDate: day("2026-05-01")})
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = Plan(PlanRequest{Segments: segs, StartDate: day("2026-05-01"), EndDate: day("2026-05-03"), DailyHourBudget: 6, Reversed: true})
	assert.ErrorIs(t, err, ErrInconsistentRange)
}

func TestTotalDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 28, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 30, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, TotalDays(start, end))
	assert.Equal(t, 1, TotalDays(start, start))
}
