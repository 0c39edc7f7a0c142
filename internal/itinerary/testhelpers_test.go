package itinerary

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FRANCIGENA_BACK-END/internal/models"
)

// buildSegments creates segments 1..n joining waypoints named W1..W(n+1).
func buildSegments(durations ...float64) []models.Segment {
	segs := make([]models.Segment, len(durations))
	for i, d := range durations {
		id := i + 1
		segs[i] = models.Segment{
			ID:            id,
			Start:         models.Waypoint{ID: id, Name: fmt.Sprintf("W%d", id)},
			End:           models.Waypoint{ID: id + 1, Name: fmt.Sprintf("W%d", id+1)},
			DistanceKm:    10 + float64(i),
			DurationHours: d,
		}
	}
	return segs
}

func buildCatalog(t *testing.T, durations ...float64) *Catalog {
	t.Helper()
	c, err := NewCatalog(buildSegments(durations...))
	require.NoError(t, err)
	return c
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func waypointIDs(ws []models.Waypoint) []int {
	ids := make([]int, len(ws))
	for i, w := range ws {
		ids[i] = w.ID
	}
	return ids
}
