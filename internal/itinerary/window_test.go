package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	c := buildCatalog(t, 2, 2, 2, 2, 2, 2)

	w, err := c.Window(1, 6, false, 6.00, day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, w.MinDays)
	assert.Equal(t, 6, w.MaxDays)
	assert.Equal(t, day("2026-08-02"), w.EarliestArrival)
	assert.Equal(t, day("2026-08-06"), w.LatestArrival)

	w, err = c.Window(6, 1, true, 2.00, day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, 6, w.MinDays)
	assert.Equal(t, w.EarliestArrival, w.LatestArrival)

	_, err = c.Window(6, 1, false, 6.00, day("2026-08-01"))
	assert.ErrorIs(t, err, ErrInconsistentRange)
}
