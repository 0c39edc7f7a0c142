package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		encoded float64
		want    int
	}{
		{5.45, 345},
		{2.30, 150},
		{3.15, 195},
		{2.00, 120},
		{6, 360},
		{0.05, 5},
		{0, 0},
		{12.59, 779},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinutes(tt.encoded), "ToMinutes(%v)", tt.encoded)
	}
}

func TestFromMinutesInvertsToMinutes(t *testing.T) {
	for m := 0; m <= 24*60; m++ {
		assert.Equal(t, m, ToMinutes(FromMinutes(m)), "minutes %d", m)
	}
	assert.Equal(t, 5.45, FromMinutes(345))
	assert.Equal(t, 1.05, FromMinutes(65))
}
