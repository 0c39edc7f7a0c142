package itinerary

import "math"

// ToMinutes converts an hours.minutes value (5.45 = 5h45m) to minutes.
func ToMinutes(encoded float64) int {
	h := math.Floor(encoded)
	m := math.Round((encoded - h) * 100)
	return int(h)*60 + int(m)
}

// FromMinutes is the inverse of ToMinutes.
func FromMinutes(total int) float64 {
	h := total / 60
	m := total % 60
	return math.Round((float64(h)+float64(m)/100)*100) / 100
}
