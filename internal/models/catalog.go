package models

// Waypoint is a named stop along the route. Identifiers are contiguous and
// follow the walking order of the forward direction.
type Waypoint struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Segment connects waypoint ID to waypoint ID+1. DurationHours uses the
// hours.minutes encoding (5.45 means 5h45m).
type Segment struct {
	ID            int      `json:"id" db:"id"`
	Start         Waypoint `json:"start"`
	End           Waypoint `json:"end"`
	DistanceKm    float64  `json:"distance_km" db:"distance_km"`
	DurationHours float64  `json:"duration_hours" db:"duration_hours"`
	GPXURL        *string  `json:"gpx_url,omitempty" db:"gpx_url"`
}
