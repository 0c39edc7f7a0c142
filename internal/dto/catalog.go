package dto

type WaypointResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SegmentResponse is one catalog segment. DurationHours uses the
// hours.minutes encoding (2.30 is two and a half hours).
type SegmentResponse struct {
	ID            int              `json:"id"`
	Start         WaypointResponse `json:"waypoint_start"`
	End           WaypointResponse `json:"waypoint_end"`
	DistanceKm    float64          `json:"distance_km"`
	DurationHours float64          `json:"duration_hours"`
	GPXURL        *string          `json:"gpx_url,omitempty"`
}

type SegmentListResponse struct {
	Segments []SegmentResponse `json:"segments"`
}

type WaypointListResponse struct {
	Waypoints []WaypointResponse `json:"waypoints"`
}
