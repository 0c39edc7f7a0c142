package dto

// ActiveTripStatsResponse describes the pilgrim's trip in progress.
// WalkingHours uses the hours.minutes encoding.
type ActiveTripStatsResponse struct {
	TripID       int64   `json:"trip_id"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Km           float64 `json:"km"`
	WalkingHours float64 `json:"walking_hours"`
}

type PilgrimStatsResponse struct {
	TotalTrips int                      `json:"total_trips"`
	TotalKm    float64                  `json:"total_km"`
	ActiveTrip *ActiveTripStatsResponse `json:"active_trip"`
}

type OwnerStatsResponse struct {
	Structures       int `json:"structures"`
	TotalBeds        int `json:"total_beds"`
	TotalBookings    int `json:"total_bookings"`
	UpcomingBookings int `json:"upcoming_bookings"`
}
