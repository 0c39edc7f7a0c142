package dto

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	DepartureWaypointID int     `json:"departure_waypoint_id" validate:"required,gt=0"`
	ArrivalWaypointID   int     `json:"arrival_waypoint_id" validate:"required,gt=0"`
	StartDate           string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	PartySize           int     `json:"party_size" validate:"min=1"`
	DailyHourBudget     float64 `json:"daily_hour_budget" validate:"gte=0"` // hours.minutes, 0 = default
}

// UpdateTripRequest represents fields allowed to update a trip.
// All fields are optional; only provided ones will be updated
type UpdateTripRequest struct {
	DepartureWaypointID *int     `json:"departure_waypoint_id" validate:"omitempty,gt=0"`
	ArrivalWaypointID   *int     `json:"arrival_waypoint_id" validate:"omitempty,gt=0"`
	StartDate           *string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate             *string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	PartySize           *int     `json:"party_size" validate:"omitempty,min=1"`
	DailyHourBudget     *float64 `json:"daily_hour_budget" validate:"omitempty,gt=0"`
}

// TripResponse represents a trip object in responses
type TripResponse struct {
	ID                  int64   `json:"id"`
	PilgrimUsername     string  `json:"pilgrim_username"`
	StartSegmentID      int     `json:"start_segment_id"`
	EndSegmentID        int     `json:"end_segment_id"`
	DepartureWaypointID int     `json:"departure_waypoint_id"`
	ArrivalWaypointID   int     `json:"arrival_waypoint_id"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	PartySize           int     `json:"party_size"`
	Reversed            bool    `json:"reversed"`
	DailyHourBudget     float64 `json:"daily_hour_budget"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// StageResponse is one entry of the day plan. TravelDate is null when the
// segment did not fit in the trip's days.
type StageResponse struct {
	Position   int     `json:"position"`
	SegmentID  int     `json:"segment_id"`
	TravelDate *string `json:"travel_date"`
	StageName  string  `json:"stage_name"`
}

// TripPlanResponse envelope
type TripPlanResponse struct {
	Trip                TripResponse    `json:"trip"`
	DayPlan             []StageResponse `json:"day_plan"`
	UnscheduledSegments int             `json:"unscheduled_segments"`
	Warning             string          `json:"warning,omitempty"`
}

type TripListResponse struct {
	Trips []TripResponse `json:"trips"`
}

// EditOptionsResponse lists the edits that keep a trip walkable
type EditOptionsResponse struct {
	MinDays             int                `json:"min_days"`
	MaxDays             int                `json:"max_days"`
	EarliestArrivalDate string             `json:"earliest_arrival_date"`
	LatestArrivalDate   string             `json:"latest_arrival_date"`
	ArrivalCandidates   []WaypointResponse `json:"arrival_candidates"`
	DepartureCandidates []WaypointResponse `json:"departure_candidates"`
}
