package models

import (
	"time"
)

// Trip represents a pilgrimage planned by a pilgrim
type Trip struct {
	ID              int64     `json:"id" db:"id"`
	PilgrimUsername string    `json:"pilgrim_username" db:"pilgrim_username"`
	StartSegmentID  int       `json:"start_segment_id" db:"start_segment_id"`
	EndSegmentID    int       `json:"end_segment_id" db:"end_segment_id"`
	StartDate       time.Time `json:"start_date" db:"start_date"`
	EndDate         time.Time `json:"end_date" db:"end_date"`
	PartySize       int       `json:"party_size" db:"party_size"`
	Reversed        bool      `json:"reversed" db:"reversed"`
	DailyHourBudget float64   `json:"daily_hour_budget" db:"daily_hour_budget"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DayPlanEntry assigns one segment of a trip to a calendar day. A nil
// TravelDate marks a segment that did not fit in the trip's date range.
type DayPlanEntry struct {
	TripID     int64      `json:"trip_id" db:"trip_id"`
	Position   int        `json:"position" db:"position"`
	SegmentID  int        `json:"segment_id" db:"segment_id"`
	TravelDate *time.Time `json:"travel_date" db:"travel_date"`
	StageName  string     `json:"stage_name" db:"stage_name"`
}
