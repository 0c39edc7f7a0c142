package models

import "time"

// Structure is a lodging place located at a waypoint
type Structure struct {
	ID            int64     `json:"id" db:"id"`
	OwnerUsername string    `json:"owner_username" db:"owner_username"`
	Name          string    `json:"name" db:"name"`
	WaypointID    int       `json:"waypoint_id" db:"waypoint_id"`
	Street        string    `json:"street" db:"street"`
	StreetNumber  string    `json:"street_number" db:"street_number"`
	Latitude      *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64  `json:"longitude,omitempty" db:"longitude"`
	TotalBeds     int       `json:"total_beds" db:"total_beds"`
	OtherInfo     string    `json:"other_info" db:"other_info"`
	Color         string    `json:"color" db:"color"`
	PhotoURL      *string   `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Booking reserves beds in a structure for one night
type Booking struct {
	ID              int64     `json:"id" db:"id"`
	StructureID     int64     `json:"structure_id" db:"structure_id"`
	PilgrimUsername string    `json:"pilgrim_username" db:"pilgrim_username"`
	BedCount        int       `json:"bed_count" db:"bed_count"`
	StayDate        time.Time `json:"stay_date" db:"stay_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Occupancy is the number of beds taken in a structure on a date
type Occupancy struct {
	StructureID  int64     `json:"structure_id" db:"structure_id"`
	StayDate     time.Time `json:"stay_date" db:"stay_date"`
	OccupiedBeds int       `json:"occupied_beds" db:"occupied_beds"`
	TotalBeds    int       `json:"total_beds" db:"total_beds"`
}

// BookingDetail is a booking joined with the structure it belongs to
type BookingDetail struct {
	Booking
	StructureName string `json:"structure_name" db:"structure_name"`
	OwnerUsername string `json:"owner_username" db:"owner_username"`
	WaypointID    int    `json:"waypoint_id" db:"waypoint_id"`
	Color         string `json:"color" db:"color"`
}
