package dto

type CreateBookingRequest struct {
	StructureID int64  `json:"structure_id" validate:"required,gt=0"`
	StayDate    string `json:"stay_date" validate:"required,datetime=2006-01-02"`
	BedCount    int    `json:"bed_count" validate:"min=1"`
}

type CancelBookingRequest struct {
	StructureID int64  `json:"structure_id" validate:"required,gt=0"`
	StayDate    string `json:"stay_date" validate:"required,datetime=2006-01-02"`
}

type BookingResponse struct {
	StructureID     int64  `json:"structure_id"`
	PilgrimUsername string `json:"pilgrim_username"`
	StayDate        string `json:"stay_date"`
	BedCount        int    `json:"bed_count"`
	CreatedAt       string `json:"created_at"`
}

// BookingDetailResponse adds the structure data to a booking
type BookingDetailResponse struct {
	BookingResponse
	StructureName string `json:"structure_name"`
	OwnerUsername string `json:"owner_username"`
	WaypointID    int    `json:"waypoint_id"`
	Color         string `json:"color"`
}

type BookingListResponse struct {
	Bookings []BookingDetailResponse `json:"bookings"`
}

type OccupancyResponse struct {
	StructureID  int64  `json:"structure_id"`
	StayDate     string `json:"stay_date"`
	OccupiedBeds int    `json:"occupied_beds"`
	TotalBeds    int    `json:"total_beds"`
}

type OccupancyListResponse struct {
	Occupancy []OccupancyResponse `json:"occupancy"`
}
