package dto

// StructureRequest is the payload for creating or replacing a structure
type StructureRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	WaypointID   int      `json:"waypoint_id" validate:"required,gt=0"`
	Street       string   `json:"street" validate:"max=200"`
	StreetNumber string   `json:"street_number" validate:"max=20"`
	Latitude     *float64 `json:"street_lat" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"street_lon" validate:"omitempty,longitude"`
	TotalBeds    int      `json:"total_beds" validate:"min=1"`
	OtherInfo    string   `json:"other_info" validate:"max=2000"`
	Color        string   `json:"color" validate:"omitempty,hexcolor"`
	PhotoURL     *string  `json:"photo_url" validate:"omitempty,max=2048"`
}

type StructureResponse struct {
	ID            int64    `json:"id"`
	OwnerUsername string   `json:"owner_username"`
	Name          string   `json:"name"`
	WaypointID    int      `json:"waypoint_id"`
	Street        string   `json:"street"`
	StreetNumber  string   `json:"street_number"`
	Latitude      *float64 `json:"street_lat"`
	Longitude     *float64 `json:"street_lon"`
	TotalBeds     int      `json:"total_beds"`
	OtherInfo     string   `json:"other_info"`
	Color         string   `json:"color"`
	PhotoURL      *string  `json:"photo_url"`
	CreatedAt     string   `json:"created_at"`
}

type StructureListResponse struct {
	Structures []StructureResponse `json:"structures"`
}

type ColorsResponse struct {
	Colors []string `json:"colors"`
}

// AvailabilityResponse is the capacity gate's answer for one night
type AvailabilityResponse struct {
	StructureID int64  `json:"structure_id"`
	StayDate    string `json:"stay_date"`
	Occupied    int    `json:"occupied_beds"`
	TotalBeds   int    `json:"total_beds"`
	Free        int    `json:"free_beds"`
	Available   bool   `json:"available"`
}
