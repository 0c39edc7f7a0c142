package dto

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateItemRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type CheckItemRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type ChecklistItemResponse struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type ChecklistCategoryResponse struct {
	ID    int64                   `json:"id"`
	Name  string                  `json:"name"`
	Items []ChecklistItemResponse `json:"items"`
}

type ChecklistResponse struct {
	TripID     int64                       `json:"trip_id"`
	Categories []ChecklistCategoryResponse `json:"categories"`
}
