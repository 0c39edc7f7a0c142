package models

import "github.com/uptrace/bun"

// ChecklistCategory groups packing items for a trip
type ChecklistCategory struct {
	bun.BaseModel `bun:"table:checklist_categories,alias:cc"`

	ID     int64           `bun:"id,pk,autoincrement" json:"id"`
	TripID int64           `bun:"trip_id,notnull" json:"trip_id"`
	Name   string          `bun:"name,notnull" json:"name"`
	Items  []ChecklistItem `bun:"rel:has-many,join:id=category_id" json:"items"`
}

type ChecklistItem struct {
	bun.BaseModel `bun:"table:checklist_items,alias:ci"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	CategoryID int64  `bun:"category_id,notnull" json:"category_id"`
	Text       string `bun:"text,notnull" json:"text"`
	Checked    bool   `bun:"checked,notnull,default:false" json:"checked"`
}
