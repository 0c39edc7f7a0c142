package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to a single user
type Notification struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Username  string          `json:"username" db:"username"`
	Type      string          `json:"type" db:"type"`
	Title     string          `json:"title" db:"title"`
	Message   string          `json:"message" db:"message"`
	Data      json.RawMessage `json:"data,omitempty" db:"data"`
	Read      bool            `json:"read" db:"read"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
