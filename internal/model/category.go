package model

import "time"

// Category groups inventory items for browsing and reporting.
type Category struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Category statuses.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)
