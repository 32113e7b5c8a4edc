package model

import "time"

// Notification is a persisted in-app notification. Exactly one of UserID and
// TeamID is set, identifying the fan-out target. Records are immutable once
// created.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	TeamID    *int64    `json:"team_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
