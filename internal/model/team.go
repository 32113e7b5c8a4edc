package model

import "time"

// Team is a tenant of the platform. The name doubles as the key under which
// the team's object-store credentials are kept.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
