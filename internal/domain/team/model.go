package team

import "time"

// Team belongs to a pool and optionally to one of its divisionals.
type Team struct {
	ID           string
	PoolID       string
	Name         string
	LogoURL      string
	DivisionalID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
