package matchday

import "time"

// Matchday is a numbered round grouping matches, optionally scoped to a
// divisional.
type Matchday struct {
	ID           string
	PoolID       string
	Number       int
	DisplayName  string
	DivisionalID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
