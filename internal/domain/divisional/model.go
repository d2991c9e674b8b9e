package divisional

import "time"

// Divisional is a named zone/group partitioning teams and matches within a
// pool.
type Divisional struct {
	ID        string
	PoolID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
