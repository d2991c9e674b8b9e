package prediction

import "time"

// Prediction is a participant's guessed final score for a match, keyed by
// (pool, user, match).
type Prediction struct {
	PoolID      string
	UserID      string
	MatchID     string
	HomeScore   int
	AwayScore   int
	PredictedAt time.Time
}
