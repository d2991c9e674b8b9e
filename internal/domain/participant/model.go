package participant

import "time"

// Participant is a pool-scoped membership record keyed by user id. Points
// only grow through award fan-out; manual corrections go through the same
// additive path with a negative delta.
type Participant struct {
	PoolID      string
	UserID      string
	DisplayName string
	Username    string
	Points      int
	JoinedAt    time.Time
}

// Standing is a participant plus the computed leaderboard rank. Equal point
// totals share a rank.
type Standing struct {
	Participant
	Rank int
}
