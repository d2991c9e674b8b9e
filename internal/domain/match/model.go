package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
)

// PredictionCutoff is how long before kickoff predictions close.
const PredictionCutoff = 30 * time.Minute

// Match is a single fixture within a pool. Scores are meaningful only once
// the status leaves SCHEDULED.
type Match struct {
	ID           string
	PoolID       string
	MatchdayID   string
	DivisionalID string
	HomeTeamID   string
	AwayTeamID   string
	KickoffAt    time.Time
	Status       string
	HomeScore    int
	AwayScore    int
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NormalizeStatus(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case StatusLive:
		return StatusLive
	case StatusFinished:
		return StatusFinished
	default:
		return StatusScheduled
	}
}

func IsValidStatus(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case StatusScheduled, StatusLive, StatusFinished:
		return true
	default:
		return false
	}
}

// AcceptsPredictionsAt reports whether a prediction may still be created or
// changed at the given instant: the match must be SCHEDULED and kickoff more
// than the cutoff away.
func (m Match) AcceptsPredictionsAt(now time.Time) bool {
	if m.Status != StatusScheduled {
		return false
	}
	return now.Before(m.KickoffAt.Add(-PredictionCutoff))
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}
