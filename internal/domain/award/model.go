package award

import (
	"time"

	"github.com/penca-app/penca-api/internal/domain/scoring"
)

// Award is the ledger entry recording that points were granted to a user
// for a match. One row per (pool, match, user) keeps re-publication from
// double-crediting.
type Award struct {
	PoolID    string
	MatchID   string
	UserID    string
	Points    int
	Tier      scoring.Tier
	AwardedAt time.Time
}
