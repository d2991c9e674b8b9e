package pool

import (
	"time"

	"github.com/penca-app/penca-api/internal/domain/scoring"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Pool is a tournament-scoped prediction competition with its own teams,
// matches, scoring rules, and participants.
type Pool struct {
	ID          string
	Name        string
	Description string
	OwnerUserID string
	Status      string
	Rules       scoring.Rules
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Pool) IsOwnedBy(userID string) bool {
	return userID != "" && p.OwnerUserID == userID
}
