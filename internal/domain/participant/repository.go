package participant

import "context"

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]Participant, error)
	GetByPoolAndUser(ctx context.Context, poolID, userID string) (Participant, bool, error)
	Create(ctx context.Context, item Participant) error
	// AddPoints applies a single server-side additive update to the stored
	// total; it never reads then writes.
	AddPoints(ctx context.Context, poolID, userID string, delta int) error
}
