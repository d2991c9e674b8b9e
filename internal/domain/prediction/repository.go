package prediction

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Prediction) error
	GetByUserAndMatch(ctx context.Context, poolID, userID, matchID string) (Prediction, bool, error)
	ListByPoolAndUser(ctx context.Context, poolID, userID string) ([]Prediction, error)
	ListByMatch(ctx context.Context, poolID, matchID string) ([]Prediction, error)
}
