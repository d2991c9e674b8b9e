package match

import "context"

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]Match, error)
	GetByID(ctx context.Context, poolID, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	SoftDelete(ctx context.Context, poolID, matchID string) error
}
