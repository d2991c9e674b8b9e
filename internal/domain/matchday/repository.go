package matchday

import "context"

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]Matchday, error)
	GetByID(ctx context.Context, poolID, matchdayID string) (Matchday, bool, error)
	Create(ctx context.Context, item Matchday) error
	Update(ctx context.Context, item Matchday) error
	SoftDelete(ctx context.Context, poolID, matchdayID string) error
}
