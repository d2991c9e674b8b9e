package team

import "context"

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]Team, error)
	GetByID(ctx context.Context, poolID, teamID string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
	SoftDelete(ctx context.Context, poolID, teamID string) error
}
