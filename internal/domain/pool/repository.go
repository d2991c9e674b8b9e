package pool

import "context"

type Repository interface {
	List(ctx context.Context) ([]Pool, error)
	GetByID(ctx context.Context, poolID string) (Pool, bool, error)
	Create(ctx context.Context, item Pool) error
	Update(ctx context.Context, item Pool) error
	SoftDelete(ctx context.Context, poolID string) error
}
