package divisional

import "context"

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]Divisional, error)
	GetByID(ctx context.Context, poolID, divisionalID string) (Divisional, bool, error)
	Create(ctx context.Context, item Divisional) error
	Update(ctx context.Context, item Divisional) error
	SoftDelete(ctx context.Context, poolID, divisionalID string) error
}
