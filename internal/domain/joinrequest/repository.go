package joinrequest

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Create when the user already has a pending
// request for the pool.
var ErrDuplicate = errors.New("join request already exists")

type Repository interface {
	ListByPool(ctx context.Context, poolID string) ([]JoinRequest, error)
	GetByPoolAndUser(ctx context.Context, poolID, userID string) (JoinRequest, bool, error)
	Create(ctx context.Context, item JoinRequest) error
	Delete(ctx context.Context, poolID, userID string) error
}
