package award

import "context"

type Repository interface {
	// Record inserts the ledger entry. It returns false without error when
	// an entry for the same (pool, match, user) already exists.
	Record(ctx context.Context, item Award) (bool, error)
	ListByMatch(ctx context.Context, poolID, matchID string) ([]Award, error)
}
