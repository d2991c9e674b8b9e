package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/award"
	"github.com/penca-app/penca-api/internal/domain/scoring"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type AwardRepository struct {
	db *sqlx.DB
}

func NewAwardRepository(db *sqlx.DB) *AwardRepository {
	return &AwardRepository{db: db}
}

// Record inserts the ledger row. ON CONFLICT DO NOTHING makes republishing
// safe; zero rows affected means the (pool, match, user) pair was already
// awarded.
func (r *AwardRepository) Record(ctx context.Context, item award.Award) (bool, error) {
	insertModel := awardInsertModel{
		PoolID:    item.PoolID,
		MatchID:   item.MatchID,
		UserID:    item.UserID,
		Points:    item.Points,
		Tier:      string(item.Tier),
		AwardedAt: item.AwardedAt,
	}
	query, args, err := qb.InsertModel("point_awards", insertModel, `ON CONFLICT (pool_public_id, match_public_id, user_id)
DO NOTHING`)
	if err != nil {
		return false, fmt.Errorf("build record award query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("record award: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected record award: %w", err)
	}
	return affected > 0, nil
}

func (r *AwardRepository) ListByMatch(ctx context.Context, poolID, matchID string) ([]award.Award, error) {
	query, args, err := qb.Select("*").From("point_awards").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("match_public_id", matchID),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select awards query: %w", err)
	}

	var rows []awardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select awards: %w", err)
	}

	out := make([]award.Award, 0, len(rows))
	for _, row := range rows {
		out = append(out, award.Award{
			PoolID:    row.PoolID,
			MatchID:   row.MatchID,
			UserID:    row.UserID,
			Points:    row.Points,
			Tier:      scoring.Tier(row.Tier),
			AwardedAt: row.AwardedAt,
		})
	}
	return out, nil
}
