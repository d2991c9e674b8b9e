package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/prediction"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) error {
	insertModel := predictionInsertModel{
		PoolID:      item.PoolID,
		UserID:      item.UserID,
		MatchID:     item.MatchID,
		HomeScore:   item.HomeScore,
		AwayScore:   item.AwayScore,
		PredictedAt: item.PredictedAt,
	}
	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (pool_public_id, user_id, match_public_id) WHERE deleted_at IS NULL
DO UPDATE SET home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score, predicted_at = EXCLUDED.predicted_at, updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert prediction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, poolID, userID, matchID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}
	return predictionFromRow(row), true, nil
}

func (r *PredictionRepository) ListByPoolAndUser(ctx context.Context, poolID, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by user query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions by user: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, poolID, matchID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by match query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions by match: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		PoolID:      row.PoolID,
		UserID:      row.UserID,
		MatchID:     row.MatchID,
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
		PredictedAt: row.PredictedAt,
	}
}
