package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/match"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByPool(ctx context.Context, poolID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, poolID, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	insertModel := matchInsertModel{
		PublicID:     item.ID,
		PoolID:       item.PoolID,
		MatchdayID:   stringToNullString(item.MatchdayID),
		DivisionalID: stringToNullString(item.DivisionalID),
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		KickoffAt:    item.KickoffAt,
		Status:       item.Status,
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	builder := qb.Update("matches").
		Set("matchday_public_id", stringToNullString(item.MatchdayID)).
		Set("divisional_public_id", stringToNullString(item.DivisionalID)).
		Set("home_team_public_id", item.HomeTeamID).
		Set("away_team_public_id", item.AwayTeamID).
		Set("kickoff_at", item.KickoffAt).
		Set("status", item.Status).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("published_at", item.PublishedAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", item.PoolID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		)
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match: not found")
	}
	return nil
}

func (r *MatchRepository) SoftDelete(ctx context.Context, poolID, matchID string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete match: not found")
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:           row.PublicID,
		PoolID:       row.PoolID,
		MatchdayID:   nullStringToString(row.MatchdayID),
		DivisionalID: nullStringToString(row.DivisionalID),
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		KickoffAt:    row.KickoffAt,
		Status:       row.Status,
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
		PublishedAt:  row.PublishedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
