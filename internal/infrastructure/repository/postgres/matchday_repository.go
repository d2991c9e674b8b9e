package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/matchday"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type MatchdayRepository struct {
	db *sqlx.DB
}

func NewMatchdayRepository(db *sqlx.DB) *MatchdayRepository {
	return &MatchdayRepository{db: db}
}

func (r *MatchdayRepository) ListByPool(ctx context.Context, poolID string) ([]matchday.Matchday, error) {
	query, args, err := qb.Select("*").From("matchdays").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchdays query: %w", err)
	}

	var rows []matchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchdays: %w", err)
	}

	out := make([]matchday.Matchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchdayFromRow(row))
	}
	return out, nil
}

func (r *MatchdayRepository) GetByID(ctx context.Context, poolID, matchdayID string) (matchday.Matchday, bool, error) {
	query, args, err := qb.Select("*").From("matchdays").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", matchdayID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build get matchday by id query: %w", err)
	}

	var row matchdayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchday.Matchday{}, false, nil
		}
		return matchday.Matchday{}, false, fmt.Errorf("get matchday by id: %w", err)
	}
	return matchdayFromRow(row), true, nil
}

func (r *MatchdayRepository) Create(ctx context.Context, item matchday.Matchday) error {
	insertModel := matchdayInsertModel{
		PublicID:     item.ID,
		PoolID:       item.PoolID,
		Number:       item.Number,
		DisplayName:  stringToNullString(item.DisplayName),
		DivisionalID: stringToNullString(item.DivisionalID),
	}
	query, args, err := qb.InsertModel("matchdays", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create matchday query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create matchday: %w", err)
	}
	return nil
}

func (r *MatchdayRepository) Update(ctx context.Context, item matchday.Matchday) error {
	query, args, err := qb.Update("matchdays").
		Set("number", item.Number).
		Set("display_name", stringToNullString(item.DisplayName)).
		Set("divisional_public_id", stringToNullString(item.DivisionalID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", item.PoolID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchday query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update matchday: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update matchday: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update matchday: not found")
	}
	return nil
}

func (r *MatchdayRepository) SoftDelete(ctx context.Context, poolID, matchdayID string) error {
	query, args, err := qb.Update("matchdays").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", matchdayID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete matchday query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete matchday: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete matchday: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete matchday: not found")
	}
	return nil
}

func matchdayFromRow(row matchdayTableModel) matchday.Matchday {
	return matchday.Matchday{
		ID:           row.PublicID,
		PoolID:       row.PoolID,
		Number:       row.Number,
		DisplayName:  nullStringToString(row.DisplayName),
		DivisionalID: nullStringToString(row.DivisionalID),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
