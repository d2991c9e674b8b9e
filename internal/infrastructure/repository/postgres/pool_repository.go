package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/pool"
	"github.com/penca-app/penca-api/internal/domain/scoring"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) List(ctx context.Context) ([]pool.Pool, error) {
	query, args, err := qb.Select("*").From("pools").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pools query: %w", err)
	}

	var rows []poolTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pools: %w", err)
	}

	out := make([]pool.Pool, 0, len(rows))
	for _, row := range rows {
		out = append(out, poolFromRow(row))
	}
	return out, nil
}

func (r *PoolRepository) GetByID(ctx context.Context, poolID string) (pool.Pool, bool, error) {
	query, args, err := qb.Select("*").From("pools").
		Where(
			qb.Eq("public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pool.Pool{}, false, fmt.Errorf("build get pool by id query: %w", err)
	}

	var row poolTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pool.Pool{}, false, nil
		}
		return pool.Pool{}, false, fmt.Errorf("get pool by id: %w", err)
	}
	return poolFromRow(row), true, nil
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) error {
	insertModel := poolInsertModel{
		PublicID:         item.ID,
		Name:             item.Name,
		Description:      item.Description,
		OwnerUserID:      item.OwnerUserID,
		Status:           item.Status,
		ExactScorePoints: item.Rules.ExactScorePoints,
		DifferencePoints: item.Rules.DifferencePoints,
		WinnerPoints:     item.Rules.WinnerPoints,
	}
	query, args, err := qb.InsertModel("pools", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create pool query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	return nil
}

func (r *PoolRepository) Update(ctx context.Context, item pool.Pool) error {
	query, args, err := qb.Update("pools").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("status", item.Status).
		Set("exact_score_points", item.Rules.ExactScorePoints).
		Set("difference_points", item.Rules.DifferencePoints).
		Set("winner_points", item.Rules.WinnerPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pool query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pool: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update pool: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update pool: not found")
	}
	return nil
}

func (r *PoolRepository) SoftDelete(ctx context.Context, poolID string) error {
	query, args, err := qb.Update("pools").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete pool query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete pool: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete pool: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete pool: not found")
	}
	return nil
}

func poolFromRow(row poolTableModel) pool.Pool {
	return pool.Pool{
		ID:          row.PublicID,
		Name:        row.Name,
		Description: row.Description,
		OwnerUserID: row.OwnerUserID,
		Status:      row.Status,
		Rules: scoring.Rules{
			ExactScorePoints: row.ExactScorePoints,
			DifferencePoints: row.DifferencePoints,
			WinnerPoints:     row.WinnerPoints,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
