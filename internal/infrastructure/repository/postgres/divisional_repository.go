package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/divisional"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type DivisionalRepository struct {
	db *sqlx.DB
}

func NewDivisionalRepository(db *sqlx.DB) *DivisionalRepository {
	return &DivisionalRepository{db: db}
}

func (r *DivisionalRepository) ListByPool(ctx context.Context, poolID string) ([]divisional.Divisional, error) {
	query, args, err := qb.Select("*").From("divisionals").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select divisionals query: %w", err)
	}

	var rows []divisionalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select divisionals: %w", err)
	}

	out := make([]divisional.Divisional, 0, len(rows))
	for _, row := range rows {
		out = append(out, divisionalFromRow(row))
	}
	return out, nil
}

func (r *DivisionalRepository) GetByID(ctx context.Context, poolID, divisionalID string) (divisional.Divisional, bool, error) {
	query, args, err := qb.Select("*").From("divisionals").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", divisionalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return divisional.Divisional{}, false, fmt.Errorf("build get divisional by id query: %w", err)
	}

	var row divisionalTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return divisional.Divisional{}, false, nil
		}
		return divisional.Divisional{}, false, fmt.Errorf("get divisional by id: %w", err)
	}
	return divisionalFromRow(row), true, nil
}

func (r *DivisionalRepository) Create(ctx context.Context, item divisional.Divisional) error {
	insertModel := divisionalInsertModel{
		PublicID: item.ID,
		PoolID:   item.PoolID,
		Name:     item.Name,
	}
	query, args, err := qb.InsertModel("divisionals", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create divisional query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create divisional: %w", err)
	}
	return nil
}

func (r *DivisionalRepository) Update(ctx context.Context, item divisional.Divisional) error {
	query, args, err := qb.Update("divisionals").
		Set("name", item.Name).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", item.PoolID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update divisional query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update divisional: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update divisional: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update divisional: not found")
	}
	return nil
}

func (r *DivisionalRepository) SoftDelete(ctx context.Context, poolID, divisionalID string) error {
	query, args, err := qb.Update("divisionals").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", divisionalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete divisional query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete divisional: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete divisional: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete divisional: not found")
	}
	return nil
}

func divisionalFromRow(row divisionalTableModel) divisional.Divisional {
	return divisional.Divisional{
		ID:        row.PublicID,
		PoolID:    row.PoolID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
