package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/team"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByPool(ctx context.Context, poolID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, poolID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:     item.ID,
		PoolID:       item.PoolID,
		Name:         item.Name,
		LogoURL:      stringToNullString(item.LogoURL),
		DivisionalID: stringToNullString(item.DivisionalID),
	}
	query, args, err := qb.InsertModel("teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("logo_url", stringToNullString(item.LogoURL)).
		Set("divisional_public_id", stringToNullString(item.DivisionalID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", item.PoolID),
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update team: not found")
	}
	return nil
}

func (r *TeamRepository) SoftDelete(ctx context.Context, poolID, teamID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected soft delete team: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("soft delete team: not found")
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.PublicID,
		PoolID:       row.PoolID,
		Name:         row.Name,
		LogoURL:      nullStringToString(row.LogoURL),
		DivisionalID: nullStringToString(row.DivisionalID),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
