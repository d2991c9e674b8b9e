package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/joinrequest"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type JoinRequestRepository struct {
	db *sqlx.DB
}

func NewJoinRequestRepository(db *sqlx.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) ListByPool(ctx context.Context, poolID string) ([]joinrequest.JoinRequest, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("requested_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select join requests query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select join requests: %w", err)
	}

	out := make([]joinrequest.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, joinRequestFromRow(row))
	}
	return out, nil
}

func (r *JoinRequestRepository) GetByPoolAndUser(ctx context.Context, poolID, userID string) (joinrequest.JoinRequest, bool, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return joinrequest.JoinRequest{}, false, fmt.Errorf("build get join request query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return joinrequest.JoinRequest{}, false, nil
		}
		return joinrequest.JoinRequest{}, false, fmt.Errorf("get join request: %w", err)
	}
	return joinRequestFromRow(row), true, nil
}

func (r *JoinRequestRepository) Create(ctx context.Context, item joinrequest.JoinRequest) error {
	insertModel := joinRequestInsertModel{
		PoolID:      item.PoolID,
		UserID:      item.UserID,
		DisplayName: item.DisplayName,
		Username:    item.Username,
		RequestedAt: item.RequestedAt,
	}
	query, args, err := qb.InsertModel("join_requests", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create join request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return joinrequest.ErrDuplicate
		}
		return fmt.Errorf("create join request: %w", err)
	}
	return nil
}

func (r *JoinRequestRepository) Delete(ctx context.Context, poolID, userID string) error {
	query, args, err := qb.Update("join_requests").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete join request query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete join request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete join request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete join request: not found")
	}
	return nil
}

func joinRequestFromRow(row joinRequestTableModel) joinrequest.JoinRequest {
	return joinrequest.JoinRequest{
		PoolID:      row.PoolID,
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		Username:    row.Username,
		RequestedAt: row.RequestedAt,
	}
}
