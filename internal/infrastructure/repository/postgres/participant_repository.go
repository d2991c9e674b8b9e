package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/penca-app/penca-api/internal/domain/participant"
	qb "github.com/penca-app/penca-api/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) ListByPool(ctx context.Context, poolID string) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("points DESC", "joined_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

func (r *ParticipantRepository) GetByPoolAndUser(ctx context.Context, poolID, userID string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}
	return participantFromRow(row), true, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	insertModel := participantInsertModel{
		PoolID:      item.PoolID,
		UserID:      item.UserID,
		DisplayName: item.DisplayName,
		Username:    item.Username,
		Points:      item.Points,
		JoinedAt:    item.JoinedAt,
	}
	query, args, err := qb.InsertModel("participants", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}

// AddPoints applies the delta in a single statement so concurrent awards
// never lose increments to a read-modify-write race.
func (r *ParticipantRepository) AddPoints(ctx context.Context, poolID, userID string, delta int) error {
	query, args, err := qb.Update("participants").
		SetExpr("points", "points + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("pool_public_id", poolID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected add points: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("add points: participant not found")
	}
	return nil
}

func participantFromRow(row participantTableModel) participant.Participant {
	return participant.Participant{
		PoolID:      row.PoolID,
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		Username:    row.Username,
		Points:      row.Points,
		JoinedAt:    row.JoinedAt,
	}
}
