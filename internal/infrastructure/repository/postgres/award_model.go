package postgres

import "time"

type awardTableModel struct {
	ID        int64     `db:"id"`
	PoolID    string    `db:"pool_public_id"`
	MatchID   string    `db:"match_public_id"`
	UserID    string    `db:"user_id"`
	Points    int       `db:"points"`
	Tier      string    `db:"tier"`
	AwardedAt time.Time `db:"awarded_at"`
	CreatedAt time.Time `db:"created_at"`
}

type awardInsertModel struct {
	PoolID    string    `db:"pool_public_id"`
	MatchID   string    `db:"match_public_id"`
	UserID    string    `db:"user_id"`
	Points    int       `db:"points"`
	Tier      string    `db:"tier"`
	AwardedAt time.Time `db:"awarded_at"`
}
