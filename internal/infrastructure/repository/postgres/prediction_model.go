package postgres

import "time"

type predictionTableModel struct {
	ID          int64      `db:"id"`
	PoolID      string     `db:"pool_public_id"`
	UserID      string     `db:"user_id"`
	MatchID     string     `db:"match_public_id"`
	HomeScore   int        `db:"home_score"`
	AwayScore   int        `db:"away_score"`
	PredictedAt time.Time  `db:"predicted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type predictionInsertModel struct {
	PoolID      string    `db:"pool_public_id"`
	UserID      string    `db:"user_id"`
	MatchID     string    `db:"match_public_id"`
	HomeScore   int       `db:"home_score"`
	AwayScore   int       `db:"away_score"`
	PredictedAt time.Time `db:"predicted_at"`
}
