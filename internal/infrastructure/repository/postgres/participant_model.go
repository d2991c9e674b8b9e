package postgres

import "time"

type participantTableModel struct {
	ID          int64      `db:"id"`
	PoolID      string     `db:"pool_public_id"`
	UserID      string     `db:"user_id"`
	DisplayName string     `db:"display_name"`
	Username    string     `db:"username"`
	Points      int        `db:"points"`
	JoinedAt    time.Time  `db:"joined_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type participantInsertModel struct {
	PoolID      string    `db:"pool_public_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Username    string    `db:"username"`
	Points      int       `db:"points"`
	JoinedAt    time.Time `db:"joined_at"`
}
