package postgres

import "time"

type joinRequestTableModel struct {
	ID          int64      `db:"id"`
	PoolID      string     `db:"pool_public_id"`
	UserID      string     `db:"user_id"`
	DisplayName string     `db:"display_name"`
	Username    string     `db:"username"`
	RequestedAt time.Time  `db:"requested_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type joinRequestInsertModel struct {
	PoolID      string    `db:"pool_public_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Username    string    `db:"username"`
	RequestedAt time.Time `db:"requested_at"`
}
