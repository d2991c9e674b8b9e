package postgres

import "time"

type divisionalTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	PoolID    string     `db:"pool_public_id"`
	Name      string     `db:"name"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type divisionalInsertModel struct {
	PublicID string `db:"public_id"`
	PoolID   string `db:"pool_public_id"`
	Name     string `db:"name"`
}
