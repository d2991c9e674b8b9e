package postgres

import (
	"database/sql"
	"time"
)

type matchdayTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	Number       int            `db:"number"`
	DisplayName  sql.NullString `db:"display_name"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type matchdayInsertModel struct {
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	Number       int            `db:"number"`
	DisplayName  sql.NullString `db:"display_name"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
}
