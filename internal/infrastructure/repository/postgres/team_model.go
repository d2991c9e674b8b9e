package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	Name         string         `db:"name"`
	LogoURL      sql.NullString `db:"logo_url"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	Name         string         `db:"name"`
	LogoURL      sql.NullString `db:"logo_url"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
}
