package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	MatchdayID   sql.NullString `db:"matchday_public_id"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
	HomeTeamID   string         `db:"home_team_public_id"`
	AwayTeamID   string         `db:"away_team_public_id"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	Status       string         `db:"status"`
	HomeScore    int            `db:"home_score"`
	AwayScore    int            `db:"away_score"`
	PublishedAt  *time.Time     `db:"published_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID     string         `db:"public_id"`
	PoolID       string         `db:"pool_public_id"`
	MatchdayID   sql.NullString `db:"matchday_public_id"`
	DivisionalID sql.NullString `db:"divisional_public_id"`
	HomeTeamID   string         `db:"home_team_public_id"`
	AwayTeamID   string         `db:"away_team_public_id"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	Status       string         `db:"status"`
	HomeScore    int            `db:"home_score"`
	AwayScore    int            `db:"away_score"`
}
