package postgres

import "time"

type poolTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	Name             string     `db:"name"`
	Description      string     `db:"description"`
	OwnerUserID      string     `db:"owner_user_id"`
	Status           string     `db:"status"`
	ExactScorePoints int        `db:"exact_score_points"`
	DifferencePoints int        `db:"difference_points"`
	WinnerPoints     int        `db:"winner_points"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type poolInsertModel struct {
	PublicID         string `db:"public_id"`
	Name             string `db:"name"`
	Description      string `db:"description"`
	OwnerUserID      string `db:"owner_user_id"`
	Status           string `db:"status"`
	ExactScorePoints int    `db:"exact_score_points"`
	DifferencePoints int    `db:"difference_points"`
	WinnerPoints     int    `db:"winner_points"`
}
