package models

import "database/sql"

// Category represents a row of the categories table. Default categories have
// a NULL user_id and are visible to every user.
type Category struct {
	CategoryID string         `db:"category_id"`
	UserID     sql.NullString `db:"user_id"`
	Name       string         `db:"name"`
	IsDefault  bool           `db:"is_default"`
	Timestamps
}
