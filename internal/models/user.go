package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
	Timestamps
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token fields; only the hash is persisted.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
