package domain

import "time"

// User represents a registered user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	Timestamps
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
