package domain

// Category represents an expense category. Default categories have no owning
// user and are visible to everyone; user categories are private to their owner.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	UserID     string `json:"userID,omitempty"` // Empty for default categories
	Name       string `json:"name"`
	IsDefault  bool   `json:"isDefault"`
	Timestamps
}
