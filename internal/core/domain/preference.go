package domain

// UserPreference holds per-user settings. One row exists per user.
type UserPreference struct {
	PreferenceID string `json:"preferenceID"` // Primary Key (UUID)
	UserID       string `json:"userID"`       // Unique FK -> User.userID
	CurrencyCode string `json:"currencyCode"` // Preferred display/aggregation currency
	Timezone     string `json:"timezone"`
	Timestamps
}
