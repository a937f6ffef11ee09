package models

// UserPreference represents a row of the user_preferences table, one per user.
type UserPreference struct {
	PreferenceID string `db:"preference_id"`
	UserID       string `db:"user_id"`
	CurrencyCode string `db:"currency_code"`
	Timezone     string `db:"timezone"`
	Timestamps
}
