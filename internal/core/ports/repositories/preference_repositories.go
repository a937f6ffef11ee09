package repositories

import (
	"context"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// PreferenceReader defines read operations for user preference data
type PreferenceReader interface {
	// FindPreferenceByUserID retrieves a user's preference row, if any.
	FindPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error)
}

// PreferenceWriter defines write operations for user preference data
type PreferenceWriter interface {
	// UpsertPreference inserts or replaces the single preference row a user
	// may have.
	UpsertPreference(ctx context.Context, pref domain.UserPreference) error
}

// PreferenceRepositoryFacade combines all preference-related repository interfaces
type PreferenceRepositoryFacade interface {
	PreferenceReader
	PreferenceWriter
}
