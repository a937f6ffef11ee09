package services

import (
	"context"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
)

// PreferenceSvcFacade defines operations for user preference data
type PreferenceSvcFacade interface {
	// GetPreference retrieves a user's preference, or ErrNotFound when none
	// has been set.
	GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error)

	// SetPreference creates or replaces a user's single preference row.
	SetPreference(ctx context.Context, userID string, req dto.SetPreferenceRequest) (*domain.UserPreference, error)
}
