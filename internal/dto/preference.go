package dto

import (
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// SetPreferenceRequest defines the data for creating or replacing a user's
// preference.
type SetPreferenceRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	Timezone     string `json:"timezone" binding:"required"`
}

// PreferenceResponse defines the data returned for a user preference.
type PreferenceResponse struct {
	PreferenceID string    `json:"preferenceID"`
	UserID       string    `json:"userID"`
	CurrencyCode string    `json:"currencyCode"`
	Timezone     string    `json:"timezone"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToPreferenceResponse converts a domain.UserPreference to PreferenceResponse DTO
func ToPreferenceResponse(p *domain.UserPreference) PreferenceResponse {
	return PreferenceResponse{
		PreferenceID: p.PreferenceID,
		UserID:       p.UserID,
		CurrencyCode: p.CurrencyCode,
		Timezone:     p.Timezone,
		UpdatedAt:    p.UpdatedAt,
	}
}
