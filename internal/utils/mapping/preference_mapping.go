package mapping

import (
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
)

// ToModelUserPreference converts a domain UserPreference to a model UserPreference
func ToModelUserPreference(d domain.UserPreference) models.UserPreference {
	return models.UserPreference{
		PreferenceID: d.PreferenceID,
		UserID:       d.UserID,
		CurrencyCode: d.CurrencyCode,
		Timezone:     d.Timezone,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainUserPreference converts a model UserPreference to a domain UserPreference
func ToDomainUserPreference(m models.UserPreference) domain.UserPreference {
	return domain.UserPreference{
		PreferenceID: m.PreferenceID,
		UserID:       m.UserID,
		CurrencyCode: m.CurrencyCode,
		Timezone:     m.Timezone,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
