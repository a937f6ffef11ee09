package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils"
)

type PreferenceService struct {
	preferenceRepo portsrepo.PreferenceRepositoryFacade
}

func NewPreferenceService(preferenceRepo portsrepo.PreferenceRepositoryFacade) *PreferenceService {
	return &PreferenceService{preferenceRepo: preferenceRepo}
}

var _ portssvc.PreferenceSvcFacade = (*PreferenceService)(nil)

func (s *PreferenceService) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	pref, err := s.preferenceRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find preference", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return pref, nil
}

// SetPreference creates or replaces the user's single preference row. The
// timezone must be a valid IANA zone name.
func (s *PreferenceService) SetPreference(ctx context.Context, userID string, req dto.SetPreferenceRequest) (*domain.UserPreference, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency := utils.NormalizeCurrency(req.CurrencyCode)
	if !utils.IsValidCurrency(currency) {
		return nil, ErrCurrencyInvalid
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, ErrTimezoneInvalid
	}

	now := time.Now()
	pref := domain.UserPreference{
		PreferenceID: uuid.NewString(),
		UserID:       userID,
		CurrencyCode: currency,
		Timezone:     req.Timezone,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.preferenceRepo.UpsertPreference(ctx, pref); err != nil {
		logger.Error("Failed to upsert preference", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Preference saved", slog.String("currency", currency), slog.String("timezone", req.Timezone))
	return &pref, nil
}
