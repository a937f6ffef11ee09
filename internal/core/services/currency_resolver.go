package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
)

// DefaultCurrency stamps rollups for users without a stored preference.
const DefaultCurrency = "USD"

// CurrencyResolver resolves the currency code for a user's rollups from their
// stored preference. Lookup failures degrade to the default so aggregation is
// never blocked on the preference table.
type CurrencyResolver struct {
	preferenceRepo portsrepo.PreferenceReader
}

func NewCurrencyResolver(preferenceRepo portsrepo.PreferenceReader) *CurrencyResolver {
	return &CurrencyResolver{preferenceRepo: preferenceRepo}
}

var _ portssvc.CurrencyResolverSvc = (*CurrencyResolver)(nil)

func (r *CurrencyResolver) ResolveCurrency(ctx context.Context, userID string) string {
	pref, err := r.preferenceRepo.FindPreferenceByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Preference lookup failed, using default currency",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
		return DefaultCurrency
	}
	if pref.CurrencyCode == "" {
		return DefaultCurrency
	}
	return pref.CurrencyCode
}
