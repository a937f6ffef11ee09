package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/period"
)

// AggregateService exposes rollup reads with owner-or-admin access control
// and embeds the engine for recomputation.
type AggregateService struct {
	*AggregateEngine
	aggregateRepo portsrepo.AggregateReader
	userRepo      portsrepo.UserReader
}

func NewAggregateService(engine *AggregateEngine, aggregateRepo portsrepo.AggregateReader, userRepo portsrepo.UserReader) *AggregateService {
	return &AggregateService{
		AggregateEngine: engine,
		aggregateRepo:   aggregateRepo,
		userRepo:        userRepo,
	}
}

var _ portssvc.AggregateSvcFacade = (*AggregateService)(nil)

// authorize allows a user to read their own rollups; reading another user's
// requires the requesting user to be an admin.
func (s *AggregateService) authorize(ctx context.Context, requestingUserID string, userID string) error {
	if requestingUserID == userID {
		return nil
	}
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to check requester permissions: %w", err)
	}
	if !requester.IsAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *AggregateService) GetAggregate(ctx context.Context, requestingUserID string, userID string, periodType domain.PeriodType, periodStart time.Time) (*domain.Aggregate, error) {
	if err := s.authorize(ctx, requestingUserID, userID); err != nil {
		return nil, err
	}
	if !periodType.IsValid() {
		return nil, fmt.Errorf("%w: invalid period type %q", apperrors.ErrValidation, periodType)
	}

	agg, err := s.aggregateRepo.FindAggregateByPeriod(ctx, userID, periodType, period.DateOnly(periodStart))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find aggregate", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return agg, nil
}

func (s *AggregateService) ListAggregates(ctx context.Context, requestingUserID string, userID string, periodType domain.PeriodType, filter domain.AggregateFilter, offset int, limit int) ([]domain.Aggregate, error) {
	if err := s.authorize(ctx, requestingUserID, userID); err != nil {
		return nil, err
	}
	if !periodType.IsValid() {
		return nil, fmt.Errorf("%w: invalid period type %q", apperrors.ErrValidation, periodType)
	}

	aggs, err := s.aggregateRepo.ListAggregatesByUser(ctx, userID, periodType, filter, offset, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list aggregates", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list aggregates: %w", err)
	}
	if aggs == nil {
		return []domain.Aggregate{}, nil
	}
	return aggs, nil
}
