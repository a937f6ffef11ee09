package services

import (
	"context"
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// AggregateReaderSvc defines read operations for aggregate data
type AggregateReaderSvc interface {
	// GetAggregate retrieves one rollup row on behalf of requestingUserID.
	// Reading another user's rollups requires admin rights.
	GetAggregate(ctx context.Context, requestingUserID string, userID string, periodType domain.PeriodType, periodStart time.Time) (*domain.Aggregate, error)

	// ListAggregates retrieves a user's rollups of one period type.
	ListAggregates(ctx context.Context, requestingUserID string, userID string, periodType domain.PeriodType, filter domain.AggregateFilter, offset int, limit int) ([]domain.Aggregate, error)
}

// Recomputer recomputes the rollups affected by a change to one expense date:
// the daily, weekly and monthly period containing that date.
type Recomputer interface {
	// RecomputeForExpenseDate recomputes all three period rollups containing
	// expenseDate. Each period is recomputed and upserted independently.
	RecomputeForExpenseDate(ctx context.Context, userID string, expenseDate time.Time) error
}

// CurrencyResolverSvc resolves the currency code to stamp on a user's rollups.
type CurrencyResolverSvc interface {
	// ResolveCurrency returns the user's preferred currency, falling back to
	// USD when no preference exists or the lookup fails. Never errors.
	ResolveCurrency(ctx context.Context, userID string) string
}

// RecomputeScheduler accepts recompute work for asynchronous processing.
type RecomputeScheduler interface {
	// Enqueue schedules recomputation of every rollup containing expenseDate.
	Enqueue(userID string, expenseDate time.Time)
}

// AggregateSvcFacade combines all aggregate-related service interfaces
type AggregateSvcFacade interface {
	AggregateReaderSvc
	Recomputer
}
