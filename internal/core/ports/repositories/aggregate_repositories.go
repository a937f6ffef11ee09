package repositories

import (
	"context"
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// AggregateReader defines read operations for aggregate data
type AggregateReader interface {
	// FindAggregateByPeriod retrieves the rollup row for one (user, period
	// type, period start) key.
	FindAggregateByPeriod(ctx context.Context, userID string, periodType domain.PeriodType, periodStart time.Time) (*domain.Aggregate, error)

	// ListAggregatesByUser retrieves a user's rollups of one period type,
	// optionally bounded by a period-start range, newest first.
	ListAggregatesByUser(ctx context.Context, userID string, periodType domain.PeriodType, filter domain.AggregateFilter, offset int, limit int) ([]domain.Aggregate, error)
}

// AggregateWriter defines write operations for aggregate data
type AggregateWriter interface {
	// UpsertAggregate inserts the rollup row or, when the (user, period type,
	// period start) key already exists, overwrites its total, currency and
	// updated timestamp. Single atomic statement.
	UpsertAggregate(ctx context.Context, aggregate domain.Aggregate) error
}

// AggregateRepositoryFacade combines all aggregate-related repository interfaces
type AggregateRepositoryFacade interface {
	AggregateReader
	AggregateWriter
}
