package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/period"
)

// ErrAggregationFailed wraps period recompute failures so callers can treat
// them uniformly.
var ErrAggregationFailed = fmt.Errorf("aggregation failed")

// AggregateEngine recomputes period rollups from the expense ledger. Each
// period is recomputed independently: a consistent single-statement sum over
// the ledger followed by a single-statement atomic upsert of the rollup row.
type AggregateEngine struct {
	expenseRepo   portsrepo.ExpenseSummer
	aggregateRepo portsrepo.AggregateWriter
	currency      portssvc.CurrencyResolverSvc
}

func NewAggregateEngine(expenseRepo portsrepo.ExpenseSummer, aggregateRepo portsrepo.AggregateWriter, currency portssvc.CurrencyResolverSvc) *AggregateEngine {
	return &AggregateEngine{
		expenseRepo:   expenseRepo,
		aggregateRepo: aggregateRepo,
		currency:      currency,
	}
}

var _ portssvc.Recomputer = (*AggregateEngine)(nil)

// RecomputeForExpenseDate recomputes the daily, weekly and monthly rollup
// containing expenseDate. A failed period aborts the remaining ones; the
// caller's retry re-derives every total from the ledger, so a partial pass
// never leaves a rollup it did touch incorrect.
func (e *AggregateEngine) RecomputeForExpenseDate(ctx context.Context, userID string, expenseDate time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	currency := e.currency.ResolveCurrency(ctx, userID)

	for _, w := range period.WindowsFor(expenseDate) {
		if err := e.recomputeWindow(ctx, userID, w, currency); err != nil {
			logger.Error("Failed to recompute rollup",
				slog.String("user_id", userID),
				slog.String("period_type", string(w.Type)),
				slog.Time("period_start", w.Start),
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: %s period starting %s: %v", ErrAggregationFailed, w.Type, w.Start.Format("2006-01-02"), err)
		}
	}
	return nil
}

func (e *AggregateEngine) recomputeWindow(ctx context.Context, userID string, w period.Window, currency string) error {
	total, err := e.expenseRepo.SumExpensesInPeriod(ctx, userID, w.Start, w.End)
	if err != nil {
		return err
	}

	now := time.Now()
	aggregate := domain.Aggregate{
		AggregateID:  uuid.NewString(),
		UserID:       userID,
		PeriodType:   w.Type,
		PeriodStart:  w.Start,
		TotalAmount:  total.Round(2),
		CurrencyCode: currency,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return e.aggregateRepo.UpsertAggregate(ctx, aggregate)
}
