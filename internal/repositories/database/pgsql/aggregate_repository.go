package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/mapping"
)

type PgxAggregateRepository struct {
	db *pgxpool.Pool
}

func newPgxAggregateRepository(db *pgxpool.Pool) portsrepo.AggregateRepositoryFacade {
	return &PgxAggregateRepository{db: db}
}

var _ portsrepo.AggregateRepositoryFacade = (*PgxAggregateRepository)(nil)

const aggregateColumns = `aggregate_id, user_id, period_type, period_start, total_amount, currency_code, created_at, updated_at`

func scanAggregate(row pgx.Row) (models.Aggregate, error) {
	var m models.Aggregate
	err := row.Scan(
		&m.AggregateID,
		&m.UserID,
		&m.PeriodType,
		&m.PeriodStart,
		&m.TotalAmount,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// UpsertAggregate is a single atomic statement targeting the
// (user_id, period_type, period_start) unique constraint. Concurrent
// recomputes for the same period serialize on the row; last writer wins.
func (r *PgxAggregateRepository) UpsertAggregate(ctx context.Context, aggregate domain.Aggregate) error {
	m := mapping.ToModelAggregate(aggregate)
	query := `
        INSERT INTO aggregates (aggregate_id, user_id, period_type, period_start, total_amount, currency_code, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id, period_type, period_start) DO UPDATE SET
            total_amount = EXCLUDED.total_amount,
            currency_code = EXCLUDED.currency_code,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		m.AggregateID,
		m.UserID,
		m.PeriodType,
		m.PeriodStart,
		m.TotalAmount,
		m.CurrencyCode,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert aggregate for user %s: %w", m.UserID, err)
	}
	return nil
}

func (r *PgxAggregateRepository) FindAggregateByPeriod(ctx context.Context, userID string, periodType domain.PeriodType, periodStart time.Time) (*domain.Aggregate, error) {
	query := `
		SELECT ` + aggregateColumns + `
		FROM aggregates
		WHERE user_id = $1 AND period_type = $2 AND period_start = $3;
	`
	m, err := scanAggregate(r.db.QueryRow(ctx, query, userID, string(periodType), periodStart))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find aggregate for user %s: %w", userID, err)
	}
	d := mapping.ToDomainAggregate(m)
	return &d, nil
}

func (r *PgxAggregateRepository) ListAggregatesByUser(ctx context.Context, userID string, periodType domain.PeriodType, filter domain.AggregateFilter, offset int, limit int) ([]domain.Aggregate, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + aggregateColumns + `
        FROM aggregates
        WHERE user_id = $1 AND period_type = $2`
	args := []interface{}{userID, string(periodType)}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND period_start >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND period_start <= $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += `
        ORDER BY period_start DESC
        LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}
	defer rows.Close()

	modelAggs := []models.Aggregate{}
	for rows.Next() {
		m, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		modelAggs = append(modelAggs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", rows.Err())
	}

	return mapping.ToDomainAggregateSlice(modelAggs), nil
}
