package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/mapping"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, category_id, amount, currency_code, expense_date, note, request_id, is_deleted, created_at, updated_at`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.CategoryID,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExpenseDate,
		&m.Note,
		&m.RequestID,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, user_id, category_id, amount, currency_code, expense_date, note, request_id, is_deleted, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID,
		m.UserID,
		m.CategoryID,
		m.Amount,
		m.CurrencyCode,
		m.ExpenseDate,
		m.Note,
		m.RequestID,
		m.IsDeleted,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			// uq_expense_idempotency: another write already holds this
			// (user, request token) pair.
			return fmt.Errorf("expense already exists for request %s: %w", m.RequestID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND expense_id = $2 AND is_deleted = FALSE;
	`
	m, err := scanExpense(r.db.QueryRow(ctx, query, userID, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// FindExpenseByRequestID deliberately does not filter on is_deleted: a replay
// of a token whose expense was later deleted must still resolve to that row.
func (r *PgxExpenseRepository) FindExpenseByRequestID(ctx context.Context, userID string, requestID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND request_id = $2;
	`
	m, err := scanExpense(r.db.QueryRow(ctx, query, userID, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by request ID %s: %w", requestID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE user_id = $1 AND is_deleted = FALSE`
	args := []interface{}{userID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += ` AND category_id = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += `
        ORDER BY expense_date DESC, created_at DESC
        LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET category_id = $1, amount = $2, currency_code = $3, expense_date = $4, note = $5, updated_at = $6
        WHERE user_id = $7 AND expense_id = $8 AND is_deleted = FALSE;
    `
	tag, err := r.db.Exec(ctx, query,
		m.CategoryID,
		m.Amount,
		m.CurrencyCode,
		m.ExpenseDate,
		m.Note,
		m.UpdatedAt,
		m.UserID,
		m.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, userID string, expenseID string, now time.Time) error {
	query := `
        UPDATE expenses
        SET is_deleted = TRUE, updated_at = $1
        WHERE user_id = $2 AND expense_id = $3 AND is_deleted = FALSE;
    `
	tag, err := r.db.Exec(ctx, query, now, userID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s deleted: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumExpensesInPeriod runs as one statement so the sum reflects a single
// consistent snapshot of the expense table.
func (r *PgxExpenseRepository) SumExpensesInPeriod(ctx context.Context, userID string, start time.Time, end time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE user_id = $1 AND is_deleted = FALSE AND expense_date >= $2 AND expense_date <= $3;
    `
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for user %s: %w", userID, err)
	}
	return total, nil
}
