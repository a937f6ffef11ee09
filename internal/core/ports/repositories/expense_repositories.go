package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a user's expense by ID, excluding soft-deleted rows.
	FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)

	// FindExpenseByRequestID retrieves the expense previously written for this
	// (user, request token) pair, if any. Soft-deleted rows are included so a
	// replayed token never creates a second row.
	FindExpenseByRequestID(ctx context.Context, userID string, requestID string) (*domain.Expense, error)

	// ListExpenses retrieves a filtered, paginated list of a user's expenses,
	// excluding soft-deleted rows.
	ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense. Returns apperrors.ErrDuplicate when
	// the (user, request token) uniqueness constraint rejects the insert.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates an existing expense's details.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// MarkExpenseDeleted marks an expense as deleted (soft delete).
	MarkExpenseDeleted(ctx context.Context, userID string, expenseID string, now time.Time) error
}

// ExpenseSummer defines aggregation support over expense rows
type ExpenseSummer interface {
	// SumExpensesInPeriod returns the sum of a user's non-deleted expense
	// amounts with expense_date in [start, end], zero when no rows match.
	// Runs as a single statement so the snapshot is consistent.
	SumExpensesInPeriod(ctx context.Context, userID string, start time.Time, end time.Time) (decimal.Decimal, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseSummer
}
