package services

import (
	"context"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpense retrieves a user's expense by ID.
	GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a filtered, paginated list of a user's expenses.
	ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records a new expense at most once per (user, request
	// token). Replays return the originally recorded expense with
	// created=false; only a first-time write returns created=true.
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (expense *domain.Expense, created bool, err error)

	// UpdateExpense applies a partial update to a user's expense and returns
	// the updated row.
	UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense soft-deletes a user's expense and returns the deleted row
	// so callers can schedule recomputation for its date.
	DeleteExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
