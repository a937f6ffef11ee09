package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
// RequestID is the caller-supplied idempotency token: retries with the same
// token return the originally recorded expense instead of writing twice.
type CreateExpenseRequest struct {
	RequestID    string          `json:"requestID" binding:"required"`
	CategoryID   string          `json:"categoryID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required" time_format:"2006-01-02"`
	Note         string          `json:"note"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateExpenseRequest struct {
	CategoryID   *string          `json:"categoryID"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode"`
	ExpenseDate  *time.Time       `json:"expenseDate" time_format:"2006-01-02"`
	Note         *string          `json:"note"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	UserID       string          `json:"userID"`
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Note         string          `json:"note"`
	RequestID    string          `json:"requestID"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		UserID:       e.UserID,
		CategoryID:   e.CategoryID,
		Amount:       e.Amount,
		CurrencyCode: e.CurrencyCode,
		ExpenseDate:  e.ExpenseDate,
		Note:         e.Note,
		RequestID:    e.RequestID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02"`
	CategoryID string     `form:"categoryID"`
	Limit      int        `form:"limit,default=20"`
	Offset     int        `form:"offset,default=0"`
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToListExpensesResponse converts a slice of domain.Expense to ListExpensesResponse DTO
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: res}
}
