package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single monetary event recorded by a user.
// Amounts use a precise decimal type (github.com/shopspring/decimal) with two
// decimal places.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // FK -> User.userID (Not Null)
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`       // Positive value
	CurrencyCode string          `json:"currencyCode"` // 3-letter uppercase ISO-4217 code
	ExpenseDate  time.Time       `json:"expenseDate"`  // Calendar date (UTC midnight)
	Note         string          `json:"note,omitempty"`
	RequestID    string          `json:"requestID"` // Client-supplied idempotency token, unique per user
	IsDeleted    bool            `json:"isDeleted"` // Soft-delete flag; deleted rows are retained
	Timestamps
}

// ExpenseFilter holds the optional criteria for listing expenses.
type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
}
