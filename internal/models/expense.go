package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table.
// (user_id, request_id) carries a unique constraint for idempotent creates.
type Expense struct {
	ExpenseID    string          `db:"expense_id"`
	UserID       string          `db:"user_id"`
	CategoryID   string          `db:"category_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	ExpenseDate  time.Time       `db:"expense_date"`
	Note         string          `db:"note"`
	RequestID    string          `db:"request_id"`
	IsDeleted    bool            `db:"is_deleted"`
	Timestamps
}
