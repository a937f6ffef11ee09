package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the granularity of an aggregate rollup.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly" // Monday-start weeks
	PeriodMonthly PeriodType = "monthly"
)

// IsValid reports whether p is one of the three recognized period types.
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Aggregate is a derived rollup of a user's expenses for one period. Exactly
// one row exists per (user, period type, period start); recomputation
// overwrites the row in place and never appends. Aggregates are disposable
// state, fully reconstructable from the expense table.
type Aggregate struct {
	AggregateID  string          `json:"aggregateID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`
	PeriodType   PeriodType      `json:"periodType"`
	PeriodStart  time.Time       `json:"periodStart"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`  // Sum of constituent expenses, 0.00 when none
	CurrencyCode string          `json:"currencyCode"` // Resolved from user preference at compute time
	Timestamps
}

// AggregateFilter holds the optional date bounds for listing aggregates.
type AggregateFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}
