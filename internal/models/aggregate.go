package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate represents a row of the aggregates table.
// (user_id, period_type, period_start) carries a unique constraint; the
// upsert path targets it.
type Aggregate struct {
	AggregateID  string          `db:"aggregate_id"`
	UserID       string          `db:"user_id"`
	PeriodType   string          `db:"period_type"`
	PeriodStart  time.Time       `db:"period_start"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	CurrencyCode string          `db:"currency_code"`
	Timestamps
}
