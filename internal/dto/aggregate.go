package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// AggregateResponse defines the data returned for one period rollup.
type AggregateResponse struct {
	AggregateID  string            `json:"aggregateID"`
	UserID       string            `json:"userID"`
	PeriodType   domain.PeriodType `json:"periodType"`
	PeriodStart  time.Time         `json:"periodStart"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	CurrencyCode string            `json:"currencyCode"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ToAggregateResponse converts a domain.Aggregate to AggregateResponse DTO
func ToAggregateResponse(a *domain.Aggregate) AggregateResponse {
	return AggregateResponse{
		AggregateID:  a.AggregateID,
		UserID:       a.UserID,
		PeriodType:   a.PeriodType,
		PeriodStart:  a.PeriodStart,
		TotalAmount:  a.TotalAmount,
		CurrencyCode: a.CurrencyCode,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ListAggregatesParams defines query parameters for listing rollups.
type ListAggregatesParams struct {
	PeriodType domain.PeriodType `form:"periodType" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	StartDate  *time.Time        `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time        `form:"endDate" time_format:"2006-01-02"`
	Limit      int               `form:"limit,default=20"`
	Offset     int               `form:"offset,default=0"`
}

// ListAggregatesResponse wraps the list of rollups.
type ListAggregatesResponse struct {
	Aggregates []AggregateResponse `json:"aggregates"`
}

// ToListAggregatesResponse converts a slice of domain.Aggregate to ListAggregatesResponse DTO
func ToListAggregatesResponse(aggs []domain.Aggregate) ListAggregatesResponse {
	res := make([]AggregateResponse, len(aggs))
	for i := range aggs {
		res[i] = ToAggregateResponse(&aggs[i])
	}
	return ListAggregatesResponse{Aggregates: res}
}
