package mapping

import (
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
)

// ToModelAggregate converts a domain Aggregate to a model Aggregate
func ToModelAggregate(d domain.Aggregate) models.Aggregate {
	return models.Aggregate{
		AggregateID:  d.AggregateID,
		UserID:       d.UserID,
		PeriodType:   string(d.PeriodType),
		PeriodStart:  d.PeriodStart,
		TotalAmount:  d.TotalAmount,
		CurrencyCode: d.CurrencyCode,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainAggregate converts a model Aggregate to a domain Aggregate
func ToDomainAggregate(m models.Aggregate) domain.Aggregate {
	return domain.Aggregate{
		AggregateID:  m.AggregateID,
		UserID:       m.UserID,
		PeriodType:   domain.PeriodType(m.PeriodType),
		PeriodStart:  m.PeriodStart,
		TotalAmount:  m.TotalAmount,
		CurrencyCode: m.CurrencyCode,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainAggregateSlice converts a slice of model Aggregates to a slice of domain Aggregates
func ToDomainAggregateSlice(ms []models.Aggregate) []domain.Aggregate {
	ds := make([]domain.Aggregate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAggregate(m)
	}
	return ds
}
