package mapping

import (
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		UserID:       d.UserID,
		CategoryID:   d.CategoryID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		ExpenseDate:  d.ExpenseDate,
		Note:         d.Note,
		RequestID:    d.RequestID,
		IsDeleted:    d.IsDeleted,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		UserID:       m.UserID,
		CategoryID:   m.CategoryID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		ExpenseDate:  m.ExpenseDate,
		Note:         m.Note,
		RequestID:    m.RequestID,
		IsDeleted:    m.IsDeleted,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
