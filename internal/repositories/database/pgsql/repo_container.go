package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		AggregateRepo:  newPgxAggregateRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
		PreferenceRepo: newPgxPreferenceRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
