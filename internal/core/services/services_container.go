package services

import (
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The Recompute scheduler is wired separately by the caller,
// since the worker owning it also consumes the aggregate service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Preference = NewPreferenceService(repos.PreferenceRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.CategoryRepo)

	currencyResolver := NewCurrencyResolver(repos.PreferenceRepo)
	engine := NewAggregateEngine(repos.ExpenseRepo, repos.AggregateRepo, currencyResolver)
	container.Aggregate = NewAggregateService(engine, repos.AggregateRepo, repos.UserRepo)

	container.Token = NewTokenService(cfg, repos.UserRepo)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.ExpenseSvcFacade    = (*ExpenseService)(nil)
	_ portssvc.AggregateSvcFacade  = (*AggregateService)(nil)
	_ portssvc.CategorySvcFacade   = (*CategoryService)(nil)
	_ portssvc.PreferenceSvcFacade = (*PreferenceService)(nil)
	_ portssvc.UserSvcFacade       = (*UserService)(nil)
)
