package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Expense    ExpenseSvcFacade
	Aggregate  AggregateSvcFacade
	Category   CategorySvcFacade
	Preference PreferenceSvcFacade
	User       UserSvcFacade
	Token      TokenSvcFacade

	// Recompute accepts asynchronous rollup work scheduled by the handlers.
	Recompute RecomputeScheduler
}
