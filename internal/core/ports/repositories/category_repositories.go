package repositories

import (
	"context"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves one of the user's own categories by name.
	FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error)

	// ListCategoriesForUser retrieves the categories visible to a user: the
	// defaults plus the user's own.
	ListCategoriesForUser(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
