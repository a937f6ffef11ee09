package services

import (
	"context"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategory retrieves a category visible to the user: a default or one
	// of the user's own.
	GetCategory(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the categories visible to a user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory creates a new user-owned category.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
