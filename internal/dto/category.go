package dto

import (
	"time"

	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string    `json:"categoryID"`
	UserID     string    `json:"userID,omitempty"`
	Name       string    `json:"name"`
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		UserID:     c.UserID,
		Name:       c.Name,
		IsDefault:  c.IsDefault,
		CreatedAt:  c.CreatedAt,
	}
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToListCategoriesResponse converts a slice of domain.Category to ListCategoriesResponse DTO
func ToListCategoriesResponse(cats []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToCategoryResponse(&cats[i])
	}
	return ListCategoriesResponse{Categories: res}
}
