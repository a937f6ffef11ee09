package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
)

type CategoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		IsDefault:  false,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Same-name retry: hand back the existing row instead of failing.
			existing, findErr := s.categoryRepo.FindCategoryByName(ctx, userID, req.Name)
			if findErr == nil {
				return existing, nil
			}
			return nil, err
		}
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// GetCategory returns the category when it is visible to the user: a default
// or one of the user's own. Another user's category reads as not found rather
// than forbidden so existence is not leaked.
func (s *CategoryService) GetCategory(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	cat, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !cat.IsDefault && cat.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return cat, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	cats, err := s.categoryRepo.ListCategoriesForUser(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, err
	}
	if cats == nil {
		return []domain.Category{}, nil
	}
	return cats, nil
}
