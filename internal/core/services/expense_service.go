package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils/period"
)

var (
	ErrAmountInvalid    = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	ErrCurrencyInvalid  = fmt.Errorf("%w: unsupported currency code", apperrors.ErrValidation)
	ErrDateInFuture     = fmt.Errorf("%w: expense date cannot be in the future", apperrors.ErrValidation)
	ErrCategoryInvalid  = fmt.Errorf("%w: category does not exist or is not accessible", apperrors.ErrValidation)
	ErrRequestIDMissing = fmt.Errorf("%w: request ID is required", apperrors.ErrValidation)
	ErrTimezoneInvalid  = fmt.Errorf("%w: unknown timezone", apperrors.ErrValidation)
)

type ExpenseService struct {
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	categoryRepo portsrepo.CategoryReader
}

func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, categoryRepo portsrepo.CategoryReader) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// validateCategoryAccess checks the category exists and is visible to the
// user (a default or one of the user's own).
func (s *ExpenseService) validateCategoryAccess(ctx context.Context, userID string, categoryID string) error {
	cat, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrCategoryInvalid
		}
		return err
	}
	if !cat.IsDefault && cat.UserID != userID {
		return ErrCategoryInvalid
	}
	return nil
}

// CreateExpense records an expense at most once per (user, request token).
// The existence check runs first so a replay returns the original row without
// touching validation or the write path. Two concurrent first attempts race
// on the unique constraint: the loser surfaces ErrDuplicate rather than
// silently re-reading, so the caller can retry and get the replay path.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RequestID == "" {
		return nil, false, ErrRequestIDMissing
	}

	existing, err := s.expenseRepo.FindExpenseByRequestID(ctx, userID, req.RequestID)
	if err == nil {
		logger.Info("Idempotent replay, returning recorded expense",
			slog.String("request_id", req.RequestID),
			slog.String("expense_id", existing.ExpenseID))
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check idempotency token: %w", err)
	}

	if !req.Amount.IsPositive() {
		return nil, false, ErrAmountInvalid
	}
	currency := utils.NormalizeCurrency(req.CurrencyCode)
	if !utils.IsValidCurrency(currency) {
		return nil, false, ErrCurrencyInvalid
	}
	expenseDate := period.DateOnly(req.ExpenseDate)
	if expenseDate.After(period.DateOnly(time.Now())) {
		return nil, false, ErrDateInFuture
	}
	if err := s.validateCategoryAccess(ctx, userID, req.CategoryID); err != nil {
		return nil, false, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       userID,
		CategoryID:   req.CategoryID,
		Amount:       req.Amount,
		CurrencyCode: currency,
		ExpenseDate:  expenseDate,
		Note:         req.Note,
		RequestID:    req.RequestID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Lost idempotency race on expense create", slog.String("request_id", req.RequestID))
		} else {
			logger.Error("Failed to save expense", slog.String("error", err.Error()))
		}
		return nil, false, err
	}

	logger.Info("Expense recorded", slog.String("expense_id", expense.ExpenseID))
	return &expense, true, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, filter, offset, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list expenses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// UpdateExpense applies a partial update. Only provided fields change; each
// is validated against the same rules as creation.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrAmountInvalid
		}
		expense.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		currency := utils.NormalizeCurrency(*req.CurrencyCode)
		if !utils.IsValidCurrency(currency) {
			return nil, ErrCurrencyInvalid
		}
		expense.CurrencyCode = currency
	}
	if req.ExpenseDate != nil {
		newDate := period.DateOnly(*req.ExpenseDate)
		if newDate.After(period.DateOnly(time.Now())) {
			return nil, ErrDateInFuture
		}
		expense.ExpenseDate = newDate
	}
	if req.CategoryID != nil {
		if err := s.validateCategoryAccess(ctx, userID, *req.CategoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.Note != nil {
		expense.Note = *req.Note
	}

	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	logger.Info("Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense soft-deletes the expense and returns the deleted row so the
// caller can schedule recomputation of the periods that contained it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.expenseRepo.MarkExpenseDeleted(ctx, userID, expenseID, now); err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	expense.IsDeleted = true
	expense.UpdatedAt = now

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return expense, nil
}
