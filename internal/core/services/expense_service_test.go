package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseByRequestID(ctx context.Context, userID string, requestID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) MarkExpenseDeleted(ctx context.Context, userID string, expenseID string, now time.Time) error {
	args := m.Called(ctx, userID, expenseID, now)
	return args.Error(0)
}

func (m *MockExpenseRepository) SumExpensesInPeriod(ctx context.Context, userID string, start time.Time, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockExpenseRepository
	mockCategory *MockCategoryReader
	service      portssvc.ExpenseSvcFacade

	userID     string
	categoryID string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockCategory = new(MockCategoryReader)
	suite.service = services.NewExpenseService(suite.mockRepo, suite.mockCategory)
	suite.userID = uuid.NewString()
	suite.categoryID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) defaultCategory() *domain.Category {
	return &domain.Category{
		CategoryID: suite.categoryID,
		Name:       "Groceries",
		IsDefault:  true,
	}
}

func (suite *ExpenseServiceTestSuite) validCreateRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		RequestID:    uuid.NewString(),
		CategoryID:   suite.categoryID,
		Amount:       decimal.NewFromFloat(12.50),
		CurrencyCode: "usd",
		ExpenseDate:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Note:         "lunch",
	}
}

// --- CreateExpense ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategory.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.defaultCategory(), nil).Once()
	suite.mockRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.UserID == suite.userID &&
			e.RequestID == req.RequestID &&
			e.CurrencyCode == "USD" &&
			e.Amount.Equal(req.Amount) &&
			e.ExpenseDate.Equal(req.ExpenseDate) &&
			!e.IsDeleted
	})).Return(nil).Once()

	expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.True(created)
	suite.Equal("USD", expense.CurrencyCode)
	suite.NotEmpty(expense.ExpenseID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCategory.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ReplayReturnsOriginal() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	recorded := &domain.Expense{
		ExpenseID: uuid.NewString(),
		UserID:    suite.userID,
		RequestID: req.RequestID,
		Amount:    decimal.NewFromInt(99),
	}

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(recorded, nil).Once()

	expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(recorded.ExpenseID, expense.ExpenseID)
	// the replay path never validates or writes
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
	suite.mockCategory.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ReplayOfDeletedExpense() {
	// A token whose expense was soft-deleted still replays to that row.
	ctx := context.Background()
	req := suite.validCreateRequest()
	deleted := &domain.Expense{
		ExpenseID: uuid.NewString(),
		UserID:    suite.userID,
		RequestID: req.RequestID,
		IsDeleted: true,
	}

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(deleted, nil).Once()

	expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(created)
	suite.True(expense.IsDeleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_MissingRequestID() {
	req := suite.validCreateRequest()
	req.RequestID = ""

	expense, created, err := suite.service.CreateExpense(context.Background(), suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(expense)
	suite.False(created)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		req := suite.validCreateRequest()
		req.Amount = amount

		suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()

		expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(expense)
		suite.False(created)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_UnsupportedCurrency() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.CurrencyCode = "XYZ"

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()

	expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(expense)
	suite.False(created)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_FutureDate() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.ExpenseDate = time.Now().AddDate(0, 0, 2)

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CategoryOwnedByAnotherUser() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	otherUsers := &domain.Category{
		CategoryID: suite.categoryID,
		UserID:     uuid.NewString(),
		Name:       "Private",
	}

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategory.On("FindCategoryByID", ctx, suite.categoryID).Return(otherUsers, nil).Once()

	_, _, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_RaceLoserSurfacesDuplicate() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockRepo.On("FindExpenseByRequestID", ctx, suite.userID, req.RequestID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCategory.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.defaultCategory(), nil).Once()
	suite.mockRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(apperrors.ErrDuplicate).Once()

	expense, created, err := suite.service.CreateExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(expense)
	suite.False(created)
}

// --- UpdateExpense ---

func (suite *ExpenseServiceTestSuite) existingExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       suite.userID,
		CategoryID:   suite.categoryID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		ExpenseDate:  time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC),
		Note:         "old note",
		RequestID:    uuid.NewString(),
	}
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_PartialUpdateKeepsOtherFields() {
	ctx := context.Background()
	existing := suite.existingExpense()
	newAmount := decimal.NewFromFloat(25.75)
	req := dto.UpdateExpenseRequest{Amount: &newAmount}

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, existing.ExpenseID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Amount.Equal(newAmount) && e.Note == "old note" && e.CategoryID == suite.categoryID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.userID, existing.ExpenseID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.Equal("old note", updated.Note)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NormalizesCurrency() {
	ctx := context.Background()
	existing := suite.existingExpense()
	lower := "eur"
	req := dto.UpdateExpenseRequest{CurrencyCode: &lower}

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, existing.ExpenseID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.CurrencyCode == "EUR"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, suite.userID, existing.ExpenseID, req)

	suite.Require().NoError(err)
	suite.Equal("EUR", updated.CurrencyCode)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_InvalidAmountRejected() {
	ctx := context.Background()
	existing := suite.existingExpense()
	bad := decimal.NewFromInt(-1)
	req := dto.UpdateExpenseRequest{Amount: &bad}

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, existing.ExpenseID).Return(existing, nil).Once()

	_, err := suite.service.UpdateExpense(ctx, suite.userID, existing.ExpenseID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotFound() {
	ctx := context.Background()
	req := dto.UpdateExpenseRequest{}

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateExpense(ctx, suite.userID, "missing", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteExpense ---

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_ReturnsDeletedRow() {
	ctx := context.Background()
	existing := suite.existingExpense()

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, existing.ExpenseID).Return(existing, nil).Once()
	suite.mockRepo.On("MarkExpenseDeleted", ctx, suite.userID, existing.ExpenseID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	deleted, err := suite.service.DeleteExpense(ctx, suite.userID, existing.ExpenseID)

	suite.Require().NoError(err)
	suite.Require().NotNil(deleted)
	suite.True(deleted.IsDeleted)
	suite.Equal(existing.ExpenseDate, deleted.ExpenseDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_AlreadyDeleted() {
	ctx := context.Background()

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, "gone").Return(nil, apperrors.ErrNotFound).Once()

	deleted, err := suite.service.DeleteExpense(ctx, suite.userID, "gone")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkExpenseDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- GetExpense / ListExpenses ---

func (suite *ExpenseServiceTestSuite) TestGetExpense_Found() {
	ctx := context.Background()
	existing := suite.existingExpense()

	suite.mockRepo.On("FindExpenseByID", ctx, suite.userID, existing.ExpenseID).Return(existing, nil).Once()

	got, err := suite.service.GetExpense(ctx, suite.userID, existing.ExpenseID)

	suite.Require().NoError(err)
	suite.Equal(existing.ExpenseID, got.ExpenseID)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmptyResultIsNotAnError() {
	ctx := context.Background()

	suite.mockRepo.On("ListExpenses", ctx, suite.userID, domain.ExpenseFilter{}, 0, 20).Return([]domain.Expense{}, nil).Once()

	list, err := suite.service.ListExpenses(ctx, suite.userID, domain.ExpenseFilter{}, 0, 20)

	suite.Require().NoError(err)
	assert.Empty(suite.T(), list)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
