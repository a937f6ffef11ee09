package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/fintrack-labs/expense_tracker_app/internal/core/ports/services"
	"github.com/fintrack-labs/expense_tracker_app/internal/dto"
	"github.com/fintrack-labs/expense_tracker_app/internal/handlers"
	"github.com/fintrack-labs/expense_tracker_app/internal/middleware"
	"github.com/fintrack-labs/expense_tracker_app/internal/utils"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, bool, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Bool(1), args.Error(2)
}
func (m *MockExpenseService) GetExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, offset int, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Recording scheduler ---

type enqueuedJob struct {
	userID string
	date   time.Time
}

// recordingScheduler records recompute requests instead of running them.
type recordingScheduler struct {
	mu   sync.Mutex
	jobs []enqueuedJob
}

func (s *recordingScheduler) Enqueue(userID string, expenseDate time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, enqueuedJob{userID: userID, date: expenseDate})
}

func (s *recordingScheduler) recorded() []enqueuedJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]enqueuedJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

var _ portssvc.RecomputeScheduler = (*recordingScheduler)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	scheduler          *recordingScheduler
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "eta-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.RegisterCurrencyValidator()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockExpenseService = new(MockExpenseService)
	suite.scheduler = new(recordingScheduler)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterExpenseRoutes(v1, suite.mockExpenseService, suite.scheduler)
}

func (suite *ExpenseHandlerTestSuite) doJSON(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testExpense(userID string, date time.Time) *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       userID,
		CategoryID:   uuid.NewString(),
		Amount:       decimal.NewFromFloat(12.50),
		CurrencyCode: "USD",
		ExpenseDate:  date,
		Note:         "coffee",
		RequestID:    uuid.NewString(),
	}
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_FirstWrite_EnqueuesRecompute() {
	userID := uuid.NewString()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	expense := testExpense(userID, date)

	body := dto.CreateExpenseRequest{
		RequestID:    expense.RequestID,
		CategoryID:   expense.CategoryID,
		Amount:       expense.Amount,
		CurrencyCode: "USD",
		ExpenseDate:  date,
	}

	suite.mockExpenseService.On("CreateExpense",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.CreateExpenseRequest) bool {
			return r.RequestID == expense.RequestID
		}),
	).Return(expense, true, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", userID, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expense.ExpenseID, resp.ExpenseID)

	jobs := suite.scheduler.recorded()
	suite.Len(jobs, 1)
	suite.Equal(userID, jobs[0].userID)
	suite.True(jobs[0].date.Equal(date))

	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Replay_ReturnsOKWithoutRecompute() {
	userID := uuid.NewString()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	expense := testExpense(userID, date)

	body := dto.CreateExpenseRequest{
		RequestID:    expense.RequestID,
		CategoryID:   expense.CategoryID,
		Amount:       expense.Amount,
		CurrencyCode: "USD",
		ExpenseDate:  date,
	}

	suite.mockExpenseService.On("CreateExpense", mock.Anything, userID, mock.Anything).
		Return(expense, false, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", userID, body)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expense.ExpenseID, resp.ExpenseID)

	suite.Empty(suite.scheduler.recorded(), "replay must not schedule recomputation")
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ConcurrentDuplicate_ReturnsConflict() {
	userID := uuid.NewString()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	body := dto.CreateExpenseRequest{
		RequestID:    uuid.NewString(),
		CategoryID:   uuid.NewString(),
		Amount:       decimal.NewFromInt(5),
		CurrencyCode: "USD",
		ExpenseDate:  date,
	}

	suite.mockExpenseService.On("CreateExpense", mock.Anything, userID, mock.Anything).
		Return(nil, false, fmt.Errorf("expense already exists: %w", apperrors.ErrDuplicate)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", userID, body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Empty(suite.scheduler.recorded())
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_ValidationError_ReturnsBadRequest() {
	userID := uuid.NewString()

	body := dto.CreateExpenseRequest{
		RequestID:    uuid.NewString(),
		CategoryID:   uuid.NewString(),
		Amount:       decimal.NewFromInt(-10),
		CurrencyCode: "USD",
		ExpenseDate:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockExpenseService.On("CreateExpense", mock.Anything, userID, mock.Anything).
		Return(nil, false, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/expenses", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Empty(suite.scheduler.recorded())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_MissingToken_Unauthorized() {
	body := dto.CreateExpenseRequest{
		RequestID:    uuid.NewString(),
		CategoryID:   uuid.NewString(),
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "USD",
		ExpenseDate:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	buf, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense")
}

func (suite *ExpenseHandlerTestSuite) TestUpdateExpense_DateChanged_EnqueuesBothDates() {
	userID := uuid.NewString()
	oldDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	before := testExpense(userID, oldDate)
	after := *before
	after.ExpenseDate = newDate

	suite.mockExpenseService.On("GetExpense", mock.Anything, userID, before.ExpenseID).
		Return(before, nil).Once()
	suite.mockExpenseService.On("UpdateExpense", mock.Anything, userID, before.ExpenseID, mock.Anything).
		Return(&after, nil).Once()

	body := dto.UpdateExpenseRequest{ExpenseDate: &newDate}
	w := suite.doJSON(http.MethodPatch, "/api/v1/expenses/"+before.ExpenseID, userID, body)

	suite.Equal(http.StatusOK, w.Code)

	jobs := suite.scheduler.recorded()
	suite.Len(jobs, 2)
	suite.True(jobs[0].date.Equal(newDate))
	suite.True(jobs[1].date.Equal(oldDate))
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestUpdateExpense_DateUnchanged_EnqueuesOnce() {
	userID := uuid.NewString()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	before := testExpense(userID, date)
	after := *before
	newAmount := decimal.NewFromFloat(99.99)
	after.Amount = newAmount

	suite.mockExpenseService.On("GetExpense", mock.Anything, userID, before.ExpenseID).
		Return(before, nil).Once()
	suite.mockExpenseService.On("UpdateExpense", mock.Anything, userID, before.ExpenseID, mock.Anything).
		Return(&after, nil).Once()

	body := dto.UpdateExpenseRequest{Amount: &newAmount}
	w := suite.doJSON(http.MethodPatch, "/api/v1/expenses/"+before.ExpenseID, userID, body)

	suite.Equal(http.StatusOK, w.Code)

	jobs := suite.scheduler.recorded()
	suite.Len(jobs, 1)
	suite.True(jobs[0].date.Equal(date))
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestUpdateExpense_NotFound() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpense", mock.Anything, userID, expenseID).
		Return(nil, apperrors.ErrNotFound).Once()

	newNote := "groceries"
	body := dto.UpdateExpenseRequest{Note: &newNote}
	w := suite.doJSON(http.MethodPatch, "/api/v1/expenses/"+expenseID, userID, body)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Empty(suite.scheduler.recorded())
	suite.mockExpenseService.AssertNotCalled(suite.T(), "UpdateExpense")
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense_EnqueuesDeletedDate() {
	userID := uuid.NewString()
	date := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	expense := testExpense(userID, date)
	expense.IsDeleted = true

	suite.mockExpenseService.On("DeleteExpense", mock.Anything, userID, expense.ExpenseID).
		Return(expense, nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/expenses/"+expense.ExpenseID, userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)

	jobs := suite.scheduler.recorded()
	suite.Len(jobs, 1)
	suite.True(jobs[0].date.Equal(date))
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestDeleteExpense_NotFound() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("DeleteExpense", mock.Anything, userID, expenseID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/expenses/"+expenseID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Empty(suite.scheduler.recorded())
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_Success() {
	userID := uuid.NewString()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	expenses := []domain.Expense{*testExpense(userID, date), *testExpense(userID, date)}

	suite.mockExpenseService.On("ListExpenses",
		mock.Anything,
		userID,
		mock.Anything,
		0,
		10,
	).Return(expenses, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/expenses?limit=10", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListExpensesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Expenses, 2)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
