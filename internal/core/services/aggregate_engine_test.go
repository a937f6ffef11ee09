package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrack-labs/expense_tracker_app/internal/apperrors"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/domain"
	"github.com/fintrack-labs/expense_tracker_app/internal/core/services"
)

// --- Mock AggregateRepository ---
type MockAggregateRepository struct {
	mock.Mock
}

func (m *MockAggregateRepository) UpsertAggregate(ctx context.Context, aggregate domain.Aggregate) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAggregateRepository) FindAggregateByPeriod(ctx context.Context, userID string, periodType domain.PeriodType, periodStart time.Time) (*domain.Aggregate, error) {
	args := m.Called(ctx, userID, periodType, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aggregate), args.Error(1)
}

func (m *MockAggregateRepository) ListAggregatesByUser(ctx context.Context, userID string, periodType domain.PeriodType, filter domain.AggregateFilter, offset int, limit int) ([]domain.Aggregate, error) {
	args := m.Called(ctx, userID, periodType, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Aggregate), args.Error(1)
}

// --- Mock PreferenceReader ---
type MockPreferenceReader struct {
	mock.Mock
}

func (m *MockPreferenceReader) FindPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

// --- Test Suite ---
type AggregateEngineTestSuite struct {
	suite.Suite
	mockExpenses *MockExpenseRepository
	mockAggs     *MockAggregateRepository
	mockPrefs    *MockPreferenceReader
	engine       *services.AggregateEngine

	userID string
}

func (suite *AggregateEngineTestSuite) SetupTest() {
	suite.mockExpenses = new(MockExpenseRepository)
	suite.mockAggs = new(MockAggregateRepository)
	suite.mockPrefs = new(MockPreferenceReader)
	resolver := services.NewCurrencyResolver(suite.mockPrefs)
	suite.engine = services.NewAggregateEngine(suite.mockExpenses, suite.mockAggs, resolver)
	suite.userID = uuid.NewString()
}

func (suite *AggregateEngineTestSuite) TestRecompute_UpsertsAllThreePeriods() {
	ctx := context.Background()
	// 2025-01-01 is a Wednesday: weekly window spans the year boundary.
	expenseDate := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPrefs.On("FindPreferenceByUserID", ctx, suite.userID).Return(&domain.UserPreference{CurrencyCode: "EUR"}, nil).Once()

	dailyStart := expenseDate
	weeklyStart := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	weeklyEnd := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	monthlyEnd := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, dailyStart, dailyStart).Return(decimal.NewFromFloat(10.005), nil).Once()
	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, weeklyStart, weeklyEnd).Return(decimal.NewFromInt(40), nil).Once()
	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, dailyStart, monthlyEnd).Return(decimal.NewFromInt(120), nil).Once()

	seen := map[domain.PeriodType]domain.Aggregate{}
	suite.mockAggs.On("UpsertAggregate", ctx, mock.AnythingOfType("domain.Aggregate")).Run(func(args mock.Arguments) {
		agg := args.Get(1).(domain.Aggregate)
		seen[agg.PeriodType] = agg
	}).Return(nil).Times(3)

	err := suite.engine.RecomputeForExpenseDate(ctx, suite.userID, expenseDate)

	suite.Require().NoError(err)
	suite.Require().Len(seen, 3)

	daily := seen[domain.PeriodDaily]
	suite.Equal(dailyStart, daily.PeriodStart)
	suite.True(daily.TotalAmount.Equal(decimal.NewFromFloat(10.01)), "total should be rounded to 2 places, got %s", daily.TotalAmount)
	suite.Equal("EUR", daily.CurrencyCode)

	weekly := seen[domain.PeriodWeekly]
	suite.Equal(weeklyStart, weekly.PeriodStart)
	suite.True(weekly.TotalAmount.Equal(decimal.NewFromInt(40)))

	monthly := seen[domain.PeriodMonthly]
	suite.Equal(dailyStart, monthly.PeriodStart)
	suite.True(monthly.TotalAmount.Equal(decimal.NewFromInt(120)))

	suite.mockExpenses.AssertExpectations(suite.T())
	suite.mockAggs.AssertExpectations(suite.T())
}

func (suite *AggregateEngineTestSuite) TestRecompute_ZeroWhenNoExpenses() {
	ctx := context.Background()
	expenseDate := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC) // a Monday

	suite.mockPrefs.On("FindPreferenceByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.Zero, nil).Times(3)

	suite.mockAggs.On("UpsertAggregate", ctx, mock.MatchedBy(func(a domain.Aggregate) bool {
		return a.TotalAmount.IsZero() && a.CurrencyCode == services.DefaultCurrency
	})).Return(nil).Times(3)

	err := suite.engine.RecomputeForExpenseDate(ctx, suite.userID, expenseDate)

	suite.Require().NoError(err)
	suite.mockAggs.AssertExpectations(suite.T())
}

func (suite *AggregateEngineTestSuite) TestRecompute_SumFailureAbortsAndWraps() {
	ctx := context.Background()
	expenseDate := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	suite.mockPrefs.On("FindPreferenceByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	// first (daily) window fails
	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, expenseDate, expenseDate).Return(decimal.Zero, context.DeadlineExceeded).Once()

	err := suite.engine.RecomputeForExpenseDate(ctx, suite.userID, expenseDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAggregationFailed)
	suite.mockAggs.AssertNotCalled(suite.T(), "UpsertAggregate", mock.Anything, mock.Anything)
}

func (suite *AggregateEngineTestSuite) TestRecompute_PreferenceFailureFallsBackToDefaultCurrency() {
	ctx := context.Background()
	expenseDate := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	suite.mockPrefs.On("FindPreferenceByUserID", ctx, suite.userID).Return(nil, context.DeadlineExceeded).Once()
	suite.mockExpenses.On("SumExpensesInPeriod", ctx, suite.userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(5), nil).Times(3)
	suite.mockAggs.On("UpsertAggregate", ctx, mock.MatchedBy(func(a domain.Aggregate) bool {
		return a.CurrencyCode == services.DefaultCurrency
	})).Return(nil).Times(3)

	err := suite.engine.RecomputeForExpenseDate(ctx, suite.userID, expenseDate)

	suite.Require().NoError(err)
	suite.mockAggs.AssertExpectations(suite.T())
}

func TestAggregateEngineTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateEngineTestSuite))
}
