package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
)

func newAnalyticsService() (*AnalyticsService, *MockExpenseRepository, *MockDailyExpenseRepository, *MockBookingRepository) {
	expenseRepo := new(MockExpenseRepository)
	dailyRepo := new(MockDailyExpenseRepository)
	bookingRepo := new(MockBookingRepository)
	return NewAnalyticsService(expenseRepo, dailyRepo, bookingRepo), expenseRepo, dailyRepo, bookingRepo
}

func TestGetFinanceAnalytics_MergesExpenseSourcesPerBranch(t *testing.T) {
	service, expenseRepo, dailyRepo, bookingRepo := newAnalyticsService()
	companyID := uuid.New()
	branchID := uuid.New()

	expenseRepo.On("SummarizeByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]finance.BranchExpenseSummary{
			{
				BranchID:      branchID,
				TotalExpenses: decimal.NewFromInt(45000),
				Breakdown: map[string]decimal.Decimal{
					"RENT":   decimal.NewFromInt(30000),
					"TRAVEL": decimal.NewFromInt(15000),
				},
			},
		}, nil)
	dailyRepo.On("SummarizeByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]finance.BranchExpenseSummary{
			{
				BranchID:      branchID,
				TotalExpenses: decimal.NewFromInt(5000),
				Breakdown:     map[string]decimal.Decimal{},
			},
		}, nil)
	bookingRepo.On("RevenueByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]booking.BranchRevenue{
			{BranchID: branchID, TotalRevenue: decimal.NewFromInt(120000), Count: 3},
		}, nil)

	result, err := service.GetFinanceAnalytics(context.Background(), companyID, FinanceAnalyticsRequest{})

	require.NoError(t, err)
	require.Len(t, result.Branches, 1)
	row := result.Branches[0]
	assert.Equal(t, branchID, row.BranchID)
	assert.True(t, row.TotalExpenses.Equal(decimal.NewFromInt(50000)))
	assert.True(t, row.ExpenseBreakdown["RENT"].Equal(decimal.NewFromInt(30000)))
	assert.True(t, row.ExpenseBreakdown["TRAVEL"].Equal(decimal.NewFromInt(15000)))
	assert.True(t, row.ExpenseBreakdown["DAILY"].Equal(decimal.NewFromInt(5000)))
	assert.True(t, row.BookingRevenue.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, int64(3), row.BookingCount)
	assert.True(t, row.Net.Equal(decimal.NewFromInt(70000)))
}

func TestGetFinanceAnalytics_BranchWithRevenueOnly(t *testing.T) {
	service, expenseRepo, dailyRepo, bookingRepo := newAnalyticsService()
	companyID := uuid.New()
	branchID := uuid.New()

	expenseRepo.On("SummarizeByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]finance.BranchExpenseSummary{}, nil)
	dailyRepo.On("SummarizeByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]finance.BranchExpenseSummary{}, nil)
	bookingRepo.On("RevenueByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]booking.BranchRevenue{
			{BranchID: branchID, TotalRevenue: decimal.NewFromInt(80000), Count: 2},
		}, nil)

	result, err := service.GetFinanceAnalytics(context.Background(), companyID, FinanceAnalyticsRequest{})

	require.NoError(t, err)
	require.Len(t, result.Branches, 1)
	row := result.Branches[0]
	assert.True(t, row.TotalExpenses.IsZero())
	assert.Empty(t, row.ExpenseBreakdown)
	assert.True(t, row.Net.Equal(decimal.NewFromInt(80000)))
}

func TestGetFinanceAnalytics_PassesDateWindow(t *testing.T) {
	service, expenseRepo, dailyRepo, bookingRepo := newAnalyticsService()
	companyID := uuid.New()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	expenseRepo.On("SummarizeByBranch", mock.Anything, companyID, &start, &end).
		Return([]finance.BranchExpenseSummary{}, nil)
	dailyRepo.On("SummarizeByBranch", mock.Anything, companyID, &start, &end).
		Return([]finance.BranchExpenseSummary{}, nil)
	bookingRepo.On("RevenueByBranch", mock.Anything, companyID, &start, &end).
		Return([]booking.BranchRevenue{}, nil)

	result, err := service.GetFinanceAnalytics(context.Background(), companyID, FinanceAnalyticsRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})

	require.NoError(t, err)
	require.NotNil(t, result.StartDate)
	require.NotNil(t, result.EndDate)
	assert.Equal(t, start, *result.StartDate)
	assert.Equal(t, end, *result.EndDate)
	expenseRepo.AssertExpectations(t)
}

func TestGetFinanceAnalytics_RejectsMalformedDate(t *testing.T) {
	service, _, _, _ := newAnalyticsService()

	_, err := service.GetFinanceAnalytics(context.Background(), uuid.New(), FinanceAnalyticsRequest{
		StartDate: "01/01/2026",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DATE", domainErr.Code)
}

func TestGetFinanceAnalytics_RejectsInvertedWindow(t *testing.T) {
	service, _, _, _ := newAnalyticsService()

	_, err := service.GetFinanceAnalytics(context.Background(), uuid.New(), FinanceAnalyticsRequest{
		StartDate: "2026-02-01",
		EndDate:   "2026-01-01",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DATE", domainErr.Code)
}

func TestGetFinanceAnalytics_SourceErrorPropagates(t *testing.T) {
	service, expenseRepo, _, _ := newAnalyticsService()
	companyID := uuid.New()

	expenseRepo.On("SummarizeByBranch", mock.Anything, companyID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(nil, assert.AnError)

	_, err := service.GetFinanceAnalytics(context.Background(), companyID, FinanceAnalyticsRequest{})

	assert.ErrorIs(t, err, assert.AnError)
}
