package org

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/org"
)

func newStatsService() (*BranchStatsService, *MockBranchRepository, *MockStaffRepository, *MockInvoiceRepository, *MockQuotationRepository, *MockBookingRepository) {
	branchRepo := new(MockBranchRepository)
	staffRepo := new(MockStaffRepository)
	invoiceRepo := new(MockInvoiceRepository)
	quotationRepo := new(MockQuotationRepository)
	bookingRepo := new(MockBookingRepository)
	svc := NewBranchStatsService(branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo, zap.NewNop())
	return svc, branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo
}

func TestComputeRevenueBreakdown_TotalIsSumOfComponents(t *testing.T) {
	svc, branchRepo, _, invoiceRepo, quotationRepo, bookingRepo := newStatsService()
	branchID := uuid.New()

	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, branchID).
		Return(decimal.NewFromInt(150000), nil)
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, branchID).
		Return(decimal.NewFromInt(275000), nil)
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, branchID).
		Return(decimal.NewFromInt(50000), nil)
	branchRepo.On("UpdateRevenue", mock.Anything, branchID, mock.MatchedBy(func(b org.RevenueBreakdown) bool {
		return b.IsConsistent()
	})).Return(nil)

	breakdown, err := svc.ComputeRevenueBreakdown(context.Background(), branchID)

	require.NoError(t, err)
	assert.True(t, breakdown.Total.Equal(decimal.NewFromInt(475000)))
	assert.True(t, breakdown.Invoices.Equal(decimal.NewFromInt(150000)))
	assert.True(t, breakdown.Bookings.Equal(decimal.NewFromInt(275000)))
	assert.True(t, breakdown.Quotations.Equal(decimal.NewFromInt(50000)))
	branchRepo.AssertExpectations(t)
}

func TestComputeRevenueBreakdown_AllSourcesEmpty(t *testing.T) {
	svc, branchRepo, _, invoiceRepo, quotationRepo, bookingRepo := newStatsService()
	branchID := uuid.New()

	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	branchRepo.On("UpdateRevenue", mock.Anything, branchID, mock.Anything).Return(nil)

	breakdown, err := svc.ComputeRevenueBreakdown(context.Background(), branchID)

	require.NoError(t, err)
	assert.True(t, breakdown.Total.IsZero())
}

func TestComputeRevenueBreakdown_SourceErrorPropagates(t *testing.T) {
	svc, branchRepo, _, invoiceRepo, _, _ := newStatsService()
	branchID := uuid.New()

	wantErr := errors.New("connection reset")
	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, branchID).
		Return(decimal.Zero, wantErr)

	_, err := svc.ComputeRevenueBreakdown(context.Background(), branchID)

	assert.ErrorIs(t, err, wantErr)
	branchRepo.AssertNotCalled(t, "UpdateRevenue", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateEmployeeCount(t *testing.T) {
	svc, branchRepo, staffRepo, _, _, _ := newStatsService()
	branchID := uuid.New()

	staffRepo.On("CountActiveByBranch", mock.Anything, branchID).Return(int64(7), nil)
	branchRepo.On("UpdateEmployeeCount", mock.Anything, branchID, 7).Return(nil)

	count, err := svc.UpdateEmployeeCount(context.Background(), branchID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	branchRepo.AssertExpectations(t)
}

func TestUpdateBranchStats_RunsBothComputations(t *testing.T) {
	svc, branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo := newStatsService()
	branchID := uuid.New()

	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, branchID).Return(decimal.NewFromInt(1000), nil)
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, branchID).Return(decimal.NewFromInt(2000), nil)
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, branchID).Return(decimal.NewFromInt(500), nil)
	branchRepo.On("UpdateRevenue", mock.Anything, branchID, mock.Anything).Return(nil)
	staffRepo.On("CountActiveByBranch", mock.Anything, branchID).Return(int64(12), nil)
	branchRepo.On("UpdateEmployeeCount", mock.Anything, branchID, 12).Return(nil)

	result, err := svc.UpdateBranchStats(context.Background(), branchID)

	require.NoError(t, err)
	assert.Equal(t, branchID, result.BranchID)
	assert.True(t, result.Revenue.Total.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, 12, result.EmployeeCount)
}

func TestUpdateBranchStats_CountErrorPropagates(t *testing.T) {
	svc, branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo := newStatsService()
	branchID := uuid.New()

	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, branchID).Return(decimal.Zero, nil)
	branchRepo.On("UpdateRevenue", mock.Anything, branchID, mock.Anything).Return(nil)

	wantErr := errors.New("count query failed")
	staffRepo.On("CountActiveByBranch", mock.Anything, branchID).Return(int64(0), wantErr)

	_, err := svc.UpdateBranchStats(context.Background(), branchID)

	assert.ErrorIs(t, err, wantErr)
}

func TestRefreshAll_SkipsFailingBranch(t *testing.T) {
	svc, branchRepo, staffRepo, invoiceRepo, quotationRepo, bookingRepo := newStatsService()

	companyID := uuid.New()
	good, err := org.NewBranch(companyID, "Indore Main", "IND01", "MG Road")
	require.NoError(t, err)
	bad, err := org.NewBranch(companyID, "Bhopal", "BPL01", "New Market")
	require.NoError(t, err)

	branchRepo.On("FindAll", mock.Anything, mock.Anything).Return([]org.Branch{*bad, *good}, nil)

	// First branch fails its invoice sum, second succeeds
	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, bad.ID).Return(decimal.Zero, errors.New("timeout"))
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, bad.ID).Return(decimal.Zero, nil).Maybe()
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, bad.ID).Return(decimal.Zero, nil).Maybe()
	staffRepo.On("CountActiveByBranch", mock.Anything, bad.ID).Return(int64(0), nil)
	branchRepo.On("UpdateEmployeeCount", mock.Anything, bad.ID, 0).Return(nil)

	invoiceRepo.On("SumPaidRevenueByBranch", mock.Anything, good.ID).Return(decimal.NewFromInt(100), nil)
	bookingRepo.On("SumCompletedRevenueByBranch", mock.Anything, good.ID).Return(decimal.Zero, nil)
	quotationRepo.On("SumAcceptedRevenueByBranch", mock.Anything, good.ID).Return(decimal.Zero, nil)
	branchRepo.On("UpdateRevenue", mock.Anything, good.ID, mock.Anything).Return(nil)
	staffRepo.On("CountActiveByBranch", mock.Anything, good.ID).Return(int64(3), nil)
	branchRepo.On("UpdateEmployeeCount", mock.Anything, good.ID, 3).Return(nil)

	err = svc.RefreshAll(context.Background())

	require.NoError(t, err)
	branchRepo.AssertCalled(t, "UpdateRevenue", mock.Anything, good.ID, mock.Anything)
}
