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

	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
)

func TestLoanService_Create(t *testing.T) {
	repo := new(MockLoanRepository)
	service := NewLoanService(repo)
	companyID := uuid.New()
	staffID := uuid.New()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(l *finance.Loan) bool {
		return l.StaffID == staffID && l.Status == finance.LoanStatusActive
	})).Return(nil)

	result, err := service.Create(context.Background(), companyID, CreateLoanRequest{
		BranchID:  uuid.New(),
		StaffID:   staffID,
		Principal: decimal.NewFromInt(50000),
		Reason:    "Camera body upgrade",
	})

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", result.Status)
	assert.True(t, result.Outstanding.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.RepaidTotal.IsZero())
	repo.AssertExpectations(t)
}

func TestLoanService_Repay_ClosesWhenCovered(t *testing.T) {
	repo := new(MockLoanRepository)
	service := NewLoanService(repo)
	companyID := uuid.New()

	loan, err := finance.NewLoan(companyID, uuid.New(), uuid.New(),
		decimal.NewFromInt(10000), "Advance rent", time.Now())
	require.NoError(t, err)

	repo.On("FindByIDForCompany", mock.Anything, companyID, loan.ID).Return(loan, nil)
	repo.On("Save", mock.Anything, loan).Return(nil)

	result, err := service.Repay(context.Background(), companyID, loan.ID, RepayLoanRequest{
		Amount: decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", result.Status)
	assert.True(t, result.Outstanding.Equal(decimal.NewFromInt(6000)))

	result, err = service.Repay(context.Background(), companyID, loan.ID, RepayLoanRequest{
		Amount: decimal.NewFromInt(6000),
	})
	require.NoError(t, err)
	assert.Equal(t, "REPAID", result.Status)
	assert.True(t, result.Outstanding.IsZero())
	assert.NotNil(t, result.ClosedAt)
}

func TestLoanService_Repay_RejectsOverpayment(t *testing.T) {
	repo := new(MockLoanRepository)
	service := NewLoanService(repo)
	companyID := uuid.New()

	loan, err := finance.NewLoan(companyID, uuid.New(), uuid.New(),
		decimal.NewFromInt(5000), "", time.Now())
	require.NoError(t, err)

	repo.On("FindByIDForCompany", mock.Anything, companyID, loan.ID).Return(loan, nil)

	_, err = service.Repay(context.Background(), companyID, loan.ID, RepayLoanRequest{
		Amount: decimal.NewFromInt(5001),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLoanService_Waive(t *testing.T) {
	repo := new(MockLoanRepository)
	service := NewLoanService(repo)
	companyID := uuid.New()

	loan, err := finance.NewLoan(companyID, uuid.New(), uuid.New(),
		decimal.NewFromInt(8000), "Medical emergency", time.Now())
	require.NoError(t, err)

	repo.On("FindByIDForCompany", mock.Anything, companyID, loan.ID).Return(loan, nil)
	repo.On("Save", mock.Anything, loan).Return(nil)

	result, err := service.Waive(context.Background(), companyID, loan.ID)

	require.NoError(t, err)
	assert.Equal(t, "WAIVED", result.Status)
	assert.NotNil(t, result.ClosedAt)

	// Waived loans take no further repayments
	_, err = service.Repay(context.Background(), companyID, loan.ID, RepayLoanRequest{
		Amount: decimal.NewFromInt(100),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestAdvanceService_SettleIsOneShot(t *testing.T) {
	repo := new(MockAdvanceRepository)
	service := NewAdvanceService(repo)
	companyID := uuid.New()

	advance, err := finance.NewAdvance(companyID, uuid.New(), uuid.New(),
		decimal.NewFromInt(3000), "Festival advance", time.Now())
	require.NoError(t, err)

	repo.On("FindByIDForCompany", mock.Anything, companyID, advance.ID).Return(advance, nil)
	repo.On("Save", mock.Anything, advance).Return(nil)

	result, err := service.Settle(context.Background(), companyID, advance.ID)
	require.NoError(t, err)
	assert.Equal(t, "SETTLED", result.Status)
	assert.NotNil(t, result.SettledAt)

	_, err = service.Settle(context.Background(), companyID, advance.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
