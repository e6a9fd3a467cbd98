package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]finance.BranchExpenseSummary, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BranchExpenseSummary), args.Error(1)
}

// MockDailyExpenseRepository is a mock implementation of finance.DailyExpenseRepository
type MockDailyExpenseRepository struct {
	mock.Mock
}

func (m *MockDailyExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.DailyExpense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.DailyExpense), args.Error(1)
}

func (m *MockDailyExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.DailyExpense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.DailyExpense), args.Error(1)
}

func (m *MockDailyExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.DailyExpense, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.DailyExpense), args.Error(1)
}

func (m *MockDailyExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDailyExpenseRepository) Save(ctx context.Context, expense *finance.DailyExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockDailyExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDailyExpenseRepository) SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]finance.BranchExpenseSummary, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BranchExpenseSummary), args.Error(1)
}

// MockFixedExpenseRepository is a mock implementation of finance.FixedExpenseRepository
type MockFixedExpenseRepository struct {
	mock.Mock
}

func (m *MockFixedExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FixedExpense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpense), args.Error(1)
}

func (m *MockFixedExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.FixedExpense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FixedExpense), args.Error(1)
}

func (m *MockFixedExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.FixedExpense, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.FixedExpense), args.Error(1)
}

func (m *MockFixedExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFixedExpenseRepository) Save(ctx context.Context, expense *finance.FixedExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockFixedExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLoanRepository is a mock implementation of finance.LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Loan, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Loan, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindActiveByStaff(ctx context.Context, staffID uuid.UUID) ([]finance.Loan, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) Save(ctx context.Context, loan *finance.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdvanceRepository is a mock implementation of finance.AdvanceRepository
type MockAdvanceRepository struct {
	mock.Mock
}

func (m *MockAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Advance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Advance, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Advance, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) FindPendingByStaff(ctx context.Context, staffID uuid.UUID) ([]finance.Advance, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdvanceRepository) Save(ctx context.Context, advance *finance.Advance) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) SumCompletedRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBookingRepository) RevenueByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]booking.BranchRevenue, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.BranchRevenue), args.Error(1)
}

func (m *MockBookingRepository) FindByFunctionDate(ctx context.Context, date time.Time) ([]booking.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}
