package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
)

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

// MockTaskRepository is a mock implementation of task.Repository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]task.Task, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]task.Task, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskRepository) FindActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]task.Task, error) {
	args := m.Called(ctx, staffID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

// MockStaffRepository is a mock implementation of org.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*org.Staff, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*org.Staff, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*org.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]org.Staff, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]org.Staff, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]org.Staff), args.Error(1)
}

func (m *MockStaffRepository) CountActiveByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	args := m.Called(ctx, branchID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, staff *org.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTaskAssigned(ctx context.Context, t *task.Task, staff *org.Staff) error {
	args := m.Called(ctx, t, staff)
	return args.Error(0)
}

func (m *MockNotifier) NotifyBookingStaffed(ctx context.Context, b *booking.Booking, staffNames []string, equipment []string) error {
	args := m.Called(ctx, b, staffNames, equipment)
	return args.Error(0)
}

func (m *MockNotifier) NotifyTaskSkipped(ctx context.Context, t *task.Task, reason string) error {
	args := m.Called(ctx, t, reason)
	return args.Error(0)
}
