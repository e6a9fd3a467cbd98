package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lensflow/backend/internal/domain/attendance"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Record), args.Error(1)
}

func (m *MockAttendanceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*attendance.Record, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Record), args.Error(1)
}

func (m *MockAttendanceRepository) FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) (*attendance.Record, error) {
	args := m.Called(ctx, staffID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Record), args.Error(1)
}

func (m *MockAttendanceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]attendance.Record, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.Record), args.Error(1)
}

func (m *MockAttendanceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttendanceRepository) Save(ctx context.Context, record *attendance.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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
