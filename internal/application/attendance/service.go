package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/attendance"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

// Arrival after this wall-clock time counts as late
const expectedCheckInHour = 10

// Service handles daily staff attendance
type Service struct {
	repo      attendance.Repository
	staffRepo org.StaffRepository
	now       func() time.Time
}

// NewService creates a new attendance Service
func NewService(repo attendance.Repository, staffRepo org.StaffRepository) *Service {
	return &Service{
		repo:      repo,
		staffRepo: staffRepo,
		now:       time.Now,
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CheckIn records the staff member's arrival for today, creating the
// day's record on first contact. Arrival after the expected start
// flips the record to late.
func (s *Service) CheckIn(ctx context.Context, companyID uuid.UUID, req CheckInRequest) (*RecordResponse, error) {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, req.StaffID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := dayOf(now)
	record, err := s.repo.FindByStaffAndDate(ctx, staff.ID, today)
	if errors.Is(err, shared.ErrNotFound) {
		record, err = attendance.NewRecord(companyID, staff.BranchID, staff.ID, today, attendance.StatusPresent)
	}
	if err != nil {
		return nil, err
	}

	expectedBy := time.Date(today.Year(), today.Month(), today.Day(), expectedCheckInHour, 0, 0, 0, today.Location())
	if err := record.CheckIn(now, expectedBy); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToRecordResponse(record), nil
}

// CheckOut records the staff member's departure for today
func (s *Service) CheckOut(ctx context.Context, companyID uuid.UUID, req CheckOutRequest) (*RecordResponse, error) {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, req.StaffID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record, err := s.repo.FindByStaffAndDate(ctx, staff.ID, dayOf(now))
	if err != nil {
		return nil, err
	}
	if err := record.CheckOut(now); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToRecordResponse(record), nil
}

// Mark records an absence, half day or leave for a given date
func (s *Service) Mark(ctx context.Context, companyID uuid.UUID, req MarkRequest) (*RecordResponse, error) {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, req.StaffID)
	if err != nil {
		return nil, err
	}

	day := dayOf(req.Date)
	record, err := s.repo.FindByStaffAndDate(ctx, staff.ID, day)
	if errors.Is(err, shared.ErrNotFound) {
		record, err = attendance.NewRecord(companyID, staff.BranchID, staff.ID, day, attendance.AttendanceStatus(req.Status))
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else {
		status := attendance.AttendanceStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Attendance status is not valid")
		}
		record.Status = status
		record.Touch()
	}
	record.Remark = req.Remark

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToRecordResponse(record), nil
}

// List retrieves attendance records with filtering and pagination
func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter RecordListFilter) ([]RecordResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.StaffID != "" {
		domainFilter.Filters["staff_id"] = filter.StaffID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	records, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToRecordResponses(records), total, nil
}
