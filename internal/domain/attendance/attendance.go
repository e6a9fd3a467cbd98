package attendance

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// AttendanceStatus classifies one day of staff attendance
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
	StatusHalfDay AttendanceStatus = "HALF_DAY"
	StatusLeave   AttendanceStatus = "LEAVE"
	StatusLate    AttendanceStatus = "LATE"
)

// IsValid checks if the status is a valid AttendanceStatus
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusLate:
		return true
	}
	return false
}

// Record is one staff member's attendance for one calendar day
type Record struct {
	shared.CompanyAggregateRoot
	BranchID     uuid.UUID        `json:"branch_id"`
	StaffID      uuid.UUID        `json:"staff_id"`
	Date         time.Time        `json:"date"`
	Status       AttendanceStatus `json:"status"`
	CheckInTime  *time.Time       `json:"check_in_time"`
	CheckOutTime *time.Time       `json:"check_out_time"`
	Remark       string           `json:"remark"`
}

// NewRecord creates an attendance record for a day
func NewRecord(companyID, branchID, staffID uuid.UUID, date time.Time, status AttendanceStatus) (*Record, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Attendance date is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Attendance status is not valid")
	}

	return &Record{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		StaffID:              staffID,
		Date:                 date,
		Status:               status,
	}, nil
}

// CheckIn records the arrival time. Arrival after the expected time
// flips the status to late.
func (r *Record) CheckIn(at time.Time, expectedBy time.Time) error {
	if r.CheckInTime != nil {
		return shared.NewDomainError("ALREADY_EXISTS", "Check-in already recorded")
	}
	r.CheckInTime = &at
	if at.After(expectedBy) {
		r.Status = StatusLate
	}
	r.Touch()
	return nil
}

// CheckOut records the departure time
func (r *Record) CheckOut(at time.Time) error {
	if r.CheckInTime == nil {
		return shared.NewDomainError("INVALID_STATE", "Cannot check out before checking in")
	}
	if r.CheckOutTime != nil {
		return shared.NewDomainError("ALREADY_EXISTS", "Check-out already recorded")
	}
	if at.Before(*r.CheckInTime) {
		return shared.NewDomainError("INVALID_TIME", "Check-out cannot precede check-in")
	}
	r.CheckOutTime = &at
	r.Touch()
	return nil
}

// IsLate reports whether the record counts as a late arrival
func (r *Record) IsLate() bool {
	return r.Status == StatusLate
}
