package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/attendance"
)

// AttendanceRecordModel is the persistence model for attendance records.
type AttendanceRecordModel struct {
	CompanyAggregateModel
	BranchID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	StaffID      uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_staff_date,priority:1"`
	Date         time.Time                   `gorm:"not null;uniqueIndex:idx_attendance_staff_date,priority:2"`
	Status       attendance.AttendanceStatus `gorm:"type:varchar(20);not null;index"`
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Remark       string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts the persistence model to a domain attendance Record.
func (m *AttendanceRecordModel) ToDomain() *attendance.Record {
	r := &attendance.Record{
		BranchID:     m.BranchID,
		StaffID:      m.StaffID,
		Date:         m.Date,
		Status:       m.Status,
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		Remark:       m.Remark,
	}
	m.PopulateCompanyAggregateRoot(&r.CompanyAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain attendance Record.
func (m *AttendanceRecordModel) FromDomain(r *attendance.Record) {
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	m.BranchID = r.BranchID
	m.StaffID = r.StaffID
	m.Date = r.Date
	m.Status = r.Status
	m.CheckInTime = r.CheckInTime
	m.CheckOutTime = r.CheckOutTime
	m.Remark = r.Remark
}

// AttendanceRecordModelFromDomain creates a new persistence model from a domain Record.
func AttendanceRecordModelFromDomain(r *attendance.Record) *AttendanceRecordModel {
	m := &AttendanceRecordModel{}
	m.FromDomain(r)
	return m
}
