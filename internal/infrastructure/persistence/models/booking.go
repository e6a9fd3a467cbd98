package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/booking"
)

// BookingModel is the persistence model for the Booking aggregate root.
// The three total columns mirror the document shapes written by older
// product versions; revenue queries coalesce across them in order.
// The primary function's date and times are denormalized into columns
// so the reminder and availability queries stay on indexes.
type BookingModel struct {
	CompanyAggregateModel
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	// LegacyBranchID is the branch reference written under the
	// pre-migration schema. Revenue matching accepts either column.
	LegacyBranchID      *uuid.UUID           `gorm:"type:uuid;column:booking_branch_id;index"`
	ClientID            uuid.UUID            `gorm:"type:uuid;not null;index"`
	BookingNumber       string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_booking_company_number,priority:2"`
	FunctionType        booking.FunctionType `gorm:"type:varchar(30);not null"`
	FunctionDate        time.Time            `gorm:"not null;index"`
	FunctionStartTime   string               `gorm:"type:varchar(5)"`
	FunctionEndTime     string               `gorm:"type:varchar(5)"`
	VenueJSON           string               `gorm:"column:venue;type:jsonb;default:'{}'"`
	FunctionListJSON    string               `gorm:"column:function_details_list;type:jsonb;default:'[]'"`
	ServicesJSON        string               `gorm:"column:services;type:jsonb;default:'[]'"`
	Subtotal            decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount         *decimal.Decimal     `gorm:"type:decimal(18,4)"`
	FinalAmount         *decimal.Decimal     `gorm:"type:decimal(18,4)"`
	LegacyTotal         *decimal.Decimal     `gorm:"column:total;type:decimal(18,4)"`
	AdvanceAmount       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	StaffAssignmentJSON string               `gorm:"column:staff_assignment;type:jsonb;default:'[]'"`
	EquipmentJSON       string               `gorm:"column:equipment_assignment;type:jsonb;default:'[]'"`
	Status              booking.BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ConfirmedAt         *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancelReason        string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *booking.Booking {
	b := &booking.Booking{
		BranchID:       m.BranchID,
		LegacyBranchID: m.LegacyBranchID,
		ClientID:       m.ClientID,
		BookingNumber:  m.BookingNumber,
		FunctionDetails: booking.FunctionDetails{
			Type:      m.FunctionType,
			Date:      m.FunctionDate,
			StartTime: m.FunctionStartTime,
			EndTime:   m.FunctionEndTime,
		},
		Pricing: booking.Pricing{
			Subtotal:        m.Subtotal,
			TotalAmount:     m.TotalAmount,
			FinalAmount:     m.FinalAmount,
			LegacyTotal:     m.LegacyTotal,
			AdvanceAmount:   m.AdvanceAmount,
			RemainingAmount: m.RemainingAmount,
		},
		Status:       m.Status,
		ConfirmedAt:  m.ConfirmedAt,
		CompletedAt:  m.CompletedAt,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
	}
	fromJSON(m.VenueJSON, &b.FunctionDetails.Venue)
	fromJSON(m.FunctionListJSON, &b.FunctionDetailsList)
	fromJSON(m.ServicesJSON, &b.Services)
	fromJSON(m.StaffAssignmentJSON, &b.StaffAssignment)
	fromJSON(m.EquipmentJSON, &b.EquipmentAssignment)
	m.PopulateCompanyAggregateRoot(&b.CompanyAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainCompanyAggregateRoot(b.CompanyAggregateRoot)
	m.BranchID = b.BranchID
	m.LegacyBranchID = b.LegacyBranchID
	m.ClientID = b.ClientID
	m.BookingNumber = b.BookingNumber
	m.FunctionType = b.FunctionDetails.Type
	m.FunctionDate = b.FunctionDetails.Date
	m.FunctionStartTime = b.FunctionDetails.StartTime
	m.FunctionEndTime = b.FunctionDetails.EndTime
	m.VenueJSON = toJSON(b.FunctionDetails.Venue, "{}")
	m.FunctionListJSON = toJSON(b.FunctionDetailsList, "[]")
	m.ServicesJSON = toJSON(b.Services, "[]")
	m.Subtotal = b.Pricing.Subtotal
	m.TotalAmount = b.Pricing.TotalAmount
	m.FinalAmount = b.Pricing.FinalAmount
	m.LegacyTotal = b.Pricing.LegacyTotal
	m.AdvanceAmount = b.Pricing.AdvanceAmount
	m.RemainingAmount = b.Pricing.RemainingAmount
	m.StaffAssignmentJSON = toJSON(b.StaffAssignment, "[]")
	m.EquipmentJSON = toJSON(b.EquipmentAssignment, "[]")
	m.Status = b.Status
	m.ConfirmedAt = b.ConfirmedAt
	m.CompletedAt = b.CompletedAt
	m.CancelledAt = b.CancelledAt
	m.CancelReason = b.CancelReason
}

// BookingModelFromDomain creates a new persistence model from a domain Booking.
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}
