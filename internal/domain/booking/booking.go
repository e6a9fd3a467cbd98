package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// FunctionType represents the kind of event being covered
type FunctionType string

const (
	FunctionWedding    FunctionType = "wedding"
	FunctionEngagement FunctionType = "engagement"
	FunctionBirthday   FunctionType = "birthday"
	FunctionCorporate  FunctionType = "corporate"
	FunctionPreWedding FunctionType = "pre_wedding"
	FunctionOther      FunctionType = "other"
)

// IsValid checks if the function type is known
func (f FunctionType) IsValid() bool {
	switch f {
	case FunctionWedding, FunctionEngagement, FunctionBirthday,
		FunctionCorporate, FunctionPreWedding, FunctionOther:
		return true
	}
	return false
}

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// IsValid checks if the status is a valid BookingStatus
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BookingStatus
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Venue is where a function takes place
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// HasAddress returns true when the venue carries enough detail
// for a travel task to be worth scheduling
func (v Venue) HasAddress() bool {
	return v.Address != ""
}

// FunctionDetails describes one covered event. StartTime and EndTime
// are wall-clock strings in "HH:MM" form.
type FunctionDetails struct {
	Type      FunctionType `json:"type"`
	Date      time.Time    `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Venue     Venue        `json:"venue"`
}

// ServiceLine is one priced service on a booking
type ServiceLine struct {
	Service string          `json:"service"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// Pricing holds the booking's money figures. Documents written by
// older product versions carry the total under different fields, so
// the canonical total must be read through EffectiveTotal, never
// from TotalAmount directly.
type Pricing struct {
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	FinalAmount     *decimal.Decimal `json:"final_amount"`
	LegacyTotal     *decimal.Decimal `json:"total"`
	AdvanceAmount   decimal.Decimal  `json:"advance_amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
}

// EffectiveTotal resolves the booking total through the known legacy
// shapes, first non-nil wins: total_amount, final_amount, total.
// Returns zero when none is set.
func (p Pricing) EffectiveTotal() decimal.Decimal {
	for _, candidate := range []*decimal.Decimal{p.TotalAmount, p.FinalAmount, p.LegacyTotal} {
		if candidate != nil {
			return *candidate
		}
	}
	return decimal.Zero
}

// Normalize recomputes RemainingAmount from the effective total and
// the advance. Every domain write path goes through this so stored and
// derived remaining amounts cannot drift.
func (p *Pricing) Normalize() {
	p.RemainingAmount = p.EffectiveTotal().Sub(p.AdvanceAmount)
}

// StaffAssignment records one staff member attached to the booking
type StaffAssignment struct {
	StaffID uuid.UUID `json:"staff_id"`
	Role    string    `json:"role"`
}

// EquipmentAssignment records one piece of equipment reserved for the booking
type EquipmentAssignment struct {
	Equipment string `json:"equipment"`
	Quantity  int    `json:"quantity"`
}

// Booking represents a photography/event booking aggregate root
type Booking struct {
	shared.CompanyAggregateRoot
	BranchID uuid.UUID `json:"branch_id"`
	// LegacyBranchID carries the branch reference written by a pre-migration
	// schema. Revenue aggregation must match on either field.
	LegacyBranchID      *uuid.UUID            `json:"legacy_branch_id"`
	ClientID            uuid.UUID             `json:"client_id"`
	BookingNumber       string                `json:"booking_number"`
	FunctionDetails     FunctionDetails       `json:"function_details"`
	FunctionDetailsList []FunctionDetails     `json:"function_details_list"`
	Services            []ServiceLine         `json:"services"`
	Pricing             Pricing               `json:"pricing"`
	StaffAssignment     []StaffAssignment     `json:"staff_assignment"`
	EquipmentAssignment []EquipmentAssignment `json:"equipment_assignment"`
	Status              BookingStatus         `json:"status"`
	ConfirmedAt         *time.Time            `json:"confirmed_at"`
	CompletedAt         *time.Time            `json:"completed_at"`
	CancelledAt         *time.Time            `json:"cancelled_at"`
	CancelReason        string                `json:"cancel_reason"`
}

// NewBooking creates a new booking in pending status
func NewBooking(
	companyID, branchID, clientID uuid.UUID,
	bookingNumber string,
	details FunctionDetails,
	pricing Pricing,
) (*Booking, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if bookingNumber == "" {
		return nil, shared.NewDomainError("INVALID_BOOKING_NUMBER", "Booking number cannot be empty")
	}
	if !details.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_FUNCTION_TYPE", "Function type is not valid")
	}
	if details.Date.IsZero() {
		return nil, shared.NewDomainError("INVALID_FUNCTION_DATE", "Function date is required")
	}
	if pricing.AdvanceAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ADVANCE", "Advance amount cannot be negative")
	}

	pricing.Normalize()

	return &Booking{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		ClientID:             clientID,
		BookingNumber:        bookingNumber,
		FunctionDetails:      details,
		Pricing:              pricing,
		Status:               StatusPending,
	}, nil
}

// Functions returns all covered events: the primary function details
// plus any entries written under the legacy multi-event list.
func (b *Booking) Functions() []FunctionDetails {
	if len(b.FunctionDetailsList) > 0 {
		return b.FunctionDetailsList
	}
	return []FunctionDetails{b.FunctionDetails}
}

// UpdatePricing replaces the pricing figures and renormalizes
func (b *Booking) UpdatePricing(pricing Pricing) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reprice booking in %s status", b.Status))
	}
	if pricing.AdvanceAmount.IsNegative() {
		return shared.NewDomainError("INVALID_ADVANCE", "Advance amount cannot be negative")
	}
	pricing.Normalize()
	b.Pricing = pricing
	b.Touch()
	return nil
}

// RecordAdvancePayment adds to the advance and renormalizes the remainder
func (b *Booking) RecordAdvancePayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on booking in %s status", b.Status))
	}
	b.Pricing.AdvanceAmount = b.Pricing.AdvanceAmount.Add(amount)
	b.Pricing.Normalize()
	b.Touch()
	return nil
}

// AssignStaff attaches a staff member with a role
func (b *Booking) AssignStaff(staffID uuid.UUID, role string) error {
	if staffID == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	for _, existing := range b.StaffAssignment {
		if existing.StaffID == staffID {
			return shared.NewDomainError("ALREADY_EXISTS", "Staff member is already assigned to this booking")
		}
	}
	b.StaffAssignment = append(b.StaffAssignment, StaffAssignment{StaffID: staffID, Role: role})
	b.Touch()
	return nil
}

// AssignEquipment reserves equipment for the booking
func (b *Booking) AssignEquipment(equipment string, quantity int) error {
	if equipment == "" {
		return shared.NewDomainError("INVALID_EQUIPMENT", "Equipment name cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Equipment quantity must be positive")
	}
	b.EquipmentAssignment = append(b.EquipmentAssignment, EquipmentAssignment{Equipment: equipment, Quantity: quantity})
	b.Touch()
	return nil
}

// HasEquipment returns true when any equipment is reserved
func (b *Booking) HasEquipment() bool {
	return len(b.EquipmentAssignment) > 0
}

// Confirm moves the booking to confirmed. Confirmation is what
// triggers the task auto-assignment pipeline downstream.
func (b *Booking) Confirm() error {
	if b.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm booking in %s status", b.Status))
	}
	now := time.Now()
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedAt = now
	return nil
}

// Start moves the booking to in progress
func (b *Booking) Start() error {
	if b.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start booking in %s status", b.Status))
	}
	b.Status = StatusInProgress
	b.Touch()
	return nil
}

// Complete marks the booking done. Completed bookings count toward
// the branch revenue breakdown.
func (b *Booking) Complete() error {
	if b.Status != StatusConfirmed && b.Status != StatusInProgress {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete booking in %s status", b.Status))
	}
	now := time.Now()
	b.Status = StatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	return nil
}

// Cancel cancels the booking with a reason
func (b *Booking) Cancel(reason string) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel booking in %s status", b.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancelReason = reason
	b.UpdatedAt = now
	return nil
}
