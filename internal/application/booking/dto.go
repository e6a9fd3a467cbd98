package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/booking"
)

// VenueRequest is the venue part of a function payload
type VenueRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// FunctionRequest describes one covered event in a booking payload
type FunctionRequest struct {
	Type      string       `json:"type" binding:"required"`
	Date      time.Time    `json:"date" binding:"required"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Venue     VenueRequest `json:"venue" binding:"required"`
}

// ServiceLineRequest is one priced service on a booking payload
type ServiceLineRequest struct {
	Service string          `json:"service" binding:"required"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// EquipmentRequest reserves one piece of equipment
type EquipmentRequest struct {
	Equipment string `json:"equipment" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateBookingRequest is the payload for creating a booking
type CreateBookingRequest struct {
	BranchID  uuid.UUID            `json:"branch_id" binding:"required"`
	ClientID  uuid.UUID            `json:"client_id" binding:"required"`
	Function  FunctionRequest      `json:"function" binding:"required"`
	Functions []FunctionRequest    `json:"functions"`
	Services  []ServiceLineRequest `json:"services"`
	Total     decimal.Decimal      `json:"total_amount" binding:"required"`
	Advance   decimal.Decimal      `json:"advance_amount"`
	Equipment []EquipmentRequest   `json:"equipment"`
}

// UpdateBookingRequest is the payload for updating a pending booking.
// Only provided fields are changed.
type UpdateBookingRequest struct {
	Function *FunctionRequest `json:"function"`
	Total    *decimal.Decimal `json:"total_amount"`
	Advance  *decimal.Decimal `json:"advance_amount"`
}

// CancelBookingRequest carries the mandatory cancellation reason
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RecordPaymentRequest adds to the advance already collected
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AssignEquipmentRequest reserves equipment on an existing booking
type AssignEquipmentRequest struct {
	Equipment []EquipmentRequest `json:"equipment" binding:"required,min=1,dive"`
}

// VenueResponse mirrors the stored venue
type VenueResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// FunctionResponse is one covered event in API responses
type FunctionResponse struct {
	Type      string        `json:"type"`
	Date      time.Time     `json:"date"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Venue     VenueResponse `json:"venue"`
}

// EquipmentResponse is one reserved equipment line
type EquipmentResponse struct {
	Equipment string `json:"equipment"`
	Quantity  int    `json:"quantity"`
}

// StaffAssignmentResponse is one staff member attached to the booking
type StaffAssignmentResponse struct {
	StaffID uuid.UUID `json:"staff_id"`
	Role    string    `json:"role"`
}

// BookingResponse is the API representation of a booking
type BookingResponse struct {
	ID              uuid.UUID                 `json:"id"`
	BranchID        uuid.UUID                 `json:"branch_id"`
	ClientID        uuid.UUID                 `json:"client_id"`
	BookingNumber   string                    `json:"booking_number"`
	Functions       []FunctionResponse        `json:"functions"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	AdvanceAmount   decimal.Decimal           `json:"advance_amount"`
	RemainingAmount decimal.Decimal           `json:"remaining_amount"`
	Equipment       []EquipmentResponse       `json:"equipment"`
	Staff           []StaffAssignmentResponse `json:"staff"`
	Status          string                    `json:"status"`
	ConfirmedAt     *time.Time                `json:"confirmed_at"`
	CompletedAt     *time.Time                `json:"completed_at"`
	CancelledAt     *time.Time                `json:"cancelled_at"`
	CancelReason    string                    `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// BookingListFilter holds query parameters for listing bookings
type BookingListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	BranchID string `form:"branch_id"`
	ClientID string `form:"client_id"`
	Status   string `form:"status"`
}

func toFunctionResponse(fn booking.FunctionDetails) FunctionResponse {
	return FunctionResponse{
		Type:      string(fn.Type),
		Date:      fn.Date,
		StartTime: fn.StartTime,
		EndTime:   fn.EndTime,
		Venue: VenueResponse{
			Name:    fn.Venue.Name,
			Address: fn.Venue.Address,
			City:    fn.Venue.City,
		},
	}
}

// ToBookingResponse converts a domain booking to its API representation
func ToBookingResponse(b *booking.Booking) *BookingResponse {
	functions := make([]FunctionResponse, 0, len(b.Functions()))
	for _, fn := range b.Functions() {
		functions = append(functions, toFunctionResponse(fn))
	}
	equipment := make([]EquipmentResponse, 0, len(b.EquipmentAssignment))
	for _, e := range b.EquipmentAssignment {
		equipment = append(equipment, EquipmentResponse{Equipment: e.Equipment, Quantity: e.Quantity})
	}
	staff := make([]StaffAssignmentResponse, 0, len(b.StaffAssignment))
	for _, s := range b.StaffAssignment {
		staff = append(staff, StaffAssignmentResponse{StaffID: s.StaffID, Role: s.Role})
	}

	return &BookingResponse{
		ID:              b.ID,
		BranchID:        b.BranchID,
		ClientID:        b.ClientID,
		BookingNumber:   b.BookingNumber,
		Functions:       functions,
		TotalAmount:     b.Pricing.EffectiveTotal(),
		AdvanceAmount:   b.Pricing.AdvanceAmount,
		RemainingAmount: b.Pricing.RemainingAmount,
		Equipment:       equipment,
		Staff:           staff,
		Status:          b.Status.String(),
		ConfirmedAt:     b.ConfirmedAt,
		CompletedAt:     b.CompletedAt,
		CancelledAt:     b.CancelledAt,
		CancelReason:    b.CancelReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToBookingResponses converts a slice of domain bookings
func ToBookingResponses(bookings []booking.Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *ToBookingResponse(&bookings[i]))
	}
	return responses
}
