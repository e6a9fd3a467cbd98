package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "DRAFT"
	QuotationStatusSent     QuotationStatus = "SENT"
	QuotationStatusAccepted QuotationStatus = "ACCEPTED"
	QuotationStatusRejected QuotationStatus = "REJECTED"
	QuotationStatusExpired  QuotationStatus = "EXPIRED"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no further transitions
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusAccepted || s == QuotationStatusRejected || s == QuotationStatusExpired
}

// Quotation represents a price quotation aggregate root. Accepted
// quotations count toward the branch revenue breakdown; sent but
// unconverted quotations receive follow-up reminders.
type Quotation struct {
	shared.CompanyAggregateRoot
	BranchID        uuid.UUID       `json:"branch_id"`
	ClientID        uuid.UUID       `json:"client_id"`
	QuotationNumber string          `json:"quotation_number"`
	Items           []LineItem      `json:"items"`
	Totals          DocumentTotals  `json:"totals"`
	ValidUntil      time.Time       `json:"valid_until"`
	Status          QuotationStatus `json:"status"`
	SentAt          *time.Time      `json:"sent_at"`
	RespondedAt     *time.Time      `json:"responded_at"`
	// ConvertedBookingID links the booking created on acceptance
	ConvertedBookingID *uuid.UUID `json:"converted_booking_id"`
	LastFollowUpAt     *time.Time `json:"last_follow_up_at"`
	FollowUpCount      int        `json:"follow_up_count"`
}

// NewQuotation creates a new quotation in draft status
func NewQuotation(
	companyID, branchID, clientID uuid.UUID,
	quotationNumber string,
	items []LineItem,
	totals DocumentTotals,
	validUntil time.Time,
) (*Quotation, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if quotationNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTATION_NUMBER", "Quotation number cannot be empty")
	}
	if validUntil.IsZero() {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Validity date is required")
	}

	return &Quotation{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		ClientID:             clientID,
		QuotationNumber:      quotationNumber,
		Items:                items,
		Totals:               totals,
		ValidUntil:           validUntil,
		Status:               QuotationStatusDraft,
	}, nil
}

// Send marks the quotation as sent to the client
func (q *Quotation) Send() error {
	if q.Status != QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quotation in %s status", q.Status))
	}
	now := time.Now()
	q.Status = QuotationStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	return nil
}

// Accept marks the quotation accepted and links the resulting booking
func (q *Quotation) Accept(bookingID uuid.UUID) error {
	if q.Status != QuotationStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept quotation in %s status", q.Status))
	}
	now := time.Now()
	q.Status = QuotationStatusAccepted
	q.RespondedAt = &now
	if bookingID != uuid.Nil {
		q.ConvertedBookingID = &bookingID
	}
	q.UpdatedAt = now
	return nil
}

// Reject marks the quotation rejected
func (q *Quotation) Reject() error {
	if q.Status != QuotationStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quotation in %s status", q.Status))
	}
	now := time.Now()
	q.Status = QuotationStatusRejected
	q.RespondedAt = &now
	q.UpdatedAt = now
	return nil
}

// Expire marks a sent quotation expired once its validity has lapsed
func (q *Quotation) Expire(asOf time.Time) error {
	if q.Status != QuotationStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only sent quotations can expire")
	}
	if !asOf.After(q.ValidUntil) {
		return shared.NewDomainError("INVALID_STATE", "Quotation is still valid")
	}
	q.Status = QuotationStatusExpired
	q.Touch()
	return nil
}

// RecordFollowUp notes that a follow-up reminder went out
func (q *Quotation) RecordFollowUp() {
	now := time.Now()
	q.LastFollowUpAt = &now
	q.FollowUpCount++
	q.UpdatedAt = now
}

// NeedsFollowUp returns true if the quotation is sent, still valid,
// and has not been followed up on the given day
func (q *Quotation) NeedsFollowUp(asOf time.Time) bool {
	if q.Status != QuotationStatusSent || asOf.After(q.ValidUntil) {
		return false
	}
	if q.LastFollowUpAt == nil {
		return true
	}
	y1, m1, d1 := q.LastFollowUpAt.Date()
	y2, m2, d2 := asOf.Date()
	return !(y1 == y2 && m1 == m2 && d1 == d2)
}
