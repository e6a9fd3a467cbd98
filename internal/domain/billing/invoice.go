package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// DocumentTotals holds the money figures of a billing document.
// Older documents store the total under different fields; always read
// it through EffectiveTotal.
type DocumentTotals struct {
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Tax         decimal.Decimal  `json:"tax"`
	Discount    decimal.Decimal  `json:"discount"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	FinalAmount *decimal.Decimal `json:"final_amount"`
	LegacyTotal *decimal.Decimal `json:"total"`
}

// EffectiveTotal resolves the document total through the known legacy
// shapes, first non-nil wins: total_amount, final_amount, total.
func (d DocumentTotals) EffectiveTotal() decimal.Decimal {
	for _, candidate := range []*decimal.Decimal{d.TotalAmount, d.FinalAmount, d.LegacyTotal} {
		if candidate != nil {
			return *candidate
		}
	}
	return decimal.Zero
}

// LineItem is one billed line
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice represents an invoice aggregate root. Paid invoices count
// toward the branch revenue breakdown.
type Invoice struct {
	shared.CompanyAggregateRoot
	BranchID      uuid.UUID      `json:"branch_id"`
	ClientID      uuid.UUID      `json:"client_id"`
	BookingID     *uuid.UUID     `json:"booking_id"`
	InvoiceNumber string         `json:"invoice_number"`
	Items         []LineItem     `json:"items"`
	Totals        DocumentTotals `json:"totals"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	DueDate       time.Time      `json:"due_date"`
	Status        InvoiceStatus  `json:"status"`
	SentAt        *time.Time     `json:"sent_at"`
	PaidAt        *time.Time     `json:"paid_at"`
}

// NewInvoice creates a new invoice in draft status
func NewInvoice(
	companyID, branchID, clientID uuid.UUID,
	invoiceNumber string,
	items []LineItem,
	totals DocumentTotals,
	dueDate time.Time,
) (*Invoice, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	return &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		ClientID:             clientID,
		InvoiceNumber:        invoiceNumber,
		Items:                items,
		Totals:               totals,
		DueDate:              dueDate,
		Status:               InvoiceStatusDraft,
	}, nil
}

// OutstandingAmount returns the unpaid remainder of the invoice
func (i *Invoice) OutstandingAmount() decimal.Decimal {
	return i.Totals.EffectiveTotal().Sub(i.PaidAmount)
}

// Send marks the invoice as sent to the client
func (i *Invoice) Send() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", i.Status))
	}
	now := time.Now()
	i.Status = InvoiceStatusSent
	i.SentAt = &now
	i.UpdatedAt = now
	return nil
}

// RecordPayment applies a payment. The invoice flips to paid once
// the total is covered.
func (i *Invoice) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on invoice in %s status", i.Status))
	}
	i.PaidAmount = i.PaidAmount.Add(amount)
	if i.PaidAmount.GreaterThanOrEqual(i.Totals.EffectiveTotal()) {
		now := time.Now()
		i.Status = InvoiceStatusPaid
		i.PaidAt = &now
	}
	i.Touch()
	return nil
}

// MarkOverdue flags a sent invoice whose due date has passed
func (i *Invoice) MarkOverdue(asOf time.Time) error {
	if i.Status != InvoiceStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only sent invoices can become overdue")
	}
	if !asOf.After(i.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	i.Status = InvoiceStatusOverdue
	i.Touch()
	return nil
}

// Cancel voids the invoice
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a paid invoice")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.Touch()
	return nil
}

// IsPaid returns true if the invoice has been fully paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsDue returns true if the invoice still awaits payment past its due date
func (i *Invoice) IsDue(asOf time.Time) bool {
	return (i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue) && asOf.After(i.DueDate)
}
