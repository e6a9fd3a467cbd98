package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/billing"
)

// LineItemRequest is one priced line on a billing document payload
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// LineItemResponse mirrors a stored line item
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateQuotationRequest is the payload for drafting a quotation
type CreateQuotationRequest struct {
	BranchID   uuid.UUID         `json:"branch_id" binding:"required"`
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Tax        decimal.Decimal   `json:"tax"`
	Discount   decimal.Decimal   `json:"discount"`
	Total      decimal.Decimal   `json:"total_amount" binding:"required"`
	ValidUntil time.Time         `json:"valid_until" binding:"required"`
}

// AcceptQuotationRequest carries the event details needed to convert
// an accepted quotation into a booking
type AcceptQuotationRequest struct {
	Function FunctionRequest `json:"function" binding:"required"`
	Advance  decimal.Decimal `json:"advance_amount"`
}

// FunctionRequest describes the covered event for a converted booking
type FunctionRequest struct {
	Type      string    `json:"type" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	VenueName string    `json:"venue_name" binding:"required"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
}

// QuotationResponse is the API representation of a quotation
type QuotationResponse struct {
	ID                 uuid.UUID          `json:"id"`
	BranchID           uuid.UUID          `json:"branch_id"`
	ClientID           uuid.UUID          `json:"client_id"`
	QuotationNumber    string             `json:"quotation_number"`
	Items              []LineItemResponse `json:"items"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	ValidUntil         time.Time          `json:"valid_until"`
	Status             string             `json:"status"`
	SentAt             *time.Time         `json:"sent_at"`
	RespondedAt        *time.Time         `json:"responded_at"`
	ConvertedBookingID *uuid.UUID         `json:"converted_booking_id"`
	LastFollowUpAt     *time.Time         `json:"last_follow_up_at"`
	FollowUpCount      int                `json:"follow_up_count"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CreateInvoiceRequest is the payload for drafting an invoice
type CreateInvoiceRequest struct {
	BranchID  uuid.UUID         `json:"branch_id" binding:"required"`
	ClientID  uuid.UUID         `json:"client_id" binding:"required"`
	BookingID *uuid.UUID        `json:"booking_id"`
	Items     []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Tax       decimal.Decimal   `json:"tax"`
	Discount  decimal.Decimal   `json:"discount"`
	Total     decimal.Decimal   `json:"total_amount" binding:"required"`
	DueDate   time.Time         `json:"due_date" binding:"required"`
}

// PayInvoiceRequest records a payment against an invoice
type PayInvoiceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	BranchID      uuid.UUID          `json:"branch_id"`
	ClientID      uuid.UUID          `json:"client_id"`
	BookingID     *uuid.UUID         `json:"booking_id"`
	InvoiceNumber string             `json:"invoice_number"`
	Items         []LineItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	Outstanding   decimal.Decimal    `json:"outstanding_amount"`
	DueDate       time.Time          `json:"due_date"`
	Status        string             `json:"status"`
	SentAt        *time.Time         `json:"sent_at"`
	PaidAt        *time.Time         `json:"paid_at"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DocumentListFilter holds query parameters for listing billing documents
type DocumentListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	BranchID string `form:"branch_id"`
	ClientID string `form:"client_id"`
	Status   string `form:"status"`
}

func toDomainItems(items []LineItemRequest) []billing.LineItem {
	domainItems := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, billing.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}
	return domainItems
}

func toItemResponses(items []billing.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}
	return responses
}

// ToQuotationResponse converts a domain quotation to its API representation
func ToQuotationResponse(q *billing.Quotation) *QuotationResponse {
	return &QuotationResponse{
		ID:                 q.ID,
		BranchID:           q.BranchID,
		ClientID:           q.ClientID,
		QuotationNumber:    q.QuotationNumber,
		Items:              toItemResponses(q.Items),
		TotalAmount:        q.Totals.EffectiveTotal(),
		ValidUntil:         q.ValidUntil,
		Status:             string(q.Status),
		SentAt:             q.SentAt,
		RespondedAt:        q.RespondedAt,
		ConvertedBookingID: q.ConvertedBookingID,
		LastFollowUpAt:     q.LastFollowUpAt,
		FollowUpCount:      q.FollowUpCount,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

// ToQuotationResponses converts a slice of domain quotations
func ToQuotationResponses(quotations []billing.Quotation) []QuotationResponse {
	responses := make([]QuotationResponse, 0, len(quotations))
	for i := range quotations {
		responses = append(responses, *ToQuotationResponse(&quotations[i]))
	}
	return responses
}

// ToInvoiceResponse converts a domain invoice to its API representation
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID,
		BranchID:      inv.BranchID,
		ClientID:      inv.ClientID,
		BookingID:     inv.BookingID,
		InvoiceNumber: inv.InvoiceNumber,
		Items:         toItemResponses(inv.Items),
		TotalAmount:   inv.Totals.EffectiveTotal(),
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.OutstandingAmount(),
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		SentAt:        inv.SentAt,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, *ToInvoiceResponse(&invoices[i]))
	}
	return responses
}
