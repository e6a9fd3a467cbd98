package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Like bookings, the total lives in one of three columns depending on
// which product version wrote the row.
type InvoiceModel struct {
	CompanyAggregateModel
	BranchID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	BookingID     *uuid.UUID       `gorm:"type:uuid;index"`
	InvoiceNumber string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_company_number,priority:2"`
	ItemsJSON     string           `gorm:"column:items;type:jsonb;default:'[]'"`
	Subtotal      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Tax           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	FinalAmount   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	LegacyTotal   *decimal.Decimal `gorm:"column:total;type:decimal(18,4)"`
	PaidAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DueDate       time.Time        `gorm:"not null;index"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SentAt        *time.Time
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BranchID:      m.BranchID,
		ClientID:      m.ClientID,
		BookingID:     m.BookingID,
		InvoiceNumber: m.InvoiceNumber,
		Totals: billing.DocumentTotals{
			Subtotal:    m.Subtotal,
			Tax:         m.Tax,
			Discount:    m.Discount,
			TotalAmount: m.TotalAmount,
			FinalAmount: m.FinalAmount,
			LegacyTotal: m.LegacyTotal,
		},
		PaidAmount: m.PaidAmount,
		DueDate:    m.DueDate,
		Status:     m.Status,
		SentAt:     m.SentAt,
		PaidAt:     m.PaidAt,
	}
	fromJSON(m.ItemsJSON, &inv.Items)
	m.PopulateCompanyAggregateRoot(&inv.CompanyAggregateRoot)
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainCompanyAggregateRoot(inv.CompanyAggregateRoot)
	m.BranchID = inv.BranchID
	m.ClientID = inv.ClientID
	m.BookingID = inv.BookingID
	m.InvoiceNumber = inv.InvoiceNumber
	m.ItemsJSON = toJSON(inv.Items, "[]")
	m.Subtotal = inv.Totals.Subtotal
	m.Tax = inv.Totals.Tax
	m.Discount = inv.Totals.Discount
	m.TotalAmount = inv.Totals.TotalAmount
	m.FinalAmount = inv.Totals.FinalAmount
	m.LegacyTotal = inv.Totals.LegacyTotal
	m.PaidAmount = inv.PaidAmount
	m.DueDate = inv.DueDate
	m.Status = inv.Status
	m.SentAt = inv.SentAt
	m.PaidAt = inv.PaidAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// QuotationModel is the persistence model for the Quotation aggregate root.
type QuotationModel struct {
	CompanyAggregateModel
	BranchID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	QuotationNumber    string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_quotation_company_number,priority:2"`
	ItemsJSON          string           `gorm:"column:items;type:jsonb;default:'[]'"`
	Subtotal           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Tax                decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Discount           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	FinalAmount        *decimal.Decimal `gorm:"type:decimal(18,4)"`
	LegacyTotal        *decimal.Decimal `gorm:"column:total;type:decimal(18,4)"`
	ValidUntil         time.Time        `gorm:"not null;index"`
	Status             billing.QuotationStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SentAt             *time.Time
	RespondedAt        *time.Time
	ConvertedBookingID *uuid.UUID `gorm:"type:uuid"`
	LastFollowUpAt     *time.Time `gorm:"index"`
	FollowUpCount      int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() *billing.Quotation {
	q := &billing.Quotation{
		BranchID:        m.BranchID,
		ClientID:        m.ClientID,
		QuotationNumber: m.QuotationNumber,
		Totals: billing.DocumentTotals{
			Subtotal:    m.Subtotal,
			Tax:         m.Tax,
			Discount:    m.Discount,
			TotalAmount: m.TotalAmount,
			FinalAmount: m.FinalAmount,
			LegacyTotal: m.LegacyTotal,
		},
		ValidUntil:         m.ValidUntil,
		Status:             m.Status,
		SentAt:             m.SentAt,
		RespondedAt:        m.RespondedAt,
		ConvertedBookingID: m.ConvertedBookingID,
		LastFollowUpAt:     m.LastFollowUpAt,
		FollowUpCount:      m.FollowUpCount,
	}
	fromJSON(m.ItemsJSON, &q.Items)
	m.PopulateCompanyAggregateRoot(&q.CompanyAggregateRoot)
	return q
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *billing.Quotation) {
	m.FromDomainCompanyAggregateRoot(q.CompanyAggregateRoot)
	m.BranchID = q.BranchID
	m.ClientID = q.ClientID
	m.QuotationNumber = q.QuotationNumber
	m.ItemsJSON = toJSON(q.Items, "[]")
	m.Subtotal = q.Totals.Subtotal
	m.Tax = q.Totals.Tax
	m.Discount = q.Totals.Discount
	m.TotalAmount = q.Totals.TotalAmount
	m.FinalAmount = q.Totals.FinalAmount
	m.LegacyTotal = q.Totals.LegacyTotal
	m.ValidUntil = q.ValidUntil
	m.Status = q.Status
	m.SentAt = q.SentAt
	m.RespondedAt = q.RespondedAt
	m.ConvertedBookingID = q.ConvertedBookingID
	m.LastFollowUpAt = q.LastFollowUpAt
	m.FollowUpCount = q.FollowUpCount
}

// QuotationModelFromDomain creates a new persistence model from a domain Quotation.
func QuotationModelFromDomain(q *billing.Quotation) *QuotationModel {
	m := &QuotationModel{}
	m.FromDomain(q)
	return m
}
