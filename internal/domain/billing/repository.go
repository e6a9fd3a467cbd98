package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumPaidRevenueByBranch sums the effective total of paid invoices
	// for the given branch.
	SumPaidRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error)

	// FindDue returns sent or overdue invoices whose due date is on or
	// before the given day, used for payment reminders.
	FindDue(ctx context.Context, asOf time.Time) ([]Invoice, error)
}

// QuotationRepository defines persistence operations for quotations
type QuotationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Quotation, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Quotation, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumAcceptedRevenueByBranch sums the effective total of accepted
	// quotations for the given branch.
	SumAcceptedRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error)

	// FindNeedingFollowUp returns sent, still-valid quotations with no
	// follow-up recorded on the given day.
	FindNeedingFollowUp(ctx context.Context, asOf time.Time) ([]Quotation, error)
}
