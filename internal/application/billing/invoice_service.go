package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/shared"
)

// InvoiceService handles the invoice lifecycle
type InvoiceService struct {
	repo        billing.InvoiceRepository
	bookingRepo booking.Repository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo billing.InvoiceRepository, bookingRepo booking.Repository) *InvoiceService {
	return &InvoiceService{repo: repo, bookingRepo: bookingRepo}
}

// Create drafts a new invoice, optionally tied to a booking
func (s *InvoiceService) Create(ctx context.Context, companyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if req.BookingID != nil {
		if _, err := s.bookingRepo.FindByIDForCompany(ctx, companyID, *req.BookingID); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.CountForCompany(ctx, companyID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("INV-%d-%03d", time.Now().Year(), count+1)

	total := req.Total
	totals := billing.DocumentTotals{
		Subtotal:    req.Subtotal,
		Tax:         req.Tax,
		Discount:    req.Discount,
		TotalAmount: &total,
	}

	inv, err := billing.NewInvoice(companyID, req.BranchID, req.ClientID, number,
		toDomainItems(req.Items), totals, req.DueDate)
	if err != nil {
		return nil, err
	}
	inv.BookingID = req.BookingID

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// GetByID retrieves an invoice scoped to the company
func (s *InvoiceService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, companyID uuid.UUID, filter DocumentListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.ClientID != "" {
		domainFilter.Filters["client_id"] = filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	invoices, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceResponses(invoices), total, nil
}

// Issue marks a draft invoice as sent to the client
func (s *InvoiceService) Issue(ctx context.Context, companyID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := inv.Send(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Pay records a payment against the invoice
func (s *InvoiceService) Pay(ctx context.Context, companyID, id uuid.UUID, req PayInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := inv.RecordPayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Cancel voids the invoice
func (s *InvoiceService) Cancel(ctx context.Context, companyID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := inv.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	inv, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, inv.ID)
}
