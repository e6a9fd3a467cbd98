package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/shared"
)

// Notifier sends the client their quotation with a smart link
type Notifier interface {
	NotifyQuotationCreated(ctx context.Context, q *billing.Quotation) error
}

// QuotationService handles the quotation lifecycle, including the
// conversion of accepted quotations into bookings
type QuotationService struct {
	repo        billing.QuotationRepository
	bookingRepo booking.Repository
	notifier    Notifier
	logger      *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	repo billing.QuotationRepository,
	bookingRepo booking.Repository,
	notifier Notifier,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		repo:        repo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create drafts a new quotation
func (s *QuotationService) Create(ctx context.Context, companyID uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	count, err := s.repo.CountForCompany(ctx, companyID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("QT-%d-%03d", time.Now().Year(), count+1)

	total := req.Total
	totals := billing.DocumentTotals{
		Subtotal:    req.Subtotal,
		Tax:         req.Tax,
		Discount:    req.Discount,
		TotalAmount: &total,
	}

	q, err := billing.NewQuotation(companyID, req.BranchID, req.ClientID, number,
		toDomainItems(req.Items), totals, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// GetByID retrieves a quotation scoped to the company
func (s *QuotationService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// List retrieves quotations with filtering and pagination
func (s *QuotationService) List(ctx context.Context, companyID uuid.UUID, filter DocumentListFilter) ([]QuotationResponse, int64, error) {
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

	quotations, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToQuotationResponses(quotations), total, nil
}

// Send marks the quotation sent and messages the client with a smart
// link. The send stands even when the message fails.
func (s *QuotationService) Send(ctx context.Context, companyID, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := q.Send(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyQuotationCreated(ctx, q); err != nil {
		s.logger.Warn("quotation message failed",
			zap.String("quotation_id", q.ID.String()),
			zap.Error(err))
	}
	return ToQuotationResponse(q), nil
}

// Accept converts the quotation into a pending booking carrying the
// quoted total, then marks the quotation accepted.
func (s *QuotationService) Accept(ctx context.Context, companyID, id uuid.UUID, req AcceptQuotationRequest) (*QuotationResponse, error) {
	q, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if q.Status != billing.QuotationStatusSent {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept quotation in %s status", q.Status))
	}

	count, err := s.bookingRepo.CountForCompany(ctx, companyID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("BK-%d-%03d", time.Now().Year(), count+1)

	total := q.Totals.EffectiveTotal()
	b, err := booking.NewBooking(companyID, q.BranchID, q.ClientID, number,
		booking.FunctionDetails{
			Type:      booking.FunctionType(req.Function.Type),
			Date:      req.Function.Date,
			StartTime: req.Function.StartTime,
			EndTime:   req.Function.EndTime,
			Venue: booking.Venue{
				Name:    req.Function.VenueName,
				Address: req.Function.Address,
				City:    req.Function.City,
			},
		},
		booking.Pricing{TotalAmount: &total, AdvanceAmount: req.Advance},
	)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	if err := q.Accept(b.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// Reject marks the quotation rejected by the client
func (s *QuotationService) Reject(ctx context.Context, companyID, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := q.Reject(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// Delete removes a quotation
func (s *QuotationService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	q, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, q.ID)
}
