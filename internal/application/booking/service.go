package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/application/assignment"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/shared"
)

// TaskPlanner runs the task auto-assignment pipeline for a booking
type TaskPlanner interface {
	AutoAssignTasks(ctx context.Context, bookingID uuid.UUID) ([]assignment.AssignmentResult, error)
}

// Notifier sends the client their booking confirmation
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, b *booking.Booking) error
}

// Service handles booking lifecycle operations
type Service struct {
	repo       booking.Repository
	clientRepo client.Repository
	planner    TaskPlanner
	notifier   Notifier
	logger     *zap.Logger
}

// NewService creates a new booking Service
func NewService(
	repo booking.Repository,
	clientRepo client.Repository,
	planner TaskPlanner,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		clientRepo: clientRepo,
		planner:    planner,
		notifier:   notifier,
		logger:     logger,
	}
}

func toDomainFunction(req FunctionRequest) booking.FunctionDetails {
	return booking.FunctionDetails{
		Type:      booking.FunctionType(req.Type),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Venue: booking.Venue{
			Name:    req.Venue.Name,
			Address: req.Venue.Address,
			City:    req.Venue.City,
		},
	}
}

// Create registers a new pending booking for an existing client
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if _, err := s.clientRepo.FindByIDForCompany(ctx, companyID, req.ClientID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountForCompany(ctx, companyID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("BK-%d-%03d", time.Now().Year(), count+1)

	total := req.Total
	pricing := booking.Pricing{
		TotalAmount:   &total,
		AdvanceAmount: req.Advance,
	}

	b, err := booking.NewBooking(companyID, req.BranchID, req.ClientID, number, toDomainFunction(req.Function), pricing)
	if err != nil {
		return nil, err
	}
	for _, fn := range req.Functions {
		b.FunctionDetailsList = append(b.FunctionDetailsList, toDomainFunction(fn))
	}
	for _, line := range req.Services {
		b.Services = append(b.Services, booking.ServiceLine{
			Service: line.Service,
			Rate:    line.Rate,
			Amount:  line.Amount,
		})
	}
	for _, e := range req.Equipment {
		if err := b.AssignEquipment(e.Equipment, e.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// GetByID retrieves a booking scoped to the company
func (s *Service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// List retrieves bookings with filtering and pagination
func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter BookingListFilter) ([]BookingResponse, int64, error) {
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

	bookings, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBookingResponses(bookings), total, nil
}

// Update applies partial changes to a pending booking
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Function != nil {
		fn := toDomainFunction(*req.Function)
		if !fn.Type.IsValid() {
			return nil, shared.NewDomainError("INVALID_FUNCTION_TYPE", "Function type is not valid")
		}
		b.FunctionDetails = fn
		b.Touch()
	}
	if req.Total != nil || req.Advance != nil {
		pricing := b.Pricing
		if req.Total != nil {
			total := *req.Total
			pricing.TotalAmount = &total
			pricing.FinalAmount = nil
			pricing.LegacyTotal = nil
		}
		if req.Advance != nil {
			pricing.AdvanceAmount = *req.Advance
		}
		if err := b.UpdatePricing(pricing); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// Confirm moves the booking to confirmed, then kicks off the task
// auto-assignment pipeline and the client confirmation message. The
// downstream steps are best effort: the confirmation stands even when
// assignment or messaging fails.
func (s *Service) Confirm(ctx context.Context, companyID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := b.Confirm(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}

	if _, err := s.planner.AutoAssignTasks(ctx, b.ID); err != nil {
		s.logger.Warn("task auto-assignment failed",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
	}
	if err := s.notifier.NotifyBookingConfirmed(ctx, b); err != nil {
		s.logger.Warn("booking confirmation message failed",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err))
	}

	return ToBookingResponse(b), nil
}

// Complete marks the booking done
func (s *Service) Complete(ctx context.Context, companyID, id uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := b.Complete(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// Cancel cancels the booking with a reason
func (s *Service) Cancel(ctx context.Context, companyID, id uuid.UUID, req CancelBookingRequest) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// RecordPayment adds to the advance collected on the booking
func (s *Service) RecordPayment(ctx context.Context, companyID, id uuid.UUID, req RecordPaymentRequest) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := b.RecordAdvancePayment(req.Amount); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// AssignEquipment reserves equipment on an existing booking
func (s *Service) AssignEquipment(ctx context.Context, companyID, id uuid.UUID, req AssignEquipmentRequest) (*BookingResponse, error) {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	for _, e := range req.Equipment {
		if err := b.AssignEquipment(e.Equipment, e.Quantity); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return ToBookingResponse(b), nil
}

// Delete removes a booking
func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	b, err := s.repo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, b.ID)
}
