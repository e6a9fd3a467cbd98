package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/messaging"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/domain/task"
	"github.com/lensflow/backend/internal/infrastructure/config"
)

const dateLayout = "02 Jan 2006"

// NotificationService creates, dispatches and resolves notifications.
// It is the single producer of client and staff messages: domain
// services hand it aggregates and it renders the bilingual templates,
// mints smart links and persists the result for the dispatch sweep.
type NotificationService struct {
	repo          messaging.Repository
	clientRepo    client.Repository
	bookingRepo   booking.Repository
	invoiceRepo   billing.InvoiceRepository
	quotationRepo billing.QuotationRepository
	sender        Sender
	cfg           config.MessagingConfig
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	repo messaging.Repository,
	clientRepo client.Repository,
	bookingRepo booking.Repository,
	invoiceRepo billing.InvoiceRepository,
	quotationRepo billing.QuotationRepository,
	sender Sender,
	cfg config.MessagingConfig,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:          repo,
		clientRepo:    clientRepo,
		bookingRepo:   bookingRepo,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		sender:        sender,
		cfg:           cfg,
		logger:        logger,
	}
}

// defaultLanguage resolves the configured fallback language
func (s *NotificationService) defaultLanguage() client.Language {
	lang := client.Language(s.cfg.DefaultLanguage)
	if !lang.IsValid() {
		return client.LanguageHindi
	}
	return lang
}

// languageFor picks the client's preferred language, falling back to
// the configured default
func (s *NotificationService) languageFor(c *client.Client) client.Language {
	if c.Language.IsValid() {
		return c.Language
	}
	return s.defaultLanguage()
}

// compose renders the template and builds a pending notification
func (s *NotificationService) compose(
	companyID, branchID uuid.UUID,
	notifType messaging.NotificationType,
	recipient messaging.Recipient,
	vars map[string]string,
	language client.Language,
	link *messaging.SmartLink,
	trigger string,
) (*messaging.Notification, error) {
	if link != nil {
		vars["link"] = link.URL
	}
	message, err := messaging.RenderMessage(notifType, vars, language)
	if err != nil {
		return nil, err
	}
	n, err := messaging.NewNotification(companyID, branchID, notifType, recipient, message, language)
	if err != nil {
		return nil, err
	}
	if link != nil {
		if err := n.AttachSmartLink(link); err != nil {
			return nil, err
		}
	}
	if trigger != "" {
		n.MarkAutomated(trigger, nil)
	}
	return n, nil
}

// NotifyBookingConfirmed sends the client a confirmation with a smart
// link to their booking
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, b *booking.Booking) error {
	c, err := s.clientRepo.FindByID(ctx, b.ClientID)
	if err != nil {
		return err
	}
	link, err := messaging.NewSmartLink(s.cfg.LinkBaseURL, messaging.ResourceBooking, b.ID)
	if err != nil {
		return err
	}

	fn := b.Functions()[0]
	n, err := s.compose(b.CompanyID, b.BranchID, messaging.TypeBookingConfirmed,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":      c.Name,
			"functionType":    string(fn.Type),
			"functionDate":    fn.Date.Format(dateLayout),
			"venue":           fn.Venue.Name,
			"advanceAmount":   b.Pricing.AdvanceAmount.String(),
			"remainingAmount": b.Pricing.RemainingAmount.String(),
		},
		s.languageFor(c), link, "booking_confirmed")
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// NotifyQuotationCreated sends the client their quotation with a
// smart link
func (s *NotificationService) NotifyQuotationCreated(ctx context.Context, q *billing.Quotation) error {
	c, err := s.clientRepo.FindByID(ctx, q.ClientID)
	if err != nil {
		return err
	}
	link, err := messaging.NewSmartLink(s.cfg.LinkBaseURL, messaging.ResourceQuotation, q.ID)
	if err != nil {
		return err
	}

	n, err := s.compose(q.CompanyID, q.BranchID, messaging.TypeQuotationCreated,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":      c.Name,
			"quotationNumber": q.QuotationNumber,
			"totalAmount":     q.Totals.EffectiveTotal().String(),
			"validUntil":      q.ValidUntil.Format(dateLayout),
		},
		s.languageFor(c), link, "quotation_created")
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// NotifyTaskAssigned tells a staff member about their new task. Staff
// messages go out in the configured default language.
func (s *NotificationService) NotifyTaskAssigned(ctx context.Context, t *task.Task, staff *org.Staff) error {
	contact := staff.Phone
	if contact == "" {
		contact = staff.Email
	}

	venue := ""
	if t.BookingID != nil {
		if b, err := s.bookingRepo.FindByID(ctx, *t.BookingID); err == nil {
			venue = b.Functions()[0].Venue.Name
		}
	}

	n, err := s.compose(t.CompanyID, t.BranchID, messaging.TypeTaskAssigned,
		messaging.Recipient{Type: messaging.RecipientStaff, RecipientID: staff.ID, Contact: contact},
		map[string]string{
			"staffName":     staff.Name,
			"taskTitle":     t.Title,
			"scheduledDate": t.ScheduledDate.Format(dateLayout),
			"scheduledTime": t.ScheduledTime.String(),
			"role":          string(staff.PrimaryRole()),
			"venue":         venue,
		},
		s.defaultLanguage(), nil, "auto_assignment")
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// NotifyBookingStaffed sends the client one aggregated message with
// the crew and equipment arranged for their booking
func (s *NotificationService) NotifyBookingStaffed(ctx context.Context, b *booking.Booking, staffNames []string, equipment []string) error {
	c, err := s.clientRepo.FindByID(ctx, b.ClientID)
	if err != nil {
		return err
	}

	equipmentList := "-"
	if len(equipment) > 0 {
		equipmentList = strings.Join(equipment, ", ")
	}
	fn := b.Functions()[0]
	n, err := s.compose(b.CompanyID, b.BranchID, messaging.TypeStaffAssigned,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":    c.Name,
			"functionType":  string(fn.Type),
			"functionDate":  fn.Date.Format(dateLayout),
			"staffList":     strings.Join(staffNames, ", "),
			"equipmentList": equipmentList,
		},
		s.languageFor(c), nil, "auto_assignment")
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// NotifyTaskSkipped tells the booking's client a pipeline stage was
// skipped. Tasks without a booking have no client to tell.
func (s *NotificationService) NotifyTaskSkipped(ctx context.Context, t *task.Task, reason string) error {
	if t.BookingID == nil {
		return nil
	}
	b, err := s.bookingRepo.FindByID(ctx, *t.BookingID)
	if err != nil {
		return err
	}
	c, err := s.clientRepo.FindByID(ctx, b.ClientID)
	if err != nil {
		return err
	}

	n, err := s.compose(t.CompanyID, t.BranchID, messaging.TypeTaskSkipped,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName": c.Name,
			"taskTitle":  t.Title,
			"reason":     reason,
		},
		s.languageFor(c), nil, "task_skipped")
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, n)
}

// List retrieves notifications with filtering and pagination
func (s *NotificationService) List(ctx context.Context, companyID uuid.UUID, filter NotificationListFilter) ([]NotificationResponse, int64, error) {
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
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.RecipientID != "" {
		domainFilter.Filters["recipient_id"] = filter.RecipientID
	}

	notifications, err := s.repo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToNotificationResponses(notifications), total, nil
}

// AccessSmartLink resolves a token, consuming one unit of the link's
// access budget and marking the notification read. The domain errors
// pass through unchanged: the transport maps missing or expired links
// to 404 and an exhausted budget to 403.
func (s *NotificationService) AccessSmartLink(ctx context.Context, token string) (*LinkResolution, error) {
	n, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := n.AccessLink(time.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}

	return &LinkResolution{
		ResourceType: string(n.SmartLink.ResourceType),
		ResourceID:   n.SmartLink.ResourceID,
		Language:     string(n.Language),
		Message:      n.Message,
	}, nil
}

// PreviewSmartLink returns link metadata without consuming an access
func (s *NotificationService) PreviewSmartLink(ctx context.Context, token string) (*LinkPreview, error) {
	n, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	link := n.SmartLink
	if link == nil {
		return nil, shared.ErrNotFound
	}

	accessesLeft := link.MaxAccess - link.AccessCount
	if accessesLeft < 0 {
		accessesLeft = 0
	}
	return &LinkPreview{
		ResourceType: string(link.ResourceType),
		ExpiresAt:    link.ExpiresAt,
		IsActive:     link.IsActive,
		IsExpired:    link.IsExpired(time.Now()),
		AccessesLeft: accessesLeft,
	}, nil
}
