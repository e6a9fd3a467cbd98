package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/messaging"
)

// pendingBatchSize caps how many notifications one dispatch pass takes
const pendingBatchSize = 100

// ProcessPending dispatches pending notifications through the sender.
// A failed send burns one retry; the notification parks as failed once
// its budget is spent. Returns how many messages went out. Per-record
// errors are logged and skipped, the sweep itself only fails on the
// initial query.
func (s *NotificationService) ProcessPending(ctx context.Context) (int, error) {
	pending, err := s.repo.FindPending(ctx, pendingBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range pending {
		n := &pending[i]
		if !n.CanRetry() {
			continue
		}
		if err := s.sender.Send(ctx, n); err != nil {
			n.RecordFailure(err.Error())
		} else if err := n.MarkSent(); err != nil {
			s.logger.Warn("notification state error",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
			continue
		} else {
			sent++
		}
		if err := s.repo.Save(ctx, n); err != nil {
			s.logger.Warn("notification save failed",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
		}
	}
	return sent, nil
}

// SendAppointmentReminders creates reminders for tomorrow's confirmed
// bookings. A client who already got one today is not reminded again.
func (s *NotificationService) SendAppointmentReminders(ctx context.Context) (int, error) {
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)
	bookings, err := s.bookingRepo.FindByFunctionDate(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range bookings {
		b := &bookings[i]
		sent, err := s.remindAppointment(ctx, b, tomorrow, now)
		if err != nil {
			s.logger.Warn("appointment reminder failed",
				zap.String("booking_id", b.ID.String()),
				zap.Error(err))
			continue
		}
		if sent {
			created++
		}
	}
	return created, nil
}

func (s *NotificationService) remindAppointment(ctx context.Context, b *booking.Booking, day, now time.Time) (bool, error) {
	exists, err := s.repo.ExistsSameDay(ctx, b.ClientID, messaging.TypeAppointmentReminder, now)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	c, err := s.clientRepo.FindByID(ctx, b.ClientID)
	if err != nil {
		return false, err
	}

	fn := functionOn(b, day)
	n, err := s.compose(b.CompanyID, b.BranchID, messaging.TypeAppointmentReminder,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":   c.Name,
			"functionType": string(fn.Type),
			"functionDate": fn.Date.Format(dateLayout),
			"venue":        fn.Venue.Name,
			"startTime":    fn.StartTime,
		},
		s.languageFor(c), nil, "appointment_reminder_sweep")
	if err != nil {
		return false, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

// functionOn picks the covered event falling on the given day, or the
// primary one when none matches
func functionOn(b *booking.Booking, day time.Time) booking.FunctionDetails {
	y, m, d := day.Date()
	for _, fn := range b.Functions() {
		fy, fm, fd := fn.Date.Date()
		if fy == y && fm == m && fd == d {
			return fn
		}
	}
	return b.Functions()[0]
}

// SendPaymentReminders creates reminders for due invoices, at most one
// per client per day
func (s *NotificationService) SendPaymentReminders(ctx context.Context) (int, error) {
	now := time.Now()
	invoices, err := s.invoiceRepo.FindDue(ctx, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range invoices {
		inv := &invoices[i]
		sent, err := s.remindPayment(ctx, inv, now)
		if err != nil {
			s.logger.Warn("payment reminder failed",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err))
			continue
		}
		if sent {
			created++
		}
	}
	return created, nil
}

func (s *NotificationService) remindPayment(ctx context.Context, inv *billing.Invoice, now time.Time) (bool, error) {
	exists, err := s.repo.ExistsSameDay(ctx, inv.ClientID, messaging.TypePaymentReminder, now)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	c, err := s.clientRepo.FindByID(ctx, inv.ClientID)
	if err != nil {
		return false, err
	}
	link, err := messaging.NewSmartLink(s.cfg.LinkBaseURL, messaging.ResourceInvoice, inv.ID)
	if err != nil {
		return false, err
	}

	n, err := s.compose(inv.CompanyID, inv.BranchID, messaging.TypePaymentReminder,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":    c.Name,
			"dueAmount":     inv.OutstandingAmount().String(),
			"invoiceNumber": inv.InvoiceNumber,
			"dueDate":       inv.DueDate.Format(dateLayout),
		},
		s.languageFor(c), link, "payment_reminder_sweep")
	if err != nil {
		return false, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return false, err
	}
	return true, nil
}

// SendQuotationFollowUps nudges clients about sent, still-valid
// quotations that have not been followed up today. Each reminder is
// recorded on the quotation so the next sweep skips it.
func (s *NotificationService) SendQuotationFollowUps(ctx context.Context) (int, error) {
	now := time.Now()
	quotations, err := s.quotationRepo.FindNeedingFollowUp(ctx, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range quotations {
		q := &quotations[i]
		if err := s.followUpQuotation(ctx, q, now); err != nil {
			s.logger.Warn("quotation follow-up failed",
				zap.String("quotation_id", q.ID.String()),
				zap.Error(err))
			continue
		}
		created++
	}
	return created, nil
}

func (s *NotificationService) followUpQuotation(ctx context.Context, q *billing.Quotation, now time.Time) error {
	c, err := s.clientRepo.FindByID(ctx, q.ClientID)
	if err != nil {
		return err
	}
	link, err := messaging.NewSmartLink(s.cfg.LinkBaseURL, messaging.ResourceQuotation, q.ID)
	if err != nil {
		return err
	}

	n, err := s.compose(q.CompanyID, q.BranchID, messaging.TypeFollowUp,
		messaging.Recipient{Type: messaging.RecipientClient, RecipientID: c.ID, Contact: c.Phone},
		map[string]string{
			"clientName":      c.Name,
			"quotationNumber": q.QuotationNumber,
			"totalAmount":     q.Totals.EffectiveTotal().String(),
			"validUntil":      q.ValidUntil.Format(dateLayout),
		},
		s.languageFor(c), link, "quotation_follow_up")
	if err != nil {
		return err
	}
	next := now.AddDate(0, 0, 1)
	n.Automation.NextFollowUp = &next
	if err := s.repo.Save(ctx, n); err != nil {
		return err
	}

	q.RecordFollowUp()
	return s.quotationRepo.Save(ctx, q)
}

// CleanupExpiredLinks retires every active smart link whose validity
// window has lapsed and returns how many were affected
func (s *NotificationService) CleanupExpiredLinks(ctx context.Context) (int64, error) {
	return s.repo.DeactivateExpiredLinks(ctx, time.Now())
}
