package scheduler

import (
	"context"

	"go.uber.org/zap"
)

// NotificationSweeper runs the notification sweeps the cron trigger fires.
// The messaging application service implements it.
type NotificationSweeper interface {
	ProcessPending(ctx context.Context) (int, error)
	SendAppointmentReminders(ctx context.Context) (int, error)
	SendPaymentReminders(ctx context.Context) (int, error)
	SendQuotationFollowUps(ctx context.Context) (int, error)
	CleanupExpiredLinks(ctx context.Context) (int64, error)
}

// RevenueRefresher recomputes cached branch revenue snapshots
type RevenueRefresher interface {
	RefreshAll(ctx context.Context) error
}

// SweepExecutor dispatches scheduler jobs to the services that do the work
type SweepExecutor struct {
	sweeper   NotificationSweeper
	refresher RevenueRefresher
	logger    *zap.Logger
}

// NewSweepExecutor creates a new sweep executor
func NewSweepExecutor(sweeper NotificationSweeper, refresher RevenueRefresher, logger *zap.Logger) *SweepExecutor {
	return &SweepExecutor{
		sweeper:   sweeper,
		refresher: refresher,
		logger:    logger,
	}
}

var _ JobExecutor = (*SweepExecutor)(nil)

// Execute runs the sweep matching the job type
func (e *SweepExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTypePendingSweep:
		sent, err := e.sweeper.ProcessPending(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Pending notification sweep finished", zap.Int("sent", sent))
		return nil

	case JobTypeAppointmentReminders:
		sent, err := e.sweeper.SendAppointmentReminders(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Appointment reminders queued", zap.Int("count", sent))
		return nil

	case JobTypePaymentReminders:
		sent, err := e.sweeper.SendPaymentReminders(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Payment reminders queued", zap.Int("count", sent))
		return nil

	case JobTypeQuotationFollowUps:
		sent, err := e.sweeper.SendQuotationFollowUps(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Quotation follow-ups queued", zap.Int("count", sent))
		return nil

	case JobTypeLinkCleanup:
		deactivated, err := e.sweeper.CleanupExpiredLinks(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Expired smart links deactivated", zap.Int64("count", deactivated))
		return nil

	case JobTypeRevenueRefresh:
		return e.refresher.RefreshAll(ctx)

	default:
		return ErrInvalidJobType
	}
}
