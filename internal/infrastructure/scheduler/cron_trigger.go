package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// AppointmentReminderHour/Minute is the daily time next-day
	// appointment reminders go out
	AppointmentReminderHour   int
	AppointmentReminderMinute int

	// PaymentReminderHour/Minute is the daily time invoice reminders and
	// quotation follow-ups go out
	PaymentReminderHour   int
	PaymentReminderMinute int

	// LinkCleanupHour/Minute is the daily time expired smart links are
	// deactivated and branch revenue snapshots refreshed
	LinkCleanupHour   int
	LinkCleanupMinute int

	// PendingSweepInterval is how often the pending notification queue
	// is drained
	PendingSweepInterval time.Duration

	// CheckInterval is how often the daily clock times are checked
	CheckInterval time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		AppointmentReminderHour: 9,
		PaymentReminderHour:     11,
		LinkCleanupHour:         0,
		PendingSweepInterval:    time.Hour,
		CheckInterval:           time.Minute,
	}
}

// ParseClockTime parses a "HH:MM" wall-clock time, falling back to the
// given defaults when the value is empty or malformed in part.
func ParseClockTime(value string, defaultHour, defaultMinute int) (hour, minute int, err error) {
	hour = defaultHour
	minute = defaultMinute

	value = strings.TrimSpace(value)
	if value == "" {
		return hour, minute, nil
	}

	parts := strings.SplitN(value, ":", 2)
	if h, parseErr := strconv.Atoi(strings.TrimSpace(parts[0])); parseErr == nil {
		hour = h
	}
	if len(parts) == 2 {
		if m, parseErr := strconv.Atoi(strings.TrimSpace(parts[1])); parseErr == nil {
			minute = m
		}
	}

	if hour < 0 || hour > 23 {
		return defaultHour, defaultMinute, fmt.Errorf("hour must be 0-23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return defaultHour, defaultMinute, fmt.Errorf("minute must be 0-59, got %d", minute)
	}

	return hour, minute, nil
}

// dailySlot is one wall-clock trigger time and the jobs it fires
type dailySlot struct {
	hour     int
	minute   int
	jobTypes []JobType
}

// CronTrigger fires the daily sweeps and the recurring pending sweep
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	slots []dailySlot

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   map[JobType]string // job type -> date last fired
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, sched *Scheduler, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		config:    config,
		scheduler: sched,
		logger:    logger,
		slots: []dailySlot{
			{
				hour:     config.AppointmentReminderHour,
				minute:   config.AppointmentReminderMinute,
				jobTypes: []JobType{JobTypeAppointmentReminders},
			},
			{
				hour:     config.PaymentReminderHour,
				minute:   config.PaymentReminderMinute,
				jobTypes: []JobType{JobTypePaymentReminders, JobTypeQuotationFollowUps},
			},
			{
				hour:     config.LinkCleanupHour,
				minute:   config.LinkCleanupMinute,
				jobTypes: []JobType{JobTypeLinkCleanup, JobTypeRevenueRefresh},
			},
		},
		lastRun: make(map[JobType]string),
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Duration("pending_sweep_interval", c.config.PendingSweepInterval),
		zap.Duration("check_interval", c.config.CheckInterval),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop drives both the daily clock checks and the pending sweep ticker
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	checkTicker := time.NewTicker(c.config.CheckInterval)
	defer checkTicker.Stop()

	sweepTicker := time.NewTicker(c.config.PendingSweepInterval)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-checkTicker.C:
			c.checkAndTrigger(time.Now())
		case <-sweepTicker.C:
			if err := c.scheduler.Schedule(JobTypePendingSweep); err != nil {
				c.logger.Error("Failed to schedule pending sweep", zap.Error(err))
			}
		}
	}
}

// checkAndTrigger fires any daily slot whose time has come and has not
// already run today
func (c *CronTrigger) checkAndTrigger(now time.Time) {
	currentDate := now.Format("2006-01-02")

	for _, slot := range c.slots {
		if now.Hour() != slot.hour || now.Minute() != slot.minute {
			continue
		}

		for _, jobType := range slot.jobTypes {
			c.mu.Lock()
			if c.lastRun[jobType] == currentDate {
				c.mu.Unlock()
				continue
			}
			c.lastRun[jobType] = currentDate
			c.mu.Unlock()

			c.logger.Info("Triggering daily job", zap.String("job_type", string(jobType)))
			if err := c.scheduler.Schedule(jobType); err != nil {
				c.logger.Error("Failed to schedule daily job",
					zap.String("job_type", string(jobType)),
					zap.Error(err),
				)
			}
		}
	}
}

// TriggerNow schedules a job of the given type immediately, bypassing the
// daily dedup. Used by the manual trigger endpoints.
func (c *CronTrigger) TriggerNow(jobType JobType) error {
	return c.scheduler.Schedule(jobType)
}
