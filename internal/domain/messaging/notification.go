package messaging

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/shared"
)

// NotificationType identifies the business event behind a message
type NotificationType string

const (
	TypeBookingConfirmed    NotificationType = "booking_confirmed"
	TypeQuotationCreated    NotificationType = "quotation_created"
	TypeTaskAssigned        NotificationType = "task_assigned"
	TypeStaffAssigned       NotificationType = "staff_assigned"
	TypeTaskSkipped         NotificationType = "task_skipped"
	TypePaymentReminder     NotificationType = "payment_reminder"
	TypeAppointmentReminder NotificationType = "appointment_reminder"
	TypeFollowUp            NotificationType = "follow_up"
)

// IsValid checks if the notification type is known
func (t NotificationType) IsValid() bool {
	switch t {
	case TypeBookingConfirmed, TypeQuotationCreated, TypeTaskAssigned,
		TypeStaffAssigned, TypeTaskSkipped, TypePaymentReminder,
		TypeAppointmentReminder, TypeFollowUp:
		return true
	}
	return false
}

// String returns the string representation of NotificationType
func (t NotificationType) String() string {
	return string(t)
}

// RecipientType distinguishes who a notification addresses
type RecipientType string

const (
	RecipientClient RecipientType = "client"
	RecipientStaff  RecipientType = "staff"
)

// Recipient is the addressee of a notification
type Recipient struct {
	Type        RecipientType `json:"type"`
	RecipientID uuid.UUID     `json:"recipient_id"`
	Contact     string        `json:"contact"`
}

// Automation captures whether and why a notification was machine-generated
type Automation struct {
	IsAutomated  bool       `json:"is_automated"`
	Trigger      string     `json:"trigger"`
	NextFollowUp *time.Time `json:"next_follow_up"`
}

// NotificationStatus represents the delivery status of a notification
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "PENDING"
	NotificationSent      NotificationStatus = "SENT"
	NotificationDelivered NotificationStatus = "DELIVERED"
	NotificationRead      NotificationStatus = "READ"
	NotificationFailed    NotificationStatus = "FAILED"
)

// IsValid checks if the status is a valid NotificationStatus
func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationPending, NotificationSent, NotificationDelivered,
		NotificationRead, NotificationFailed:
		return true
	}
	return false
}

// DefaultMaxRetries is how many send attempts a notification gets
// before it is parked as failed
const DefaultMaxRetries = 3

// Notification represents an outbound message aggregate root
type Notification struct {
	shared.CompanyAggregateRoot
	BranchID   uuid.UUID          `json:"branch_id"`
	Type       NotificationType   `json:"type"`
	Recipient  Recipient          `json:"recipient"`
	Message    string             `json:"message"`
	Language   client.Language    `json:"language"`
	SmartLink  *SmartLink         `json:"smart_link"`
	Automation Automation         `json:"automation"`
	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  string             `json:"last_error"`
	SentAt     *time.Time         `json:"sent_at"`
	ReadAt     *time.Time         `json:"read_at"`
}

// NewNotification creates a pending notification
func NewNotification(
	companyID, branchID uuid.UUID,
	notifType NotificationType,
	recipient Recipient,
	message string,
	language client.Language,
) (*Notification, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION_TYPE", "Notification type is not valid")
	}
	if recipient.RecipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if recipient.Contact == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient contact cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}
	if !language.IsValid() {
		language = client.LanguageHindi
	}

	return &Notification{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Type:                 notifType,
		Recipient:            recipient,
		Message:              message,
		Language:             language,
		Status:               NotificationPending,
		MaxRetries:           DefaultMaxRetries,
	}, nil
}

// AttachSmartLink adds a capability link to the notification
func (n *Notification) AttachSmartLink(link *SmartLink) error {
	if link == nil {
		return shared.NewDomainError("INVALID_LINK", "Smart link cannot be nil")
	}
	n.SmartLink = link
	n.Touch()
	return nil
}

// MarkAutomated records the trigger that generated this notification
func (n *Notification) MarkAutomated(trigger string, nextFollowUp *time.Time) {
	n.Automation = Automation{IsAutomated: true, Trigger: trigger, NextFollowUp: nextFollowUp}
	n.Touch()
}

// MarkSent records a successful send
func (n *Notification) MarkSent() error {
	if n.Status != NotificationPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send notification in %s status", n.Status))
	}
	now := time.Now()
	n.Status = NotificationSent
	n.SentAt = &now
	n.UpdatedAt = now
	return nil
}

// MarkDelivered records delivery confirmation
func (n *Notification) MarkDelivered() error {
	if n.Status != NotificationSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver notification in %s status", n.Status))
	}
	n.Status = NotificationDelivered
	n.Touch()
	return nil
}

// MarkRead records that the recipient opened the message. Smart link
// resolution counts as a read.
func (n *Notification) MarkRead() {
	if n.Status == NotificationFailed {
		return
	}
	now := time.Now()
	n.Status = NotificationRead
	n.ReadAt = &now
	n.UpdatedAt = now
}

// RecordFailure notes a failed send attempt. The notification stays
// pending for another try until the retry budget is spent, then parks
// as failed. No backoff is applied between attempts.
func (n *Notification) RecordFailure(cause string) {
	n.RetryCount++
	n.LastError = cause
	if n.RetryCount >= n.MaxRetries {
		n.Status = NotificationFailed
	}
	n.Touch()
}

// CanRetry reports whether another send attempt is allowed
func (n *Notification) CanRetry() bool {
	return n.Status == NotificationPending && n.RetryCount < n.MaxRetries
}

// AccessLink authorizes and consumes one access of the attached smart
// link, marking the notification read on success. The two rejection
// conditions surface unchanged so the transport layer can map them
// to 404 and 403.
func (n *Notification) AccessLink(now time.Time) error {
	if n.SmartLink == nil {
		return shared.ErrNotFound
	}
	if err := n.SmartLink.Authorize(now); err != nil {
		return err
	}
	n.SmartLink.RecordAccess()
	n.MarkRead()
	return nil
}
