package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/client"
	"github.com/lensflow/backend/internal/domain/messaging"
)

// NotificationModel is the persistence model for the Notification
// aggregate root. The smart link is embedded as columns rather than a
// separate table: a link never outlives its notification, and the
// token lookup stays a single indexed read.
type NotificationModel struct {
	CompanyAggregateModel
	BranchID         uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Type             messaging.NotificationType `gorm:"type:varchar(30);not null;index"`
	RecipientType    messaging.RecipientType    `gorm:"type:varchar(10);not null"`
	RecipientID      uuid.UUID                  `gorm:"type:uuid;not null;index"`
	RecipientContact string                     `gorm:"type:varchar(255);not null"`
	Message          string                     `gorm:"type:text;not null"`
	Language         client.Language            `gorm:"type:varchar(5);not null;default:'hi'"`

	LinkToken        *string                 `gorm:"type:varchar(64);uniqueIndex"`
	LinkURL          string                  `gorm:"type:varchar(500)"`
	LinkResourceType *messaging.ResourceType `gorm:"type:varchar(20)"`
	LinkResourceID   *uuid.UUID              `gorm:"type:uuid"`
	LinkExpiresAt    *time.Time              `gorm:"index"`
	LinkAccessCount  int                     `gorm:"not null;default:0"`
	LinkMaxAccess    int                     `gorm:"not null;default:0"`
	LinkIsActive     *bool                   `gorm:"index"`

	IsAutomated  bool       `gorm:"not null;default:false"`
	Trigger      string     `gorm:"type:varchar(100)"`
	NextFollowUp *time.Time

	Status     messaging.NotificationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RetryCount int                          `gorm:"not null;default:0"`
	MaxRetries int                          `gorm:"not null;default:3"`
	LastError  string                       `gorm:"type:varchar(500)"`
	SentAt     *time.Time
	ReadAt     *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *messaging.Notification {
	n := &messaging.Notification{
		BranchID: m.BranchID,
		Type:     m.Type,
		Recipient: messaging.Recipient{
			Type:        m.RecipientType,
			RecipientID: m.RecipientID,
			Contact:     m.RecipientContact,
		},
		Message:  m.Message,
		Language: m.Language,
		Automation: messaging.Automation{
			IsAutomated:  m.IsAutomated,
			Trigger:      m.Trigger,
			NextFollowUp: m.NextFollowUp,
		},
		Status:     m.Status,
		RetryCount: m.RetryCount,
		MaxRetries: m.MaxRetries,
		LastError:  m.LastError,
		SentAt:     m.SentAt,
		ReadAt:     m.ReadAt,
	}
	if m.LinkToken != nil && m.LinkResourceType != nil && m.LinkResourceID != nil && m.LinkExpiresAt != nil {
		active := false
		if m.LinkIsActive != nil {
			active = *m.LinkIsActive
		}
		n.SmartLink = &messaging.SmartLink{
			Token:        *m.LinkToken,
			URL:          m.LinkURL,
			ResourceType: *m.LinkResourceType,
			ResourceID:   *m.LinkResourceID,
			ExpiresAt:    *m.LinkExpiresAt,
			AccessCount:  m.LinkAccessCount,
			MaxAccess:    m.LinkMaxAccess,
			IsActive:     active,
		}
	}
	m.PopulateCompanyAggregateRoot(&n.CompanyAggregateRoot)
	return n
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *messaging.Notification) {
	m.FromDomainCompanyAggregateRoot(n.CompanyAggregateRoot)
	m.BranchID = n.BranchID
	m.Type = n.Type
	m.RecipientType = n.Recipient.Type
	m.RecipientID = n.Recipient.RecipientID
	m.RecipientContact = n.Recipient.Contact
	m.Message = n.Message
	m.Language = n.Language
	m.IsAutomated = n.Automation.IsAutomated
	m.Trigger = n.Automation.Trigger
	m.NextFollowUp = n.Automation.NextFollowUp
	m.Status = n.Status
	m.RetryCount = n.RetryCount
	m.MaxRetries = n.MaxRetries
	m.LastError = n.LastError
	m.SentAt = n.SentAt
	m.ReadAt = n.ReadAt

	if link := n.SmartLink; link != nil {
		token := link.Token
		resourceType := link.ResourceType
		resourceID := link.ResourceID
		expiresAt := link.ExpiresAt
		active := link.IsActive
		m.LinkToken = &token
		m.LinkURL = link.URL
		m.LinkResourceType = &resourceType
		m.LinkResourceID = &resourceID
		m.LinkExpiresAt = &expiresAt
		m.LinkAccessCount = link.AccessCount
		m.LinkMaxAccess = link.MaxAccess
		m.LinkIsActive = &active
	} else {
		m.LinkToken = nil
		m.LinkURL = ""
		m.LinkResourceType = nil
		m.LinkResourceID = nil
		m.LinkExpiresAt = nil
		m.LinkAccessCount = 0
		m.LinkMaxAccess = 0
		m.LinkIsActive = nil
	}
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification.
func NotificationModelFromDomain(n *messaging.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
