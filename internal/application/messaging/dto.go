package messaging

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/messaging"
)

// SmartLinkResponse describes a capability link without its counters
type SmartLinkResponse struct {
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	ResourceType string    `json:"resource_type"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	AccessCount  int       `json:"access_count"`
	MaxAccess    int       `json:"max_access"`
	IsActive     bool      `json:"is_active"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID            uuid.UUID          `json:"id"`
	CompanyID     uuid.UUID          `json:"company_id"`
	BranchID      uuid.UUID          `json:"branch_id"`
	Type          string             `json:"type"`
	RecipientType string             `json:"recipient_type"`
	RecipientID   uuid.UUID          `json:"recipient_id"`
	Contact       string             `json:"contact"`
	Message       string             `json:"message"`
	Language      string             `json:"language"`
	SmartLink     *SmartLinkResponse `json:"smart_link,omitempty"`
	IsAutomated   bool               `json:"is_automated"`
	Trigger       string             `json:"trigger,omitempty"`
	Status        string             `json:"status"`
	RetryCount    int                `json:"retry_count"`
	LastError     string             `json:"last_error,omitempty"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	ReadAt        *time.Time         `json:"read_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NotificationListFilter holds list query parameters for notifications
type NotificationListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	BranchID    string `form:"branch_id"`
	Type        string `form:"type"`
	Status      string `form:"status"`
	RecipientID string `form:"recipient_id"`
}

// LinkResolution is what a successful smart link access returns: the
// resource the link points at, for the public page to render.
type LinkResolution struct {
	ResourceType string    `json:"resource_type"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Language     string    `json:"language"`
	Message      string    `json:"message"`
}

// LinkPreview is the metadata endpoint's shape. Previewing does not
// consume the access budget.
type LinkPreview struct {
	ResourceType string    `json:"resource_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsActive     bool      `json:"is_active"`
	IsExpired    bool      `json:"is_expired"`
	AccessesLeft int       `json:"accesses_left"`
}

// ToSmartLinkResponse maps a smart link to its response shape
func ToSmartLinkResponse(l *messaging.SmartLink) *SmartLinkResponse {
	if l == nil {
		return nil
	}
	return &SmartLinkResponse{
		Token:        l.Token,
		URL:          l.URL,
		ResourceType: string(l.ResourceType),
		ResourceID:   l.ResourceID,
		ExpiresAt:    l.ExpiresAt,
		AccessCount:  l.AccessCount,
		MaxAccess:    l.MaxAccess,
		IsActive:     l.IsActive,
	}
}

// ToNotificationResponse maps a notification to its response shape
func ToNotificationResponse(n *messaging.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		CompanyID:     n.CompanyID,
		BranchID:      n.BranchID,
		Type:          n.Type.String(),
		RecipientType: string(n.Recipient.Type),
		RecipientID:   n.Recipient.RecipientID,
		Contact:       n.Recipient.Contact,
		Message:       n.Message,
		Language:      string(n.Language),
		SmartLink:     ToSmartLinkResponse(n.SmartLink),
		IsAutomated:   n.Automation.IsAutomated,
		Trigger:       n.Automation.Trigger,
		Status:        string(n.Status),
		RetryCount:    n.RetryCount,
		LastError:     n.LastError,
		SentAt:        n.SentAt,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}

// ToNotificationResponses maps a slice of notifications
func ToNotificationResponses(notifications []messaging.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses
}
