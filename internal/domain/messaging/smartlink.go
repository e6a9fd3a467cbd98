package messaging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

const (
	// SmartLinkTokenBytes is the entropy of a link token
	SmartLinkTokenBytes = 32
	// DefaultLinkValidity is how long a smart link stays usable
	DefaultLinkValidity = 30 * 24 * time.Hour
	// DefaultMaxAccess caps how many times a smart link resolves
	DefaultMaxAccess = 10
)

// ResourceType identifies what record a smart link resolves to
type ResourceType string

const (
	ResourceQuotation ResourceType = "quotation"
	ResourceBooking   ResourceType = "booking"
	ResourceInvoice   ResourceType = "invoice"
	ResourceTask      ResourceType = "task"
)

// IsValid checks if the resource type is known
func (r ResourceType) IsValid() bool {
	switch r {
	case ResourceQuotation, ResourceBooking, ResourceInvoice, ResourceTask:
		return true
	}
	return false
}

// SmartLink is a bounded-use, time-limited capability URL. The token
// stands in for authentication on public client-facing links: whoever
// holds it may resolve the linked resource until the link expires or
// its access budget runs out.
type SmartLink struct {
	Token        string       `json:"token"`
	URL          string       `json:"url"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   uuid.UUID    `json:"resource_id"`
	ExpiresAt    time.Time    `json:"expires_at"`
	AccessCount  int          `json:"access_count"`
	MaxAccess    int          `json:"max_access"`
	IsActive     bool         `json:"is_active"`
}

// NewSmartLink mints a link with a cryptographically random token,
// the default validity window and access budget.
func NewSmartLink(baseURL string, resourceType ResourceType, resourceID uuid.UUID) (*SmartLink, error) {
	if !resourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RESOURCE_TYPE", "Smart link resource type is not valid")
	}
	if resourceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Smart link resource ID cannot be empty")
	}

	raw := make([]byte, SmartLinkTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate smart link token: %w", err)
	}
	token := hex.EncodeToString(raw)

	return &SmartLink{
		Token:        token,
		URL:          fmt.Sprintf("%s/links/%s", baseURL, token),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ExpiresAt:    time.Now().Add(DefaultLinkValidity),
		MaxAccess:    DefaultMaxAccess,
		IsActive:     true,
	}, nil
}

// Authorize checks both rejection conditions independently: an expired
// or deactivated link fails with LINK_EXPIRED regardless of remaining
// budget, and an exhausted link fails with LINK_ACCESS_EXCEEDED even
// if still within its validity window.
func (l *SmartLink) Authorize(now time.Time) error {
	if !l.IsActive || now.After(l.ExpiresAt) {
		return shared.ErrLinkExpired
	}
	if l.AccessCount >= l.MaxAccess {
		return shared.ErrLinkAccessExceeded
	}
	return nil
}

// RecordAccess consumes one unit of the access budget. Callers must
// Authorize first.
func (l *SmartLink) RecordAccess() {
	l.AccessCount++
}

// Deactivate retires the link ahead of its natural expiry
func (l *SmartLink) Deactivate() {
	l.IsActive = false
}

// IsExpired reports whether the validity window has lapsed
func (l *SmartLink) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
