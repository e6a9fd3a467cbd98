package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// Language is the client's preferred message language
type Language string

const (
	LanguageHindi   Language = "hi"
	LanguageEnglish Language = "en"
)

// IsValid checks if the language is supported
func (l Language) IsValid() bool {
	return l == LanguageHindi || l == LanguageEnglish
}

// ClientStatus represents the relationship status with a client
type ClientStatus string

const (
	ClientStatusLead     ClientStatus = "LEAD"
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

// IsValid checks if the status is a valid ClientStatus
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusLead, ClientStatusActive, ClientStatusInactive:
		return true
	}
	return false
}

// Client represents a customer aggregate root
type Client struct {
	shared.CompanyAggregateRoot
	BranchID      uuid.UUID    `json:"branch_id"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Address       string       `json:"address"`
	Language      Language     `json:"language"`
	Status        ClientStatus `json:"status"`
	LastContactAt *time.Time   `json:"last_contact_at"`
	Notes         string       `json:"notes"`
}

// NewClient creates a new client
func NewClient(companyID, branchID uuid.UUID, name, phone string) (*Client, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot exceed 100 characters")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Client phone cannot be empty")
	}

	return &Client{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Name:                 name,
		Phone:                phone,
		Language:             LanguageHindi,
		Status:               ClientStatusLead,
	}, nil
}

// UpdateContact updates the client's contact details
func (c *Client) UpdateContact(phone, email, address string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Client phone cannot be empty")
	}
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Touch()
	return nil
}

// SetLanguage sets the preferred message language
func (c *Client) SetLanguage(language Language) error {
	if !language.IsValid() {
		return shared.NewDomainError("INVALID_LANGUAGE", "Unsupported language: "+string(language))
	}
	c.Language = language
	c.Touch()
	return nil
}

// MarkContacted records an outbound contact with the client
func (c *Client) MarkContacted() {
	now := time.Now()
	c.LastContactAt = &now
	c.UpdatedAt = now
}

// Promote converts a lead into an active client
func (c *Client) Promote() error {
	if c.Status != ClientStatusLead {
		return shared.NewDomainError("INVALID_STATE", "Only leads can be promoted")
	}
	c.Status = ClientStatusActive
	c.Touch()
	return nil
}

// Deactivate marks the client inactive
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.Touch()
}
