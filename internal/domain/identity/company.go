package identity

import (
	"strings"

	"github.com/lensflow/backend/internal/domain/shared"
)

// CompanyStatus represents the status of a company (tenant)
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "ACTIVE"
	CompanyStatusSuspended CompanyStatus = "SUSPENDED"
)

// Company is the tenant root. Every other aggregate in the system is
// scoped to a company through its CompanyID.
type Company struct {
	shared.BaseAggregateRoot
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	GSTIN   string
	Status  CompanyStatus
}

// NewCompany creates an active company
func NewCompany(name, email string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Status:            CompanyStatusActive,
	}, nil
}

// UpdateContact updates the company's contact details. Empty values
// leave the current field unchanged.
func (c *Company) UpdateContact(phone, address, city, state string) {
	if phone != "" {
		c.Phone = strings.TrimSpace(phone)
	}
	if address != "" {
		c.Address = strings.TrimSpace(address)
	}
	if city != "" {
		c.City = strings.TrimSpace(city)
	}
	if state != "" {
		c.State = strings.TrimSpace(state)
	}
	c.Touch()
	c.IncrementVersion()
}

// SetGSTIN records the company's GST registration number
func (c *Company) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}

	c.GSTIN = gstin
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Suspend blocks all logins for the company's users
func (c *Company) Suspend() error {
	if c.Status == CompanyStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Company is already suspended")
	}

	c.Status = CompanyStatusSuspended
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Reactivate restores a suspended company
func (c *Company) Reactivate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Company is already active")
	}

	c.Status = CompanyStatusActive
	c.Touch()
	c.IncrementVersion()
	return nil
}

// IsActive reports whether the company can be used
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}
