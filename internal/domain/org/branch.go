package org

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchStatus represents the status of a branch
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "ACTIVE"
	BranchStatusInactive BranchStatus = "INACTIVE"
	BranchStatusClosed   BranchStatus = "CLOSED"
)

// IsValid checks if the status is a valid BranchStatus
func (s BranchStatus) IsValid() bool {
	switch s {
	case BranchStatusActive, BranchStatusInactive, BranchStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of BranchStatus
func (s BranchStatus) String() string {
	return string(s)
}

// RevenueBreakdown is the denormalized revenue cache persisted on a branch.
// It is recomputed on demand and may be stale between recomputations.
type RevenueBreakdown struct {
	Invoices   decimal.Decimal `json:"invoices"`
	Bookings   decimal.Decimal `json:"bookings"`
	Quotations decimal.Decimal `json:"quotations"`
	Total      decimal.Decimal `json:"total"`
}

// NewRevenueBreakdown builds a breakdown from the three source sums.
// Total is always derived, never supplied.
func NewRevenueBreakdown(invoices, bookings, quotations decimal.Decimal) RevenueBreakdown {
	return RevenueBreakdown{
		Invoices:   invoices,
		Bookings:   bookings,
		Quotations: quotations,
		Total:      invoices.Add(bookings).Add(quotations),
	}
}

// ZeroRevenueBreakdown returns a breakdown with all components zero
func ZeroRevenueBreakdown() RevenueBreakdown {
	return NewRevenueBreakdown(decimal.Zero, decimal.Zero, decimal.Zero)
}

// IsConsistent reports whether Total equals the sum of the components
func (r RevenueBreakdown) IsConsistent() bool {
	return r.Total.Equal(r.Invoices.Add(r.Bookings).Add(r.Quotations))
}

// Branch represents a business location aggregate root.
// A branch belongs to exactly one company and is the unit of data
// isolation for bookings, staff, tasks and finance records.
type Branch struct {
	shared.CompanyAggregateRoot
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone"`
	EmployeeCount int              `json:"employee_count"`
	Revenue       RevenueBreakdown `json:"revenue"`
	RevenueAsOf   *time.Time       `json:"revenue_as_of"`
	Status        BranchStatus     `json:"status"`
}

// NewBranch creates a new branch
func NewBranch(companyID uuid.UUID, name, code, address string) (*Branch, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot exceed 100 characters")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot exceed 20 characters")
	}

	return &Branch{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Code:                 code,
		Address:              address,
		Revenue:              ZeroRevenueBreakdown(),
		Status:               BranchStatusActive,
	}, nil
}

// ApplyRevenueBreakdown overwrites the denormalized revenue cache.
// Last writer wins; concurrent recomputations are acceptable because
// the computation is idempotent against a stable snapshot.
func (b *Branch) ApplyRevenueBreakdown(breakdown RevenueBreakdown) {
	now := time.Now()
	b.Revenue = breakdown
	b.RevenueAsOf = &now
	b.UpdatedAt = now
}

// SetEmployeeCount updates the cached active staff count
func (b *Branch) SetEmployeeCount(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_EMPLOYEE_COUNT", "Employee count cannot be negative")
	}
	b.EmployeeCount = count
	b.Touch()
	return nil
}

// UpdateDetails updates the branch contact details
func (b *Branch) UpdateDetails(name, address, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot exceed 100 characters")
	}
	b.Name = name
	b.Address = address
	b.Phone = phone
	b.Touch()
	return nil
}

// Deactivate marks the branch inactive
func (b *Branch) Deactivate() error {
	if b.Status == BranchStatusClosed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deactivate branch in %s status", b.Status))
	}
	b.Status = BranchStatusInactive
	b.Touch()
	return nil
}

// Activate marks the branch active
func (b *Branch) Activate() error {
	if b.Status == BranchStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a closed branch")
	}
	b.Status = BranchStatusActive
	b.Touch()
	return nil
}

// Close permanently closes the branch
func (b *Branch) Close() error {
	if b.Status == BranchStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Branch is already closed")
	}
	b.Status = BranchStatusClosed
	b.Touch()
	return nil
}

// IsActive returns true if the branch is active
func (b *Branch) IsActive() bool {
	return b.Status == BranchStatusActive
}
