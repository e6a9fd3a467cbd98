package org

import (
	"context"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchRepository defines persistence operations for branches
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Branch, error)
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Branch, error)
	// FindAll lists branches across all companies, for maintenance sweeps
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Branch, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, branch *Branch) error
	// UpdateRevenue persists only the denormalized revenue cache fields.
	// Writing to a missing branch is a no-op, not an error.
	UpdateRevenue(ctx context.Context, branchID uuid.UUID, breakdown RevenueBreakdown) error
	// UpdateEmployeeCount persists only the employee count cache field
	UpdateEmployeeCount(ctx context.Context, branchID uuid.UUID, count int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffRepository defines persistence operations for staff members
type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Staff, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Staff, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Staff, error)
	// FindActiveByBranch returns active, non-deleted staff in a branch
	FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]Staff, error)
	// CountActiveByBranch counts active, non-deleted staff in a branch
	CountActiveByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
}
