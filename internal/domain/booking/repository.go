package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchRevenue is one row of the per-branch booking revenue aggregation
type BranchRevenue struct {
	BranchID     uuid.UUID
	TotalRevenue decimal.Decimal
	Count        int64
}

// Repository defines persistence operations for bookings
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Booking, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Booking, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumCompletedRevenueByBranch sums the effective total of completed
	// bookings whose branch or legacy branch reference matches branchID.
	SumCompletedRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error)

	// RevenueByBranch groups booking revenue per branch for a company,
	// optionally restricted to functions dated within [startDate, endDate].
	// The date window matches either the primary function date or any
	// date in the legacy multi-event list.
	RevenueByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]BranchRevenue, error)

	// FindByFunctionDate returns confirmed bookings whose function falls
	// on the given calendar day, used for appointment reminders.
	FindByFunctionDate(ctx context.Context, date time.Time) ([]Booking, error)
}
