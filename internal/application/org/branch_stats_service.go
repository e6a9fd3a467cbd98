package org

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchStatsService recomputes the denormalized statistics cached on a
// branch: the revenue breakdown and the active employee count. The
// computation reads a stable snapshot and overwrites the cache, last
// writer wins.
type BranchStatsService struct {
	branchRepo    org.BranchRepository
	staffRepo     org.StaffRepository
	invoiceRepo   billing.InvoiceRepository
	quotationRepo billing.QuotationRepository
	bookingRepo   booking.Repository
	logger        *zap.Logger
}

// NewBranchStatsService creates a new BranchStatsService
func NewBranchStatsService(
	branchRepo org.BranchRepository,
	staffRepo org.StaffRepository,
	invoiceRepo billing.InvoiceRepository,
	quotationRepo billing.QuotationRepository,
	bookingRepo booking.Repository,
	logger *zap.Logger,
) *BranchStatsService {
	return &BranchStatsService{
		branchRepo:    branchRepo,
		staffRepo:     staffRepo,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// ComputeRevenueBreakdown sums the three revenue sources for a branch
// and persists the result onto the branch row. Paid invoices, completed
// bookings (matching either branch reference) and accepted quotations
// each contribute their effective total.
func (s *BranchStatsService) ComputeRevenueBreakdown(ctx context.Context, branchID uuid.UUID) (org.RevenueBreakdown, error) {
	invoices, err := s.invoiceRepo.SumPaidRevenueByBranch(ctx, branchID)
	if err != nil {
		return org.RevenueBreakdown{}, err
	}
	bookings, err := s.bookingRepo.SumCompletedRevenueByBranch(ctx, branchID)
	if err != nil {
		return org.RevenueBreakdown{}, err
	}
	quotations, err := s.quotationRepo.SumAcceptedRevenueByBranch(ctx, branchID)
	if err != nil {
		return org.RevenueBreakdown{}, err
	}

	breakdown := org.NewRevenueBreakdown(invoices, bookings, quotations)
	if err := s.branchRepo.UpdateRevenue(ctx, branchID, breakdown); err != nil {
		return org.RevenueBreakdown{}, err
	}
	return breakdown, nil
}

// UpdateEmployeeCount recounts active staff and persists the result
func (s *BranchStatsService) UpdateEmployeeCount(ctx context.Context, branchID uuid.UUID) (int64, error) {
	count, err := s.staffRepo.CountActiveByBranch(ctx, branchID)
	if err != nil {
		return 0, err
	}
	if err := s.branchRepo.UpdateEmployeeCount(ctx, branchID, int(count)); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateBranchStats recomputes the revenue breakdown and the employee
// count concurrently. The first error wins; the other computation still
// runs to completion.
func (s *BranchStatsService) UpdateBranchStats(ctx context.Context, branchID uuid.UUID) (*BranchStatsResult, error) {
	var (
		wg         sync.WaitGroup
		breakdown  org.RevenueBreakdown
		count      int64
		revenueErr error
		countErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		breakdown, revenueErr = s.ComputeRevenueBreakdown(ctx, branchID)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.UpdateEmployeeCount(ctx, branchID)
	}()
	wg.Wait()

	if revenueErr != nil {
		return nil, revenueErr
	}
	if countErr != nil {
		return nil, countErr
	}

	return &BranchStatsResult{
		BranchID: branchID,
		Revenue: RevenueBreakdownResponse{
			Invoices:   breakdown.Invoices,
			Bookings:   breakdown.Bookings,
			Quotations: breakdown.Quotations,
			Total:      breakdown.Total,
		},
		EmployeeCount: int(count),
	}, nil
}

// BranchStatsResult is the outcome of a stats recomputation
type BranchStatsResult struct {
	BranchID      uuid.UUID                `json:"branch_id"`
	Revenue       RevenueBreakdownResponse `json:"revenue"`
	EmployeeCount int                      `json:"employee_count"`
}

// RefreshAll recomputes stats for every branch of every company page by
// page. Per-branch failures are logged and skipped so one bad branch
// does not starve the rest of the sweep.
func (s *BranchStatsService) RefreshAll(ctx context.Context) error {
	branches, err := s.allBranches(ctx)
	if err != nil {
		return err
	}

	for i := range branches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.UpdateBranchStats(ctx, branches[i].ID); err != nil {
			s.logger.Warn("Branch stats refresh failed",
				zap.String("branch_id", branches[i].ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *BranchStatsService) allBranches(ctx context.Context) ([]org.Branch, error) {
	const pageSize = 200

	var all []org.Branch
	for page := 1; ; page++ {
		filter := shared.DefaultFilter()
		filter.Page = page
		filter.PageSize = pageSize
		batch, err := s.branchRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}
