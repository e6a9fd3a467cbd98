package org

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

// StaffService handles staff management operations. Writes that change
// branch membership also refresh the cached employee counts.
type StaffService struct {
	staffRepo  org.StaffRepository
	branchRepo org.BranchRepository
	stats      *BranchStatsService
	logger     *zap.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(
	staffRepo org.StaffRepository,
	branchRepo org.BranchRepository,
	stats *BranchStatsService,
	logger *zap.Logger,
) *StaffService {
	return &StaffService{
		staffRepo:  staffRepo,
		branchRepo: branchRepo,
		stats:      stats,
		logger:     logger,
	}
}

// Create creates a new staff member in a branch
func (s *StaffService) Create(ctx context.Context, companyID uuid.UUID, req CreateStaffRequest) (*StaffResponse, error) {
	if _, err := s.branchRepo.FindByIDForCompany(ctx, companyID, req.BranchID); err != nil {
		return nil, err
	}

	staff, err := org.NewStaff(companyID, req.BranchID, req.UserID, req.Name, req.Designation, parseSkills(req.Skills))
	if err != nil {
		return nil, err
	}
	staff.Phone = req.Phone
	staff.Email = req.Email

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.refreshEmployeeCount(ctx, req.BranchID)

	response := ToStaffResponse(staff)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, companyID, staffID uuid.UUID) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, staffID)
	if err != nil {
		return nil, err
	}

	response := ToStaffResponse(staff)
	return &response, nil
}

// List retrieves staff with filtering and pagination
func (s *StaffService) List(ctx context.Context, companyID uuid.UUID, filter StaffListFilter) ([]StaffResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Skill != "" {
		domainFilter.Filters["skill"] = filter.Skill
	}

	staff, err := s.staffRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.staffRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStaffResponses(staff), total, nil
}

// Update updates a staff member
func (s *StaffService) Update(ctx context.Context, companyID, staffID uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, staffID)
	if err != nil {
		return nil, err
	}

	previousBranch := staff.BranchID

	if req.Name != nil && *req.Name != "" {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Designation != nil {
		if err := staff.UpdateDesignation(*req.Designation); err != nil {
			return nil, err
		}
	}
	if req.Skills != nil {
		if err := staff.UpdateSkills(parseSkills(req.Skills)); err != nil {
			return nil, err
		}
	}
	if req.BranchID != nil && *req.BranchID != staff.BranchID {
		if _, err := s.branchRepo.FindByIDForCompany(ctx, companyID, *req.BranchID); err != nil {
			return nil, err
		}
		if err := staff.TransferToBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch org.StaffStatus(*req.Status) {
		case org.StaffStatusActive:
			if err := staff.Activate(); err != nil {
				return nil, err
			}
		case org.StaffStatusInactive:
			staff.Deactivate()
		case org.StaffStatusOnLeave:
			staff.Status = org.StaffStatusOnLeave
			staff.Touch()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown staff status: "+*req.Status)
		}
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.refreshEmployeeCount(ctx, staff.BranchID)
	if previousBranch != staff.BranchID {
		s.refreshEmployeeCount(ctx, previousBranch)
	}

	response := ToStaffResponse(staff)
	return &response, nil
}

// Delete soft deletes a staff member
func (s *StaffService) Delete(ctx context.Context, companyID, staffID uuid.UUID) error {
	staff, err := s.staffRepo.FindByIDForCompany(ctx, companyID, staffID)
	if err != nil {
		return err
	}

	staff.MarkDeleted()
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return err
	}

	s.refreshEmployeeCount(ctx, staff.BranchID)
	return nil
}

// refreshEmployeeCount keeps the branch cache in step with staff writes.
// The count is a derived cache, so a failed refresh is logged, not fatal.
func (s *StaffService) refreshEmployeeCount(ctx context.Context, branchID uuid.UUID) {
	if _, err := s.stats.UpdateEmployeeCount(ctx, branchID); err != nil {
		s.logger.Warn("Employee count refresh failed",
			zap.String("branch_id", branchID.String()),
			zap.Error(err),
		)
	}
}
