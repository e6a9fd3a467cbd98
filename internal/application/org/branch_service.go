package org

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchService handles branch management operations
type BranchService struct {
	branchRepo org.BranchRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo org.BranchRepository) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
	}
}

// Create creates a new branch
func (s *BranchService) Create(ctx context.Context, companyID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error) {
	// Branch codes are unique per company
	_, err := s.branchRepo.FindByCode(ctx, companyID, req.Code)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch with this code already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	branch, err := org.NewBranch(companyID, req.Name, req.Code, req.Address)
	if err != nil {
		return nil, err
	}
	branch.Phone = req.Phone

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a branch by ID
func (s *BranchService) GetByID(ctx context.Context, companyID, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves branches with filtering and pagination
func (s *BranchService) List(ctx context.Context, companyID uuid.UUID, filter BranchListFilter) ([]BranchResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	branches, err := s.branchRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.branchRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBranchResponses(branches), total, nil
}

// Update updates a branch's details
func (s *BranchService) Update(ctx context.Context, companyID, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}

	name := branch.Name
	address := branch.Address
	phone := branch.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := branch.UpdateDetails(name, address, phone); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// Activate marks a branch active
func (s *BranchService) Activate(ctx context.Context, companyID, branchID uuid.UUID) (*BranchResponse, error) {
	return s.transition(ctx, companyID, branchID, (*org.Branch).Activate)
}

// Deactivate marks a branch inactive
func (s *BranchService) Deactivate(ctx context.Context, companyID, branchID uuid.UUID) (*BranchResponse, error) {
	return s.transition(ctx, companyID, branchID, (*org.Branch).Deactivate)
}

// Close permanently closes a branch
func (s *BranchService) Close(ctx context.Context, companyID, branchID uuid.UUID) (*BranchResponse, error) {
	return s.transition(ctx, companyID, branchID, (*org.Branch).Close)
}

func (s *BranchService) transition(ctx context.Context, companyID, branchID uuid.UUID, apply func(*org.Branch) error) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	if err := apply(branch); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// Delete removes a branch
func (s *BranchService) Delete(ctx context.Context, companyID, branchID uuid.UUID) error {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return err
	}
	return s.branchRepo.Delete(ctx, branch.ID)
}
