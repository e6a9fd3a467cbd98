package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/finance"
)

// LoanService handles staff loans and their repayment
type LoanService struct {
	loanRepo finance.LoanRepository
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo finance.LoanRepository) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
	}
}

// Create issues a new loan to a staff member
func (s *LoanService) Create(ctx context.Context, companyID uuid.UUID, req CreateLoanRequest) (*LoanResponse, error) {
	issuedAt := time.Now()
	if req.IssuedAt != nil {
		issuedAt = *req.IssuedAt
	}

	loan, err := finance.NewLoan(companyID, req.BranchID, req.StaffID, req.Principal, req.Reason, issuedAt)
	if err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// GetByID retrieves a loan by ID
func (s *LoanService) GetByID(ctx context.Context, companyID, loanID uuid.UUID) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// List retrieves loans with filtering and pagination
func (s *LoanService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]LoanResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.loanRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLoanResponses(loans), total, nil
}

// Repay applies a repayment installment to a loan
func (s *LoanService) Repay(ctx context.Context, companyID, loanID uuid.UUID, req RepayLoanRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if err := loan.RecordRepayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// Waive forgives a loan's remaining balance
func (s *LoanService) Waive(ctx context.Context, companyID, loanID uuid.UUID) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if err := loan.Waive(); err != nil {
		return nil, err
	}

	if err := s.loanRepo.Save(ctx, loan); err != nil {
		return nil, err
	}

	response := ToLoanResponse(loan)
	return &response, nil
}

// AdvanceService handles salary advances
type AdvanceService struct {
	advanceRepo finance.AdvanceRepository
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(advanceRepo finance.AdvanceRepository) *AdvanceService {
	return &AdvanceService{
		advanceRepo: advanceRepo,
	}
}

// Create issues a new salary advance
func (s *AdvanceService) Create(ctx context.Context, companyID uuid.UUID, req CreateAdvanceRequest) (*AdvanceResponse, error) {
	issuedAt := time.Now()
	if req.IssuedAt != nil {
		issuedAt = *req.IssuedAt
	}

	advance, err := finance.NewAdvance(companyID, req.BranchID, req.StaffID, req.Amount, req.Reason, issuedAt)
	if err != nil {
		return nil, err
	}

	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}

	response := ToAdvanceResponse(advance)
	return &response, nil
}

// List retrieves advances with filtering and pagination
func (s *AdvanceService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]AdvanceResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	advances, err := s.advanceRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.advanceRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAdvanceResponses(advances), total, nil
}

// Settle marks an advance recovered from payroll
func (s *AdvanceService) Settle(ctx context.Context, companyID, advanceID uuid.UUID) (*AdvanceResponse, error) {
	advance, err := s.advanceRepo.FindByIDForCompany(ctx, companyID, advanceID)
	if err != nil {
		return nil, err
	}
	if err := advance.Settle(); err != nil {
		return nil, err
	}

	if err := s.advanceRepo.Save(ctx, advance); err != nil {
		return nil, err
	}

	response := ToAdvanceResponse(advance)
	return &response, nil
}
