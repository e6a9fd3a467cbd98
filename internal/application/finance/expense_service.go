package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
)

// ExpenseService handles ad-hoc expense records
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
	}
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, companyID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	incurredAt := time.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	expense, err := finance.NewExpense(companyID, req.BranchID, finance.ExpenseCategory(req.Category), req.Amount, req.Description, incurredAt)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, companyID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, companyID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
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
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	expenses, err := s.expenseRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToExpenseResponses(expenses), total, nil
}

// Update replaces an expense's details
func (s *ExpenseService) Update(ctx context.Context, companyID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}

	category := expense.Category
	amount := expense.Amount
	description := expense.Description
	incurredAt := expense.IncurredAt
	if req.Category != nil {
		category = finance.ExpenseCategory(*req.Category)
	}
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}
	if err := expense.Update(category, amount, description, incurredAt); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense record
func (s *ExpenseService) Delete(ctx context.Context, companyID, expenseID uuid.UUID) error {
	expense, err := s.expenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, expense.ID)
}

// DailyExpenseService handles petty-cash daily expense entries
type DailyExpenseService struct {
	dailyExpenseRepo finance.DailyExpenseRepository
}

// NewDailyExpenseService creates a new DailyExpenseService
func NewDailyExpenseService(dailyExpenseRepo finance.DailyExpenseRepository) *DailyExpenseService {
	return &DailyExpenseService{
		dailyExpenseRepo: dailyExpenseRepo,
	}
}

// Create records a new daily expense entry
func (s *DailyExpenseService) Create(ctx context.Context, companyID uuid.UUID, req CreateDailyExpenseRequest) (*DailyExpenseResponse, error) {
	expense, err := finance.NewDailyExpense(companyID, req.BranchID, req.Date, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.dailyExpenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToDailyExpenseResponse(expense)
	return &response, nil
}

// List retrieves daily expenses with filtering and pagination
func (s *DailyExpenseService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]DailyExpenseResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	expenses, err := s.dailyExpenseRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.dailyExpenseRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDailyExpenseResponses(expenses), total, nil
}

// Delete removes a daily expense entry
func (s *DailyExpenseService) Delete(ctx context.Context, companyID, expenseID uuid.UUID) error {
	expense, err := s.dailyExpenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return err
	}
	return s.dailyExpenseRepo.Delete(ctx, expense.ID)
}

// FixedExpenseService handles recurring branch expenses
type FixedExpenseService struct {
	fixedExpenseRepo finance.FixedExpenseRepository
}

// NewFixedExpenseService creates a new FixedExpenseService
func NewFixedExpenseService(fixedExpenseRepo finance.FixedExpenseRepository) *FixedExpenseService {
	return &FixedExpenseService{
		fixedExpenseRepo: fixedExpenseRepo,
	}
}

// Create registers a new recurring expense
func (s *FixedExpenseService) Create(ctx context.Context, companyID uuid.UUID, req CreateFixedExpenseRequest) (*FixedExpenseResponse, error) {
	expense, err := finance.NewFixedExpense(
		companyID,
		req.BranchID,
		finance.ExpenseCategory(req.Category),
		req.Amount,
		finance.RecurrenceInterval(req.Recurrence),
		req.StartDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.fixedExpenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToFixedExpenseResponse(expense)
	return &response, nil
}

// List retrieves recurring expenses with filtering and pagination
func (s *FixedExpenseService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]FixedExpenseResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	expenses, err := s.fixedExpenseRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.fixedExpenseRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFixedExpenseResponses(expenses), total, nil
}

// Terminate ends a recurring expense as of the given date
func (s *FixedExpenseService) Terminate(ctx context.Context, companyID, expenseID uuid.UUID, req TerminateFixedExpenseRequest) (*FixedExpenseResponse, error) {
	expense, err := s.fixedExpenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := expense.Terminate(req.EndDate); err != nil {
		return nil, err
	}

	if err := s.fixedExpenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToFixedExpenseResponse(expense)
	return &response, nil
}

// Delete removes a recurring expense
func (s *FixedExpenseService) Delete(ctx context.Context, companyID, expenseID uuid.UUID) error {
	expense, err := s.fixedExpenseRepo.FindByIDForCompany(ctx, companyID, expenseID)
	if err != nil {
		return err
	}
	return s.fixedExpenseRepo.Delete(ctx, expense.ID)
}

// toDomainFilter maps the shared list query shape onto a domain filter
func toDomainFilter(filter ListFilter) shared.Filter {
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
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != "" {
		domainFilter.Filters["branch_id"] = filter.BranchID
	}
	if filter.StaffID != "" {
		domainFilter.Filters["staff_id"] = filter.StaffID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
