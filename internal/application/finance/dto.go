package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/finance"
)

// =============================================================================
// Analytics DTOs
// =============================================================================

// FinanceAnalyticsRequest holds the optional date window of an
// analytics query, "YYYY-MM-DD" form
type FinanceAnalyticsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// BranchFinance is the merged per-branch analytics row
type BranchFinance struct {
	BranchID         uuid.UUID                  `json:"branch_id"`
	TotalExpenses    decimal.Decimal            `json:"total_expenses"`
	ExpenseBreakdown map[string]decimal.Decimal `json:"expense_breakdown"`
	BookingRevenue   decimal.Decimal            `json:"booking_revenue"`
	BookingCount     int64                      `json:"booking_count"`
	Net              decimal.Decimal            `json:"net"`
}

// FinanceAnalyticsResponse is the company-wide analytics result
type FinanceAnalyticsResponse struct {
	CompanyID uuid.UUID       `json:"company_id"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	Branches  []BranchFinance `json:"branches"`
}

// =============================================================================
// Expense DTOs
// =============================================================================

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	BranchID    uuid.UUID       `json:"branch_id" binding:"required"`
	Category    string          `json:"category" binding:"required,max=50"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	IncurredAt  *time.Time      `json:"incurred_at"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	IncurredAt  *time.Time       `json:"incurred_at"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IncurredAt  time.Time       `json:"incurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListFilter holds list query parameters for expenses
type ExpenseListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	BranchID string `form:"branch_id"`
	Category string `form:"category"`
}

// ToExpenseResponse maps an expense aggregate to its response shape
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		BranchID:    e.BranchID,
		Category:    e.Category.String(),
		Amount:      e.Amount,
		Description: e.Description,
		IncurredAt:  e.IncurredAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseResponses maps a slice of expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// =============================================================================
// Daily expense DTOs
// =============================================================================

// CreateDailyExpenseRequest represents a request to record a daily expense
type CreateDailyExpenseRequest struct {
	BranchID    uuid.UUID       `json:"branch_id" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// DailyExpenseResponse represents a daily expense in API responses
type DailyExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToDailyExpenseResponse maps a daily expense to its response shape
func ToDailyExpenseResponse(e *finance.DailyExpense) DailyExpenseResponse {
	return DailyExpenseResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		BranchID:    e.BranchID,
		Date:        e.Date,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToDailyExpenseResponses maps a slice of daily expenses
func ToDailyExpenseResponses(expenses []finance.DailyExpense) []DailyExpenseResponse {
	responses := make([]DailyExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToDailyExpenseResponse(&expenses[i])
	}
	return responses
}

// =============================================================================
// Fixed expense DTOs
// =============================================================================

// CreateFixedExpenseRequest represents a request to create a recurring expense
type CreateFixedExpenseRequest struct {
	BranchID   uuid.UUID       `json:"branch_id" binding:"required"`
	Category   string          `json:"category" binding:"required,max=50"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Recurrence string          `json:"recurrence" binding:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
}

// TerminateFixedExpenseRequest ends a recurring expense
type TerminateFixedExpenseRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

// FixedExpenseResponse represents a recurring expense in API responses
type FixedExpenseResponse struct {
	ID         uuid.UUID       `json:"id"`
	CompanyID  uuid.UUID       `json:"company_id"`
	BranchID   uuid.UUID       `json:"branch_id"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Recurrence string          `json:"recurrence"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToFixedExpenseResponse maps a recurring expense to its response shape
func ToFixedExpenseResponse(e *finance.FixedExpense) FixedExpenseResponse {
	return FixedExpenseResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		BranchID:   e.BranchID,
		Category:   e.Category.String(),
		Amount:     e.Amount,
		Recurrence: string(e.Recurrence),
		StartDate:  e.StartDate,
		EndDate:    e.EndDate,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}

// ToFixedExpenseResponses maps a slice of recurring expenses
func ToFixedExpenseResponses(expenses []finance.FixedExpense) []FixedExpenseResponse {
	responses := make([]FixedExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToFixedExpenseResponse(&expenses[i])
	}
	return responses
}

// =============================================================================
// Loan and advance DTOs
// =============================================================================

// CreateLoanRequest represents a request to issue a staff loan
type CreateLoanRequest struct {
	BranchID  uuid.UUID       `json:"branch_id" binding:"required"`
	StaffID   uuid.UUID       `json:"staff_id" binding:"required"`
	Principal decimal.Decimal `json:"principal" binding:"required"`
	Reason    string          `json:"reason" binding:"max=500"`
	IssuedAt  *time.Time      `json:"issued_at"`
}

// RepayLoanRequest represents a loan repayment installment
type RepayLoanRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	StaffID     uuid.UUID       `json:"staff_id"`
	Principal   decimal.Decimal `json:"principal"`
	RepaidTotal decimal.Decimal `json:"repaid_total"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	IssuedAt    time.Time       `json:"issued_at"`
	ClosedAt    *time.Time      `json:"closed_at,omitempty"`
}

// ToLoanResponse maps a loan to its response shape
func ToLoanResponse(l *finance.Loan) LoanResponse {
	return LoanResponse{
		ID:          l.ID,
		CompanyID:   l.CompanyID,
		BranchID:    l.BranchID,
		StaffID:     l.StaffID,
		Principal:   l.Principal,
		RepaidTotal: l.RepaidTotal,
		Outstanding: l.Outstanding(),
		Reason:      l.Reason,
		Status:      string(l.Status),
		IssuedAt:    l.IssuedAt,
		ClosedAt:    l.ClosedAt,
	}
}

// ToLoanResponses maps a slice of loans
func ToLoanResponses(loans []finance.Loan) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i := range loans {
		responses[i] = ToLoanResponse(&loans[i])
	}
	return responses
}

// CreateAdvanceRequest represents a salary advance request
type CreateAdvanceRequest struct {
	BranchID uuid.UUID       `json:"branch_id" binding:"required"`
	StaffID  uuid.UUID       `json:"staff_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Reason   string          `json:"reason" binding:"max=500"`
	IssuedAt *time.Time      `json:"issued_at"`
}

// AdvanceResponse represents a salary advance in API responses
type AdvanceResponse struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	BranchID  uuid.UUID       `json:"branch_id"`
	StaffID   uuid.UUID       `json:"staff_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Status    string          `json:"status"`
	IssuedAt  time.Time       `json:"issued_at"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToAdvanceResponse maps an advance to its response shape
func ToAdvanceResponse(a *finance.Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		BranchID:  a.BranchID,
		StaffID:   a.StaffID,
		Amount:    a.Amount,
		Reason:    a.Reason,
		Status:    string(a.Status),
		IssuedAt:  a.IssuedAt,
		SettledAt: a.SettledAt,
		CreatedAt: a.CreatedAt,
	}
}

// ToAdvanceResponses maps a slice of advances
func ToAdvanceResponses(advances []finance.Advance) []AdvanceResponse {
	responses := make([]AdvanceResponse, len(advances))
	for i := range advances {
		responses[i] = ToAdvanceResponse(&advances[i])
	}
	return responses
}

// ListFilter is the shared list query shape for finance records
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	BranchID string `form:"branch_id"`
	StaffID  string `form:"staff_id"`
	Status   string `form:"status"`
}
