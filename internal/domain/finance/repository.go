package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// BranchExpenseSummary is one row of a per-branch expense aggregation
type BranchExpenseSummary struct {
	BranchID      uuid.UUID
	TotalExpenses decimal.Decimal
	// Breakdown maps expense category to its summed amount
	Breakdown map[string]decimal.Decimal
}

// ExpenseRepository defines persistence operations for ad-hoc expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Expense, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Expense, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SummarizeByBranch groups expenses per branch for a company within
	// an optional [startDate, endDate] window on the incurred date.
	SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]BranchExpenseSummary, error)
}

// DailyExpenseRepository defines persistence operations for daily expenses
type DailyExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DailyExpense, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*DailyExpense, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]DailyExpense, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, expense *DailyExpense) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SummarizeByBranch groups daily expenses per branch for a company
	// within an optional [startDate, endDate] window on the entry date.
	SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]BranchExpenseSummary, error)
}

// FixedExpenseRepository defines persistence operations for recurring expenses
type FixedExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FixedExpense, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*FixedExpense, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]FixedExpense, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, expense *FixedExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoanRepository defines persistence operations for staff loans
type LoanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Loan, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Loan, error)
	FindActiveByStaff(ctx context.Context, staffID uuid.UUID) ([]Loan, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, loan *Loan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdvanceRepository defines persistence operations for salary advances
type AdvanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Advance, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Advance, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Advance, error)
	FindPendingByStaff(ctx context.Context, staffID uuid.UUID) ([]Advance, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, advance *Advance) error
	Delete(ctx context.Context, id uuid.UUID) error
}
