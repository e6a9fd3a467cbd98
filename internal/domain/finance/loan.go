package finance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// LoanStatus represents the repayment status of a staff loan
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "ACTIVE"
	LoanStatusRepaid LoanStatus = "REPAID"
	LoanStatusWaived LoanStatus = "WAIVED"
)

// IsValid checks if the status is a valid LoanStatus
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusRepaid, LoanStatusWaived:
		return true
	}
	return false
}

// Loan is money lent to a staff member, repaid in installments
type Loan struct {
	shared.CompanyAggregateRoot
	BranchID    uuid.UUID       `json:"branch_id"`
	StaffID     uuid.UUID       `json:"staff_id"`
	Principal   decimal.Decimal `json:"principal"`
	RepaidTotal decimal.Decimal `json:"repaid_total"`
	Reason      string          `json:"reason"`
	IssuedAt    time.Time       `json:"issued_at"`
	Status      LoanStatus      `json:"status"`
	ClosedAt    *time.Time      `json:"closed_at"`
}

// NewLoan creates a new active loan
func NewLoan(companyID, branchID, staffID uuid.UUID, principal decimal.Decimal, reason string, issuedAt time.Time) (*Loan, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Loan principal must be positive")
	}

	return &Loan{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		StaffID:              staffID,
		Principal:            principal,
		Reason:               reason,
		IssuedAt:             issuedAt,
		Status:               LoanStatusActive,
	}, nil
}

// Outstanding returns the unrepaid remainder of the loan
func (l *Loan) Outstanding() decimal.Decimal {
	return l.Principal.Sub(l.RepaidTotal)
}

// RecordRepayment applies an installment. The loan closes once the
// principal is covered.
func (l *Loan) RecordRepayment(amount decimal.Decimal) error {
	if l.Status != LoanStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot repay loan in %s status", l.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Repayment amount must be positive")
	}
	if amount.GreaterThan(l.Outstanding()) {
		return shared.NewDomainError("INVALID_AMOUNT", "Repayment exceeds outstanding balance")
	}
	l.RepaidTotal = l.RepaidTotal.Add(amount)
	if l.Outstanding().IsZero() {
		now := time.Now()
		l.Status = LoanStatusRepaid
		l.ClosedAt = &now
	}
	l.Touch()
	return nil
}

// Waive forgives the remaining balance
func (l *Loan) Waive() error {
	if l.Status != LoanStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot waive loan in %s status", l.Status))
	}
	now := time.Now()
	l.Status = LoanStatusWaived
	l.ClosedAt = &now
	l.UpdatedAt = now
	return nil
}

// AdvanceStatus represents the settlement status of a salary advance
type AdvanceStatus string

const (
	AdvanceStatusPending AdvanceStatus = "PENDING"
	AdvanceStatusSettled AdvanceStatus = "SETTLED"
)

// Advance is a salary advance to a staff member, settled against
// the next payroll run
type Advance struct {
	shared.CompanyAggregateRoot
	BranchID  uuid.UUID       `json:"branch_id"`
	StaffID   uuid.UUID       `json:"staff_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	IssuedAt  time.Time       `json:"issued_at"`
	Status    AdvanceStatus   `json:"status"`
	SettledAt *time.Time      `json:"settled_at"`
}

// NewAdvance creates a new pending salary advance
func NewAdvance(companyID, branchID, staffID uuid.UUID, amount decimal.Decimal, reason string, issuedAt time.Time) (*Advance, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if staffID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance amount must be positive")
	}

	return &Advance{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		StaffID:              staffID,
		Amount:               amount,
		Reason:               reason,
		IssuedAt:             issuedAt,
		Status:               AdvanceStatusPending,
	}, nil
}

// Settle marks the advance recovered from payroll
func (a *Advance) Settle() error {
	if a.Status != AdvanceStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Advance is already settled")
	}
	now := time.Now()
	a.Status = AdvanceStatusSettled
	a.SettledAt = &now
	a.UpdatedAt = now
	return nil
}
