package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/finance"
)

// ExpenseModel is the persistence model for ad-hoc expense records.
type ExpenseModel struct {
	CompanyAggregateModel
	BranchID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	Category    finance.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Description string                  `gorm:"type:varchar(500);not null"`
	IncurredAt  time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	e := &finance.Expense{
		BranchID:    m.BranchID,
		Category:    m.Category,
		Amount:      m.Amount,
		Description: m.Description,
		IncurredAt:  m.IncurredAt,
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.Category = e.Category
	m.Amount = e.Amount
	m.Description = e.Description
	m.IncurredAt = e.IncurredAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// DailyExpenseModel is the persistence model for daily petty-cash entries.
type DailyExpenseModel struct {
	CompanyAggregateModel
	BranchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DailyExpenseModel) TableName() string {
	return "daily_expenses"
}

// ToDomain converts the persistence model to a domain DailyExpense entity.
func (m *DailyExpenseModel) ToDomain() *finance.DailyExpense {
	e := &finance.DailyExpense{
		BranchID:    m.BranchID,
		Date:        m.Date,
		Amount:      m.Amount,
		Description: m.Description,
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain DailyExpense entity.
func (m *DailyExpenseModel) FromDomain(e *finance.DailyExpense) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.Date = e.Date
	m.Amount = e.Amount
	m.Description = e.Description
}

// DailyExpenseModelFromDomain creates a new persistence model from a domain DailyExpense.
func DailyExpenseModelFromDomain(e *finance.DailyExpense) *DailyExpenseModel {
	m := &DailyExpenseModel{}
	m.FromDomain(e)
	return m
}

// FixedExpenseModel is the persistence model for recurring expenses.
type FixedExpenseModel struct {
	CompanyAggregateModel
	BranchID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Category   finance.ExpenseCategory    `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Recurrence finance.RecurrenceInterval `gorm:"type:varchar(20);not null"`
	StartDate  time.Time                  `gorm:"not null"`
	EndDate    *time.Time
	IsActive   bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (FixedExpenseModel) TableName() string {
	return "fixed_expenses"
}

// ToDomain converts the persistence model to a domain FixedExpense entity.
func (m *FixedExpenseModel) ToDomain() *finance.FixedExpense {
	e := &finance.FixedExpense{
		BranchID:   m.BranchID,
		Category:   m.Category,
		Amount:     m.Amount,
		Recurrence: m.Recurrence,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		IsActive:   m.IsActive,
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain FixedExpense entity.
func (m *FixedExpenseModel) FromDomain(e *finance.FixedExpense) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.Category = e.Category
	m.Amount = e.Amount
	m.Recurrence = e.Recurrence
	m.StartDate = e.StartDate
	m.EndDate = e.EndDate
	m.IsActive = e.IsActive
}

// FixedExpenseModelFromDomain creates a new persistence model from a domain FixedExpense.
func FixedExpenseModelFromDomain(e *finance.FixedExpense) *FixedExpenseModel {
	m := &FixedExpenseModel{}
	m.FromDomain(e)
	return m
}

// LoanModel is the persistence model for staff loans.
type LoanModel struct {
	CompanyAggregateModel
	BranchID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	StaffID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Principal   decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	RepaidTotal decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Reason      string             `gorm:"type:varchar(500)"`
	IssuedAt    time.Time          `gorm:"not null"`
	Status      finance.LoanStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ClosedAt    *time.Time
}

// TableName returns the table name for GORM
func (LoanModel) TableName() string {
	return "loans"
}

// ToDomain converts the persistence model to a domain Loan entity.
func (m *LoanModel) ToDomain() *finance.Loan {
	l := &finance.Loan{
		BranchID:    m.BranchID,
		StaffID:     m.StaffID,
		Principal:   m.Principal,
		RepaidTotal: m.RepaidTotal,
		Reason:      m.Reason,
		IssuedAt:    m.IssuedAt,
		Status:      m.Status,
		ClosedAt:    m.ClosedAt,
	}
	m.PopulateCompanyAggregateRoot(&l.CompanyAggregateRoot)
	return l
}

// FromDomain populates the persistence model from a domain Loan entity.
func (m *LoanModel) FromDomain(l *finance.Loan) {
	m.FromDomainCompanyAggregateRoot(l.CompanyAggregateRoot)
	m.BranchID = l.BranchID
	m.StaffID = l.StaffID
	m.Principal = l.Principal
	m.RepaidTotal = l.RepaidTotal
	m.Reason = l.Reason
	m.IssuedAt = l.IssuedAt
	m.Status = l.Status
	m.ClosedAt = l.ClosedAt
}

// LoanModelFromDomain creates a new persistence model from a domain Loan.
func LoanModelFromDomain(l *finance.Loan) *LoanModel {
	m := &LoanModel{}
	m.FromDomain(l)
	return m
}

// AdvanceModel is the persistence model for salary advances.
type AdvanceModel struct {
	CompanyAggregateModel
	BranchID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	StaffID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Reason    string                `gorm:"type:varchar(500)"`
	IssuedAt  time.Time             `gorm:"not null"`
	Status    finance.AdvanceStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SettledAt *time.Time
}

// TableName returns the table name for GORM
func (AdvanceModel) TableName() string {
	return "advances"
}

// ToDomain converts the persistence model to a domain Advance entity.
func (m *AdvanceModel) ToDomain() *finance.Advance {
	a := &finance.Advance{
		BranchID:  m.BranchID,
		StaffID:   m.StaffID,
		Amount:    m.Amount,
		Reason:    m.Reason,
		IssuedAt:  m.IssuedAt,
		Status:    m.Status,
		SettledAt: m.SettledAt,
	}
	m.PopulateCompanyAggregateRoot(&a.CompanyAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Advance entity.
func (m *AdvanceModel) FromDomain(a *finance.Advance) {
	m.FromDomainCompanyAggregateRoot(a.CompanyAggregateRoot)
	m.BranchID = a.BranchID
	m.StaffID = a.StaffID
	m.Amount = a.Amount
	m.Reason = a.Reason
	m.IssuedAt = a.IssuedAt
	m.Status = a.Status
	m.SettledAt = a.SettledAt
}

// AdvanceModelFromDomain creates a new persistence model from a domain Advance.
func AdvanceModelFromDomain(a *finance.Advance) *AdvanceModel {
	m := &AdvanceModel{}
	m.FromDomain(a)
	return m
}
