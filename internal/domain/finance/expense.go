package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/shared"
)

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryRent      ExpenseCategory = "RENT"
	ExpenseCategoryUtilities ExpenseCategory = "UTILITIES"
	ExpenseCategorySalary    ExpenseCategory = "SALARY"
	ExpenseCategoryTravel    ExpenseCategory = "TRAVEL"
	ExpenseCategoryEquipment ExpenseCategory = "EQUIPMENT"
	ExpenseCategoryMarketing ExpenseCategory = "MARKETING"
	ExpenseCategoryPrinting  ExpenseCategory = "PRINTING"
	ExpenseCategoryOther     ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategorySalary,
		ExpenseCategoryTravel, ExpenseCategoryEquipment, ExpenseCategoryMarketing,
		ExpenseCategoryPrinting, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense is an ad-hoc branch cost record
type Expense struct {
	shared.CompanyAggregateRoot
	BranchID    uuid.UUID       `json:"branch_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	IncurredAt  time.Time       `json:"incurred_at"`
}

// NewExpense creates a new expense record
func NewExpense(
	companyID, branchID uuid.UUID,
	category ExpenseCategory,
	amount decimal.Decimal,
	description string,
	incurredAt time.Time,
) (*Expense, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	return &Expense{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Category:             category,
		Amount:               amount,
		Description:          description,
		IncurredAt:           incurredAt,
	}, nil
}

// Update replaces the expense details
func (e *Expense) Update(category ExpenseCategory, amount decimal.Decimal, description string, incurredAt time.Time) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	e.Category = category
	e.Amount = amount
	e.Description = description
	e.IncurredAt = incurredAt
	e.Touch()
	return nil
}

// DailyExpense is a petty-cash style daily cost entry, stored apart
// from Expense but aggregated together for finance views
type DailyExpense struct {
	shared.CompanyAggregateRoot
	BranchID    uuid.UUID       `json:"branch_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// NewDailyExpense creates a new daily expense entry
func NewDailyExpense(companyID, branchID uuid.UUID, date time.Time, amount decimal.Decimal, description string) (*DailyExpense, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &DailyExpense{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Date:                 date,
		Amount:               amount,
		Description:          description,
	}, nil
}

// RecurrenceInterval is how often a fixed expense recurs
type RecurrenceInterval string

const (
	RecurrenceMonthly   RecurrenceInterval = "MONTHLY"
	RecurrenceQuarterly RecurrenceInterval = "QUARTERLY"
	RecurrenceYearly    RecurrenceInterval = "YEARLY"
)

// IsValid checks if the interval is a known RecurrenceInterval
func (r RecurrenceInterval) IsValid() bool {
	switch r {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

// FixedExpense is a recurring branch cost such as rent or salaries
type FixedExpense struct {
	shared.CompanyAggregateRoot
	BranchID   uuid.UUID          `json:"branch_id"`
	Category   ExpenseCategory    `json:"category"`
	Amount     decimal.Decimal    `json:"amount"`
	Recurrence RecurrenceInterval `json:"recurrence"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    *time.Time         `json:"end_date"`
	IsActive   bool               `json:"is_active"`
}

// NewFixedExpense creates a new recurring expense
func NewFixedExpense(
	companyID, branchID uuid.UUID,
	category ExpenseCategory,
	amount decimal.Decimal,
	recurrence RecurrenceInterval,
	startDate time.Time,
) (*FixedExpense, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !recurrence.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECURRENCE", "Recurrence interval is not valid")
	}

	return &FixedExpense{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Category:             category,
		Amount:               amount,
		Recurrence:           recurrence,
		StartDate:            startDate,
		IsActive:             true,
	}, nil
}

// Terminate ends the recurring expense as of the given date
func (f *FixedExpense) Terminate(endDate time.Time) error {
	if !f.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Fixed expense is already terminated")
	}
	if endDate.Before(f.StartDate) {
		return shared.NewDomainError("INVALID_DATE", "End date cannot precede start date")
	}
	f.EndDate = &endDate
	f.IsActive = false
	f.Touch()
	return nil
}
