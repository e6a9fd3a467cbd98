package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
)

// dailyBreakdownKey is the breakdown bucket for daily petty-cash
// entries, which carry no category of their own
const dailyBreakdownKey = "DAILY"

// AnalyticsService produces company-wide finance views. Results are
// computed from the expense and booking aggregations, not stored.
type AnalyticsService struct {
	expenseRepo      finance.ExpenseRepository
	dailyExpenseRepo finance.DailyExpenseRepository
	bookingRepo      booking.Repository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	expenseRepo finance.ExpenseRepository,
	dailyExpenseRepo finance.DailyExpenseRepository,
	bookingRepo booking.Repository,
) *AnalyticsService {
	return &AnalyticsService{
		expenseRepo:      expenseRepo,
		dailyExpenseRepo: dailyExpenseRepo,
		bookingRepo:      bookingRepo,
	}
}

// GetFinanceAnalytics aggregates per-branch expense totals and booking
// revenue for a company within an optional date window. Ad-hoc and daily
// expenses are summed separately and merged per branch, keeping the
// category breakdown. The result covers every branch that has at least
// one expense or revenue row; there is no pagination.
func (s *AnalyticsService) GetFinanceAnalytics(ctx context.Context, companyID uuid.UUID, req FinanceAnalyticsRequest) (*FinanceAnalyticsResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "start_date must be in YYYY-MM-DD format")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "end_date must be in YYYY-MM-DD format")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "end_date cannot precede start_date")
	}

	expenses, err := s.expenseRepo.SummarizeByBranch(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	dailyExpenses, err := s.dailyExpenseRepo.SummarizeByBranch(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	revenue, err := s.bookingRepo.RevenueByBranch(ctx, companyID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byBranch := make(map[uuid.UUID]*BranchFinance)
	order := make([]uuid.UUID, 0, len(expenses))
	row := func(branchID uuid.UUID) *BranchFinance {
		if existing, ok := byBranch[branchID]; ok {
			return existing
		}
		created := &BranchFinance{
			BranchID:         branchID,
			TotalExpenses:    decimal.Zero,
			ExpenseBreakdown: make(map[string]decimal.Decimal),
			BookingRevenue:   decimal.Zero,
		}
		byBranch[branchID] = created
		order = append(order, branchID)
		return created
	}

	for _, summary := range expenses {
		branch := row(summary.BranchID)
		branch.TotalExpenses = branch.TotalExpenses.Add(summary.TotalExpenses)
		for category, amount := range summary.Breakdown {
			branch.ExpenseBreakdown[category] = branch.ExpenseBreakdown[category].Add(amount)
		}
	}
	for _, summary := range dailyExpenses {
		branch := row(summary.BranchID)
		branch.TotalExpenses = branch.TotalExpenses.Add(summary.TotalExpenses)
		if summary.TotalExpenses.IsPositive() {
			branch.ExpenseBreakdown[dailyBreakdownKey] = branch.ExpenseBreakdown[dailyBreakdownKey].Add(summary.TotalExpenses)
		}
	}
	for _, rev := range revenue {
		branch := row(rev.BranchID)
		branch.BookingRevenue = branch.BookingRevenue.Add(rev.TotalRevenue)
		branch.BookingCount += rev.Count
	}

	branches := make([]BranchFinance, 0, len(order))
	for _, branchID := range order {
		branch := byBranch[branchID]
		branch.Net = branch.BookingRevenue.Sub(branch.TotalExpenses)
		branches = append(branches, *branch)
	}

	return &FinanceAnalyticsResponse{
		CompanyID: companyID,
		StartDate: startDate,
		EndDate:   endDate,
		Branches:  branches,
	}, nil
}

// parseDate parses an optional "YYYY-MM-DD" query value
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
