package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds an expense by ID within a company
func (r *GormExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := scopeCompany(r.db.WithContext(ctx), companyID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all expenses for a company
func (r *GormExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.ExpenseModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// CountForCompany counts expenses for a company
func (r *GormExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.ExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SummarizeByBranch groups expenses per branch with a per-category
// breakdown, within an optional date window on the incurred date
func (r *GormExpenseRepository) SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]finance.BranchExpenseSummary, error) {
	query := scopeCompany(r.db.WithContext(ctx), companyID).
		Model(&models.ExpenseModel{}).
		Select("branch_id, category, COALESCE(SUM(amount), 0) AS total")

	if startDate != nil {
		query = query.Where("incurred_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("incurred_at <= ?", *endDate)
	}

	var rows []struct {
		BranchID uuid.UUID
		Category string
		Total    decimal.Decimal
	}
	if err := query.Group("branch_id, category").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return assembleExpenseSummaries(rows), nil
}

// applyFilter applies filter options to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "incurred_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "from_date":
			query = query.Where("incurred_at >= ?", value)
		case "to_date":
			query = query.Where("incurred_at <= ?", value)
		}
	}

	return query
}

// assembleExpenseSummaries folds grouped (branch, category, total) rows
// into one summary per branch
func assembleExpenseSummaries(rows []struct {
	BranchID uuid.UUID
	Category string
	Total    decimal.Decimal
}) []finance.BranchExpenseSummary {
	byBranch := make(map[uuid.UUID]*finance.BranchExpenseSummary)
	order := make([]uuid.UUID, 0, len(rows))

	for _, row := range rows {
		summary, ok := byBranch[row.BranchID]
		if !ok {
			summary = &finance.BranchExpenseSummary{
				BranchID:      row.BranchID,
				TotalExpenses: decimal.Zero,
				Breakdown:     make(map[string]decimal.Decimal),
			}
			byBranch[row.BranchID] = summary
			order = append(order, row.BranchID)
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(row.Total)
		if row.Category != "" {
			summary.Breakdown[row.Category] = summary.Breakdown[row.Category].Add(row.Total)
		}
	}

	result := make([]finance.BranchExpenseSummary, len(order))
	for i, branchID := range order {
		result[i] = *byBranch[branchID]
	}
	return result
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)

// GormDailyExpenseRepository implements DailyExpenseRepository using GORM
type GormDailyExpenseRepository struct {
	db *gorm.DB
}

// NewGormDailyExpenseRepository creates a new GormDailyExpenseRepository
func NewGormDailyExpenseRepository(db *gorm.DB) *GormDailyExpenseRepository {
	return &GormDailyExpenseRepository{db: db}
}

// FindByID finds a daily expense by ID
func (r *GormDailyExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.DailyExpense, error) {
	var model models.DailyExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a daily expense by ID within a company
func (r *GormDailyExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.DailyExpense, error) {
	var model models.DailyExpenseModel
	if err := scopeCompany(r.db.WithContext(ctx), companyID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all daily expenses for a company
func (r *GormDailyExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.DailyExpense, error) {
	var expenseModels []models.DailyExpenseModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.DailyExpenseModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]finance.DailyExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// CountForCompany counts daily expenses for a company
func (r *GormDailyExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.DailyExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a daily expense
func (r *GormDailyExpenseRepository) Save(ctx context.Context, expense *finance.DailyExpense) error {
	model := models.DailyExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a daily expense
func (r *GormDailyExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DailyExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SummarizeByBranch groups daily expenses per branch within an optional
// date window on the entry date. Daily expenses carry no category, so
// the breakdown stays empty.
func (r *GormDailyExpenseRepository) SummarizeByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]finance.BranchExpenseSummary, error) {
	query := scopeCompany(r.db.WithContext(ctx), companyID).
		Model(&models.DailyExpenseModel{}).
		Select("branch_id, COALESCE(SUM(amount), 0) AS total")

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var rows []struct {
		BranchID uuid.UUID
		Total    decimal.Decimal
	}
	if err := query.Group("branch_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]finance.BranchExpenseSummary, len(rows))
	for i, row := range rows {
		result[i] = finance.BranchExpenseSummary{
			BranchID:      row.BranchID,
			TotalExpenses: row.Total,
			Breakdown:     make(map[string]decimal.Decimal),
		}
	}
	return result, nil
}

// applyFilter applies filter options to the query
func (r *GormDailyExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDailyExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "from_date":
			query = query.Where("date >= ?", value)
		case "to_date":
			query = query.Where("date <= ?", value)
		}
	}

	return query
}

// Ensure GormDailyExpenseRepository implements DailyExpenseRepository
var _ finance.DailyExpenseRepository = (*GormDailyExpenseRepository)(nil)

// GormFixedExpenseRepository implements FixedExpenseRepository using GORM
type GormFixedExpenseRepository struct {
	db *gorm.DB
}

// NewGormFixedExpenseRepository creates a new GormFixedExpenseRepository
func NewGormFixedExpenseRepository(db *gorm.DB) *GormFixedExpenseRepository {
	return &GormFixedExpenseRepository{db: db}
}

// FindByID finds a fixed expense by ID
func (r *GormFixedExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FixedExpense, error) {
	var model models.FixedExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a fixed expense by ID within a company
func (r *GormFixedExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.FixedExpense, error) {
	var model models.FixedExpenseModel
	if err := scopeCompany(r.db.WithContext(ctx), companyID).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all fixed expenses for a company
func (r *GormFixedExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.FixedExpense, error) {
	var expenseModels []models.FixedExpenseModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.FixedExpenseModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]finance.FixedExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// CountForCompany counts fixed expenses for a company
func (r *GormFixedExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.FixedExpenseModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a fixed expense
func (r *GormFixedExpenseRepository) Save(ctx context.Context, expense *finance.FixedExpense) error {
	model := models.FixedExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a fixed expense
func (r *GormFixedExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FixedExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormFixedExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFixedExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "recurrence":
			query = query.Where("recurrence = ?", value)
		}
	}

	return query
}

// Ensure GormFixedExpenseRepository implements FixedExpenseRepository
var _ finance.FixedExpenseRepository = (*GormFixedExpenseRepository)(nil)
