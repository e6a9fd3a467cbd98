package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/finance"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormLoanRepository implements LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// FindByID finds a loan by ID
func (r *GormLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Loan, error) {
	var model models.LoanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a loan by ID within a company
func (r *GormLoanRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Loan, error) {
	var model models.LoanModel
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

// FindAllForCompany finds all loans for a company
func (r *GormLoanRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Loan, error) {
	var loanModels []models.LoanModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.LoanModel{}), filter)

	if err := query.Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]finance.Loan, len(loanModels))
	for i, model := range loanModels {
		loans[i] = *model.ToDomain()
	}
	return loans, nil
}

// FindActiveByStaff returns a staff member's active loans
func (r *GormLoanRepository) FindActiveByStaff(ctx context.Context, staffID uuid.UUID) ([]finance.Loan, error) {
	var loanModels []models.LoanModel
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND status = ?", staffID, finance.LoanStatusActive).
		Order("issued_at ASC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]finance.Loan, len(loanModels))
	for i, model := range loanModels {
		loans[i] = *model.ToDomain()
	}
	return loans, nil
}

// CountForCompany counts loans for a company
func (r *GormLoanRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.LoanModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a loan
func (r *GormLoanRepository) Save(ctx context.Context, loan *finance.Loan) error {
	model := models.LoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a loan
func (r *GormLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LoanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormLoanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LoanSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLoanRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "staff_id":
			query = query.Where("staff_id = ?", value)
		}
	}

	return query
}

// Ensure GormLoanRepository implements LoanRepository
var _ finance.LoanRepository = (*GormLoanRepository)(nil)

// GormAdvanceRepository implements AdvanceRepository using GORM
type GormAdvanceRepository struct {
	db *gorm.DB
}

// NewGormAdvanceRepository creates a new GormAdvanceRepository
func NewGormAdvanceRepository(db *gorm.DB) *GormAdvanceRepository {
	return &GormAdvanceRepository{db: db}
}

// FindByID finds a salary advance by ID
func (r *GormAdvanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Advance, error) {
	var model models.AdvanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a salary advance by ID within a company
func (r *GormAdvanceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*finance.Advance, error) {
	var model models.AdvanceModel
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

// FindAllForCompany finds all salary advances for a company
func (r *GormAdvanceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]finance.Advance, error) {
	var advanceModels []models.AdvanceModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.AdvanceModel{}), filter)

	if err := query.Find(&advanceModels).Error; err != nil {
		return nil, err
	}

	advances := make([]finance.Advance, len(advanceModels))
	for i, model := range advanceModels {
		advances[i] = *model.ToDomain()
	}
	return advances, nil
}

// FindPendingByStaff returns a staff member's unsettled advances
func (r *GormAdvanceRepository) FindPendingByStaff(ctx context.Context, staffID uuid.UUID) ([]finance.Advance, error) {
	var advanceModels []models.AdvanceModel
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND status = ?", staffID, finance.AdvanceStatusPending).
		Order("issued_at ASC").
		Find(&advanceModels).Error; err != nil {
		return nil, err
	}

	advances := make([]finance.Advance, len(advanceModels))
	for i, model := range advanceModels {
		advances[i] = *model.ToDomain()
	}
	return advances, nil
}

// CountForCompany counts salary advances for a company
func (r *GormAdvanceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.AdvanceModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a salary advance
func (r *GormAdvanceRepository) Save(ctx context.Context, advance *finance.Advance) error {
	model := models.AdvanceModelFromDomain(advance)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a salary advance
func (r *GormAdvanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AdvanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAdvanceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LoanSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAdvanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "staff_id":
			query = query.Where("staff_id = ?", value)
		}
	}

	return query
}

// Ensure GormAdvanceRepository implements AdvanceRepository
var _ finance.AdvanceRepository = (*GormAdvanceRepository)(nil)
