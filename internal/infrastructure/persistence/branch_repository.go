package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a branch by ID within a company
func (r *GormBranchRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*org.Branch, error) {
	var model models.BranchModel
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

// FindByCode finds a branch by its code within a company
func (r *GormBranchRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*org.Branch, error) {
	var model models.BranchModel
	if err := scopeCompany(r.db.WithContext(ctx), companyID).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists branches across all companies, for maintenance sweeps
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]org.Branch, error) {
	var branchModels []models.BranchModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BranchModel{}), filter)

	if err := query.Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]org.Branch, len(branchModels))
	for i, model := range branchModels {
		branches[i] = *model.ToDomain()
	}
	return branches, nil
}

// FindAllForCompany finds all branches for a company
func (r *GormBranchRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]org.Branch, error) {
	var branchModels []models.BranchModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.BranchModel{}), filter)

	if err := query.Find(&branchModels).Error; err != nil {
		return nil, err
	}

	branches := make([]org.Branch, len(branchModels))
	for i, model := range branchModels {
		branches[i] = *model.ToDomain()
	}
	return branches, nil
}

// CountForCompany counts branches for a company
func (r *GormBranchRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.BranchModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *org.Branch) error {
	model := models.BranchModelFromDomain(branch)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateRevenue persists only the denormalized revenue cache columns.
// A missing branch is a no-op so a refresh sweep racing a branch
// deletion does not fail the whole sweep.
func (r *GormBranchRepository) UpdateRevenue(ctx context.Context, branchID uuid.UUID, breakdown org.RevenueBreakdown) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("id = ?", branchID).
		Updates(map[string]interface{}{
			"revenue_invoices":   breakdown.Invoices,
			"revenue_bookings":   breakdown.Bookings,
			"revenue_quotations": breakdown.Quotations,
			"revenue_total":      breakdown.Total,
			"revenue_as_of":      now,
			"updated_at":         now,
		}).Error
}

// UpdateEmployeeCount persists only the employee count cache column
func (r *GormBranchRepository) UpdateEmployeeCount(ctx context.Context, branchID uuid.UUID, count int) error {
	return r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("id = ?", branchID).
		Updates(map[string]interface{}{
			"employee_count": count,
			"updated_at":     time.Now(),
		}).Error
}

// Delete deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BranchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormBranchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BranchSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBranchRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR address ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "code":
			query = query.Where("code = ?", value)
		}
	}

	return query
}

// Ensure GormBranchRepository implements BranchRepository
var _ org.BranchRepository = (*GormBranchRepository)(nil)
