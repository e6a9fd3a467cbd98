package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/org"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormStaffRepository implements StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*org.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a staff member by ID within a company
func (r *GormStaffRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*org.Staff, error) {
	var model models.StaffModel
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

// FindByUserID finds the staff profile linked to a user account
func (r *GormStaffRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*org.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all staff for a company
func (r *GormStaffRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]org.Staff, error) {
	var staffModels []models.StaffModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.StaffModel{}), filter)

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]org.Staff, len(staffModels))
	for i, model := range staffModels {
		staff[i] = *model.ToDomain()
	}
	return staff, nil
}

// FindActiveByBranch returns active, non-deleted staff in a branch
func (r *GormStaffRepository) FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]org.Staff, error) {
	var staffModels []models.StaffModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND status = ? AND is_deleted = ?", branchID, org.StaffStatusActive, false).
		Order("name ASC").
		Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]org.Staff, len(staffModels))
	for i, model := range staffModels {
		staff[i] = *model.ToDomain()
	}
	return staff, nil
}

// CountActiveByBranch counts active, non-deleted staff in a branch
func (r *GormStaffRepository) CountActiveByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffModel{}).
		Where("branch_id = ? AND status = ? AND is_deleted = ?", branchID, org.StaffStatusActive, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForCompany counts staff for a company
func (r *GormStaffRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.StaffModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *org.Staff) error {
	model := models.StaffModelFromDomain(staff)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormStaffRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StaffSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStaffRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Soft-deleted profiles stay out of listings unless asked for
	if _, ok := filter.Filters["include_deleted"]; !ok {
		query = query.Where("is_deleted = ?", false)
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR designation ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "skill":
			if skill, ok := value.(string); ok {
				query = query.Where("skills @> ?", jsonArray(skill))
			}
		}
	}

	return query
}

// jsonArray renders values as a jsonb array literal for containment queries
func jsonArray(values ...string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(values)
	return string(b)
}

// Ensure GormStaffRepository implements StaffRepository
var _ org.StaffRepository = (*GormStaffRepository)(nil)
