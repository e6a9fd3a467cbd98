package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/attendance"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormAttendanceRepository implements attendance.Repository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByID finds an attendance record by ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds an attendance record by ID within a company
func (r *GormAttendanceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*attendance.Record, error) {
	var model models.AttendanceRecordModel
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

// FindByStaffAndDate finds the attendance record for a staff member on
// a calendar day
func (r *GormAttendanceRepository) FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) (*attendance.Record, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var model models.AttendanceRecordModel
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date >= ? AND date < ?", staffID, dayStart, dayEnd).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all attendance records for a company
func (r *GormAttendanceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]attendance.Record, error) {
	var recordModels []models.AttendanceRecordModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.AttendanceRecordModel{}), filter)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]attendance.Record, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// CountForCompany counts attendance records for a company
func (r *GormAttendanceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.AttendanceRecordModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an attendance record
func (r *GormAttendanceRepository) Save(ctx context.Context, record *attendance.Record) error {
	model := models.AttendanceRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an attendance record
func (r *GormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttendanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAttendanceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AttendanceSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAttendanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "staff_id":
			query = query.Where("staff_id = ?", value)
		case "from_date":
			query = query.Where("date >= ?", value)
		case "to_date":
			query = query.Where("date <= ?", value)
		}
	}

	return query
}

// Ensure GormAttendanceRepository implements attendance.Repository
var _ attendance.Repository = (*GormAttendanceRepository)(nil)
