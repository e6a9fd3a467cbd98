package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/booking"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// effectiveTotalExpr resolves the booking total across the column shapes
// written by older product versions, first non-null wins.
const effectiveTotalExpr = "COALESCE(total_amount, final_amount, total, 0)"

// GormBookingRepository implements booking.Repository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a booking by ID within a company
func (r *GormBookingRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
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

// FindAllForCompany finds all bookings for a company
func (r *GormBookingRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.BookingModel{}), filter)

	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// CountForCompany counts bookings for a company
func (r *GormBookingRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.BookingModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a booking
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BookingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumCompletedRevenueByBranch sums the effective total of completed
// bookings attached to a branch. Documents written before the branch
// field was renamed carry the reference under booking_branch_id, so
// both columns are matched.
func (r *GormBookingRepository) SumCompletedRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.BookingModel{}).
		Select("COALESCE(SUM("+effectiveTotalExpr+"), 0) AS total").
		Where("status = ? AND (branch_id = ? OR booking_branch_id = ?)", booking.StatusCompleted, branchID, branchID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// RevenueByBranch groups completed booking revenue per branch for a
// company. The optional date window matches the primary function date
// or any date inside the legacy multi-event list.
func (r *GormBookingRepository) RevenueByBranch(ctx context.Context, companyID uuid.UUID, startDate, endDate *time.Time) ([]booking.BranchRevenue, error) {
	query := scopeCompany(r.db.WithContext(ctx), companyID).
		Model(&models.BookingModel{}).
		Select("branch_id, COALESCE(SUM("+effectiveTotalExpr+"), 0) AS total_revenue, COUNT(*) AS count").
		Where("status = ?", booking.StatusCompleted)

	query = applyFunctionDateWindow(query, startDate, endDate)

	var rows []struct {
		BranchID     uuid.UUID
		TotalRevenue decimal.Decimal
		Count        int64
	}
	if err := query.Group("branch_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]booking.BranchRevenue, len(rows))
	for i, row := range rows {
		result[i] = booking.BranchRevenue{
			BranchID:     row.BranchID,
			TotalRevenue: row.TotalRevenue,
			Count:        row.Count,
		}
	}
	return result, nil
}

// applyFunctionDateWindow restricts bookings to those whose primary
// function date, or any date in the legacy multi-event list, falls
// within the given bounds.
func applyFunctionDateWindow(query *gorm.DB, startDate, endDate *time.Time) *gorm.DB {
	switch {
	case startDate != nil && endDate != nil:
		return query.Where(
			`(function_date BETWEEN ? AND ?
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements(function_details_list) AS fn
					WHERE (fn->>'date')::timestamptz BETWEEN ? AND ?))`,
			*startDate, *endDate, *startDate, *endDate)
	case startDate != nil:
		return query.Where(
			`(function_date >= ?
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements(function_details_list) AS fn
					WHERE (fn->>'date')::timestamptz >= ?))`,
			*startDate, *startDate)
	case endDate != nil:
		return query.Where(
			`(function_date <= ?
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements(function_details_list) AS fn
					WHERE (fn->>'date')::timestamptz <= ?))`,
			*endDate, *endDate)
	}
	return query
}

// FindByFunctionDate returns confirmed bookings whose primary function
// falls on the given calendar day
func (r *GormBookingRepository) FindByFunctionDate(ctx context.Context, date time.Time) ([]booking.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var bookingModels []models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND function_date >= ? AND function_date < ?", booking.StatusConfirmed, dayStart, dayEnd).
		Order("function_start_time ASC").
		Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// applyFilter applies filter options to the query
func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BookingSortFields, "function_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBookingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("booking_number ILIKE ? OR function_type ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("(branch_id = ? OR booking_branch_id = ?)", value, value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "function_type":
			query = query.Where("function_type = ?", value)
		case "from_date":
			query = query.Where("function_date >= ?", value)
		case "to_date":
			query = query.Where("function_date <= ?", value)
		}
	}

	return query
}

// Ensure GormBookingRepository implements booking.Repository
var _ booking.Repository = (*GormBookingRepository)(nil)
