package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lensflow/backend/internal/domain/billing"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/persistence/models"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation by ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a quotation by ID within a company
func (r *GormQuotationRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Quotation, error) {
	var model models.QuotationModel
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

// FindAllForCompany finds all quotations for a company
func (r *GormQuotationRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.QuotationModel{}), filter)

	if err := query.Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// CountForCompany counts quotations for a company
func (r *GormQuotationRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeCompany(r.db.WithContext(ctx), companyID).Model(&models.QuotationModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a quotation
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a quotation
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.QuotationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumAcceptedRevenueByBranch sums the effective total of accepted
// quotations for a branch
func (r *GormQuotationRepository) SumAcceptedRevenueByBranch(ctx context.Context, branchID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Select("COALESCE(SUM("+effectiveTotalExpr+"), 0) AS total").
		Where("branch_id = ? AND status = ?", branchID, billing.QuotationStatusAccepted).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// FindNeedingFollowUp returns sent, still-valid quotations that have not
// been followed up on the given day. The same-day check keeps the
// follow-up sweep idempotent across scheduler ticks.
func (r *GormQuotationRepository) FindNeedingFollowUp(ctx context.Context, asOf time.Time) ([]billing.Quotation, error) {
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())

	var quotationModels []models.QuotationModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND valid_until >= ? AND (last_follow_up_at IS NULL OR last_follow_up_at < ?)",
			billing.QuotationStatusSent, asOf, dayStart).
		Order("valid_until ASC").
		Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// applyFilter applies filter options to the query
func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, QuotationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("quotation_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "valid_until_before":
			query = query.Where("valid_until <= ?", value)
		}
	}

	return query
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ billing.QuotationRepository = (*GormQuotationRepository)(nil)
